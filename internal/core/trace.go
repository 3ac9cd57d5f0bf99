package core

// CeilingTrace captures how the credit ceiling was resolved for a CGPA.
type CeilingTrace struct {
	CGPA float64 `yaml:"cgpa" json:"cgpa"`

	// RuleResults contains the result of every rule evaluated, in table order.
	// Evaluation stops at the first match.
	RuleResults []RuleResult `yaml:"rule_results" json:"rule_results"`

	// Ceiling is the resolved ceiling.
	Ceiling int `yaml:"ceiling" json:"ceiling"`

	// MatchedRule is the index of the matching rule, -1 if the default was used.
	MatchedRule int `yaml:"matched_rule" json:"matched_rule"`

	// Default indicates that no rule matched and DefaultCreditCeiling was used.
	Default bool `yaml:"default" json:"default"`
}

// RuleResult captures why a specific credit rule matched or failed.
type RuleResult struct {
	Index      int    `yaml:"index" json:"index"`
	Expression string `yaml:"expression" json:"expression"`
	Ceiling    int    `yaml:"ceiling" json:"ceiling"`
	Matched    bool   `yaml:"matched" json:"matched"`
	Reason     string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// EvaluationTrace is the full explanation of a recommendation request.
type EvaluationTrace struct {
	// CorrelationID is the unique identifier for the evaluation request.
	CorrelationID string `json:"correlation_id"`

	Profile StudentProfile `json:"profile"`

	Ceiling CeilingTrace `json:"ceiling"`

	Recommendation *Recommendation `json:"recommendation"`

	// Decisions is the structured form of Recommendation.Explanations.
	Decisions []Explanation `json:"decisions"`
}
