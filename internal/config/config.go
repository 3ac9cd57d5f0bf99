package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/engine"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Audit     AuditConfig     `yaml:"audit"`
	Admin     AdminConfig     `yaml:"admin"`
}

type ServerConfig struct {
	// Addr is the address the HTTP server listens on, e.g. ":8080".
	Addr string `yaml:"addr"`
}

// KnowledgeConfig holds configuration for the knowledge base => where the catalog and policy are read from.
type KnowledgeConfig struct {
	// Catalog is the course table (.csv, .yaml or .yml).
	Catalog string `yaml:"catalog"`

	// Policies is the policy table (.csv, .yaml or .yml).
	Policies string `yaml:"policies"`

	// MaxCourses bounds the accepted catalog size.
	MaxCourses int `yaml:"max_courses"`

	// ReloadInterval periodically reloads the tables. Zero disables periodic reloads.
	ReloadInterval time.Duration `yaml:"reload_interval"`

	// Watch reloads the tables when one of the files changes.
	Watch bool `yaml:"watch"`

	// GitHub reads the tables from a repository. Catalog and Policies are then paths within the repository.
	GitHub *GitHubSourceConfig `yaml:"github"`
}

type GitHubSourceConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Ref   string `yaml:"ref"` // default: main

	// Token is a personal access or installation token, required for private repos.
	Token string `yaml:"token"`

	// ServerURL is the base URL of a GitHub Enterprise server.
	ServerURL string `yaml:"server_url"`
}

func (c *GitHubSourceConfig) Validate() error {
	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}
	if c.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	return nil
}

func (c *KnowledgeConfig) Validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("catalog is required")
	}
	if c.Policies == "" {
		return fmt.Errorf("policies is required")
	}
	if _, err := catalog.FormatFromPath(c.Catalog); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	if _, err := catalog.FormatFromPath(c.Policies); err != nil {
		return fmt.Errorf("policies: %w", err)
	}
	if c.MaxCourses < 0 {
		return fmt.Errorf("max_courses must not be negative")
	}
	if c.ReloadInterval < 0 {
		return fmt.Errorf("reload_interval must not be negative")
	}
	if c.GitHub != nil {
		if err := c.GitHub.Validate(); err != nil {
			return fmt.Errorf("github: %w", err)
		}
		if c.Watch {
			return fmt.Errorf("watch is not supported for github sources, use reload_interval")
		}
	}
	return nil
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"

	// RedactProfiles stores only a fingerprint of the student profile.
	RedactProfiles bool `yaml:"redact_profiles"`
}

type AdminConfig struct {
	// SigningKey verifies HS256 admin tokens. Admin routes are disabled when empty.
	SigningKey string `yaml:"signing_key"`
}

// Load reads and parses the configuration file at the given path.
// Relative table paths are resolved against the directory of the config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	base := filepath.Dir(path)
	if cfg.Knowledge.GitHub == nil {
		cfg.Knowledge.Catalog = resolve(base, cfg.Knowledge.Catalog)
		cfg.Knowledge.Policies = resolve(base, cfg.Knowledge.Policies)
	}
	if cfg.Audit.Path != "" {
		cfg.Audit.Path = resolve(base, cfg.Audit.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return cfg, nil
}

// Default returns a config with every optional field set.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Knowledge: KnowledgeConfig{
			MaxCourses: engine.DefaultMaxCourses,
		},
		Audit: AuditConfig{Type: "memory"},
	}
}

func (c *Config) Validate() error {
	if err := c.Knowledge.Validate(); err != nil {
		return fmt.Errorf("validating knowledge: %w", err)
	}
	if c.Audit.Enabled && c.Audit.Type == "file" && c.Audit.Path == "" {
		return fmt.Errorf("audit type 'file' requires a path")
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
