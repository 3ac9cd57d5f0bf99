package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/darmiel/advisor/internal/catalog"
	"github.com/darmiel/advisor/internal/cliconfig"
	"github.com/darmiel/advisor/internal/config"
	"github.com/darmiel/advisor/internal/core"
	"github.com/darmiel/advisor/internal/engine"
	"github.com/darmiel/advisor/internal/knowledge"
	"github.com/darmiel/advisor/internal/logging"
	"github.com/darmiel/advisor/internal/validation"
	"github.com/darmiel/advisor/pkg/client"
)

type Factory struct {
	// RemoteAddr is the address of the Advisor server to connect to.
	RemoteAddr string

	// ConfigPath is the server configuration file (serve, config validate).
	ConfigPath string

	// CatalogPath and PolicyPath select local tables. They take precedence over ConfigPath.
	CatalogPath string
	PolicyPath  string
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) serverAddr() string {
	if f.RemoteAddr != "" { // prio 1: command-line flag
		return f.RemoteAddr
	}
	return viper.GetString(AdvisorAddrKey) // prio 2: config/env
}

// IsRemote reports whether a server address is configured.
func (f *Factory) IsRemote() bool {
	return f.serverAddr() != ""
}

// GetClient returns an authenticated HTTP client for remote operations.
func (f *Factory) GetClient() (*client.Client, error) {
	server := f.serverAddr()
	if server == "" {
		return nil, fmt.Errorf("server address not configured (use --server or set ADVISOR_ADDR)")
	}

	var token string
	if cfg, err := cliconfig.Load(); err == nil {
		if cred, err := cfg.GetCredential(server); err == nil { // token prio 1: saved credential
			token = cred.Token
		} else if !errors.Is(err, cliconfig.ErrCredentialNotFound) {
			return nil, err
		}
	}

	if envToken := viper.GetString(AdvisorTokenKey); envToken != "" { // token prio 2: env var
		token = envToken
	}

	return client.New(server, client.WithAuthToken(token))
}

func (f *Factory) LoadServerConfig() (*config.Config, error) {
	if f.ConfigPath == "" {
		return nil, fmt.Errorf("config file not specified (use --config)")
	}
	return config.Load(f.ConfigPath)
}

// knowledgeConfig returns the table locations from flags, falling back to the server config.
func (f *Factory) knowledgeConfig() (config.KnowledgeConfig, error) {
	if f.CatalogPath != "" || f.PolicyPath != "" {
		kc := config.KnowledgeConfig{
			Catalog:    f.CatalogPath,
			Policies:   f.PolicyPath,
			MaxCourses: engine.DefaultMaxCourses,
		}
		if err := kc.Validate(); err != nil {
			return kc, err
		}
		return kc, nil
	}
	if f.ConfigPath == "" {
		return config.KnowledgeConfig{}, fmt.Errorf("no tables specified (use --catalog and --policies, or --config)")
	}
	cfg, err := f.LoadServerConfig()
	if err != nil {
		return config.KnowledgeConfig{}, err
	}
	return cfg.Knowledge, nil
}

// LoadKnowledge loads and validates the local catalog and policy tables.
func (f *Factory) LoadKnowledge(ctx context.Context) (*knowledge.Base, error) {
	base, _, err := f.LoadAdvisor(ctx)
	return base, err
}

// LoadAdvisor loads the local tables and an engine bounded by the same catalog limit.
func (f *Factory) LoadAdvisor(ctx context.Context) (*knowledge.Base, *engine.Engine, error) {
	kc, err := f.knowledgeConfig()
	if err != nil {
		return nil, nil, err
	}
	src, err := newSource(kc)
	if err != nil {
		return nil, nil, err
	}
	base, err := src.Fetch(ctx, logging.NewZLogger(log.Logger.Level(zerolog.WarnLevel)))
	if err != nil {
		return nil, nil, err
	}
	return base, engine.New(engine.WithMaxCourses(kc.MaxCourses)), nil
}

// newSource builds the knowledge source described by kc.
func newSource(kc config.KnowledgeConfig) (knowledge.Source, error) {
	if gh := kc.GitHub; gh != nil {
		return knowledge.NewGitHubSource(gh.Owner, gh.Repo, gh.Ref, kc.Catalog, kc.Policies, kc.MaxCourses,
			knowledge.WithGitHubToken(gh.Token),
			knowledge.WithGitHubServer(gh.ServerURL))
	}
	return knowledge.NewFileSource(kc.Catalog, kc.Policies, kc.MaxCourses), nil
}

// LoadCatalog loads the local catalog only.
func (f *Factory) LoadCatalog() ([]core.Course, error) {
	kc, err := f.knowledgeConfig()
	if err != nil && kc.Catalog == "" {
		return nil, err
	}
	courses, err := catalog.LoadCourses(kc.Catalog)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateCatalog(courses, kc.MaxCourses); err != nil {
		return nil, err
	}
	return courses, nil
}

// LoadPolicies loads the local policy table only.
func (f *Factory) LoadPolicies() ([]core.PolicyRow, error) {
	kc, err := f.knowledgeConfig()
	if err != nil && kc.Policies == "" {
		return nil, err
	}
	return catalog.LoadPolicies(kc.Policies)
}

func (f *Factory) bindConfigFlag(flags *pflag.FlagSet) {
	flags.StringVarP(&f.ConfigPath, "config", "c", os.Getenv("ADVISOR_CONFIG"), "The Advisor server config file to use")
}

func (f *Factory) bindTableFlags(flags *pflag.FlagSet) {
	flags.StringVar(&f.CatalogPath, "catalog", "", "Course catalog table (.csv, .yaml)")
	flags.StringVar(&f.PolicyPath, "policies", "", "Policy table (.csv, .yaml)")
	f.bindConfigFlag(flags)
}
