package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/api/middleware"
	"github.com/darmiel/advisor/internal/cliconfig"
)

var (
	loginSigningKey string
	loginSubject    string
	loginTTL        time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login [TOKEN]",
	Short: "Store an admin session for an Advisor server",
	Long: `Saves an admin session token for the configured server so that admin
commands (audit, tasks) are authenticated. Either pass an existing token or
mint a new one with --signing-key (the admin.signing_key of the server).`,
	Example: `  advisor login --server localhost:8080 --signing-key "$ADVISOR_SIGNING_KEY"
  advisor login --server localhost:8080 eyJhbGciOi...`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := f.serverAddr()
		if server == "" {
			return fmt.Errorf("server address not configured, provide via --server or env")
		}
		host, err := cliconfig.ServerHost(server)
		if err != nil {
			return err
		}

		var token string
		switch {
		case len(args) == 1 && args[0] != "":
			token = args[0]
		case loginSigningKey != "":
			claims := jwt.RegisteredClaims{
				IssuedAt: jwt.NewNumericDate(time.Now()),
			}
			if loginTTL > 0 {
				claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(loginTTL))
			}
			token, err = middleware.NewAdminToken([]byte(loginSigningKey), loginSubject, claims)
			if err != nil {
				return fmt.Errorf("signing admin token: %w", err)
			}
		default:
			return fmt.Errorf("provide a token or --signing-key")
		}

		cfg, err := cliconfig.Load()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = &cliconfig.CLIConfig{}
		}
		if err := cfg.SetCredential(server, &cliconfig.Credential{Token: token}); err != nil {
			return err
		}
		if err := cliconfig.Save(cfg); err != nil {
			return logError(err, "", "could not save credentials")
		}

		log.Debug().Str("subject", loginSubject).Msg("stored admin session")
		logSuccess("saved credentials for %s", bold(host))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVar(&loginSigningKey, "signing-key", "", "Admin signing key to mint a session token with")
	loginCmd.Flags().StringVar(&loginSubject, "subject", "cli", "Subject of the minted session token")
	loginCmd.Flags().DurationVar(&loginTTL, "ttl", 12*time.Hour, "Lifetime of the minted session token (0 = no expiry)")
}
