package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/advisor/internal/api"
	"github.com/darmiel/advisor/internal/audit"
	"github.com/darmiel/advisor/internal/engine"
	"github.com/darmiel/advisor/internal/knowledge"
	"github.com/darmiel/advisor/internal/service"
	"github.com/darmiel/advisor/internal/tasks"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Advisor server",
	Long: `Serves recommendations over HTTP. The catalog and policy tables are loaded
on startup and reloaded periodically, on file change (watch: true) or on demand
via the admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadServerConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log.Info().Msg("Initializing auditor...")
		auditor, err := audit.New(cfg.Audit.Enabled, cfg.Audit.Type, cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("initializing auditor: %w", err)
		}
		defer func() {
			if err := auditor.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close auditor")
			}
		}()

		// knowledge base is loaded by the reload task, starting empty
		kb := knowledge.NewManager(nil)
		src, err := newSource(cfg.Knowledge)
		if err != nil {
			return fmt.Errorf("initializing knowledge source: %w", err)
		}

		taskManager := tasks.NewManager(ctx)
		taskManager.Register(knowledge.ReloadTaskName, cfg.Knowledge.ReloadInterval, knowledge.ReloadTask(src, kb))

		log.Info().Msg("Loading knowledge base...")
		if err := taskManager.RunNow(ctx, knowledge.ReloadTaskName); err != nil {
			return fmt.Errorf("loading knowledge base: %w", err)
		}

		if fs, ok := src.(*knowledge.FileSource); ok && cfg.Knowledge.Watch {
			paths := fs.Paths()
			watcher, err := knowledge.NewWatcher(paths, knowledge.DefaultDebounce, func() {
				if err := taskManager.Trigger(knowledge.ReloadTaskName); err != nil {
					log.Warn().Err(err).Msg("failed to trigger knowledge reload")
				}
			})
			if err != nil {
				return fmt.Errorf("watching knowledge files: %w", err)
			}
			go watcher.Run(ctx)
			log.Info().Strs("files", paths).Msg("Watching knowledge files for changes")
		}

		svc := service.NewAdvisorService(kb,
			engine.New(engine.WithMaxCourses(cfg.Knowledge.MaxCourses)),
			auditor,
			service.WithRedactedProfiles(cfg.Audit.RedactProfiles))

		signingKey := []byte(cfg.Admin.SigningKey)
		if len(signingKey) == 0 {
			log.Warn().Msg("No admin signing key configured, admin API is disabled")
		}

		srv := api.NewServer(svc, taskManager)
		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Routes(signingKey),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case <-ctx.Done():
		case err := <-errCh:
			return fmt.Errorf("server crashed: %w", err)
		}
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f.bindConfigFlag(serveCmd.Flags())
	serveCmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
}
