package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"teachsim/internal/account"
	"teachsim/internal/analytics"
	"teachsim/internal/llm"
	"teachsim/internal/logging"
	"teachsim/internal/server"
	"teachsim/internal/simulation"
	"teachsim/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the TeachSim API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Missing .env is fine; environment variables win either way.
		_ = godotenv.Load()

		log, err := logging.New(os.Getenv("TEACHSIM_ENV"))
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		secret := os.Getenv("TEACHSIM_JWT_SECRET")
		if secret == "" {
			return errors.New("TEACHSIM_JWT_SECRET is required")
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
		if err != nil {
			return fmt.Errorf("init LLM provider: %w", err)
		}

		accounts := account.NewService(st.ProfileRepo(), st.SessionRepo(), account.DefaultConfig([]byte(secret)))
		simulator := simulation.NewService(provider, simulation.DefaultConfig())

		events := analytics.NewDispatcher(st.EventRepo(), log, 0)
		defer events.Close()

		var origins []string
		if v := os.Getenv("TEACHSIM_CORS_ORIGINS"); v != "" {
			origins = strings.Split(v, ",")
		}

		handler := server.NewHandler(log, accounts, simulator, events)
		router := server.NewRouter(server.RouterConfig{
			Handler:      handler,
			Accounts:     accounts,
			Log:          log,
			AllowOrigins: origins,
		})

		addr, _ := cmd.Flags().GetString("addr")
		srv := &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Infow("server listening", "addr", addr, "db", dbPath, "model", provider.ModelID())
			errCh <- srv.ListenAndServe()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server: %w", err)
		case sig := <-stop:
			log.Infow("shutting down", "signal", sig.String())
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
