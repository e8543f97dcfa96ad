package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lowkeyshift/planwise/internal/profile"
	"github.com/lowkeyshift/planwise/plugin/ai"
	"github.com/lowkeyshift/planwise/plugin/ai/agent"
	"github.com/lowkeyshift/planwise/plugin/ai/aitime"
	"github.com/lowkeyshift/planwise/plugin/ai/intent"
	"github.com/lowkeyshift/planwise/plugin/ai/session"
	"github.com/lowkeyshift/planwise/plugin/ai/slots"
	"github.com/lowkeyshift/planwise/plugin/calendar"
	"github.com/lowkeyshift/planwise/server"
)

const version = "0.1.0"

var (
	instanceProfile *profile.Profile

	rootCmd = &cobra.Command{
		Use:   "planwise",
		Short: "A natural-language calendar booking assistant",
		Run: func(_ *cobra.Command, _ []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			initLogger(instanceProfile)

			srv, err := buildServer(ctx, instanceProfile)
			if err != nil {
				cancel()
				slog.Error("failed to build server", "error", err)
				return
			}

			sigc := make(chan os.Signal, 1)
			signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-sigc
				slog.Info("received signal, shutting down", "signal", sig.String())
				srv.Shutdown(ctx)
				cancel()
			}()

			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("failed to start server", "error", err)
				cancel()
			}

			<-ctx.Done()
		},
	}
)

func init() {
	viper.SetDefault("mode", "demo")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 8080)
	viper.SetDefault("data", "")

	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of server")
	rootCmd.PersistentFlags().String("data", "", "data directory")

	if err := viper.BindPFlag("mode", rootCmd.PersistentFlags().Lookup("mode")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("data", rootCmd.PersistentFlags().Lookup("data")); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("planwise")
	viper.AutomaticEnv()

	cobra.OnInitialize(func() {
		instanceProfile = &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
			os.Exit(1)
		}
	})
}

func initLogger(p *profile.Profile) {
	var handler slog.Handler
	if p.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))
}

// buildServer wires every capability once at startup and injects them into
// the orchestrator. Nothing is looked up from global state afterwards.
func buildServer(ctx context.Context, p *profile.Profile) (*server.Server, error) {
	llm, err := ai.NewLLMService(ai.NewConfigFromProfile(p))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize inference service")
	}
	if llm == nil {
		slog.Warn("no inference provider configured, running rule-only")
	}

	var cal calendar.Service
	if p.IsCalendarConfigured() {
		cal, err = calendar.NewGoogleService(ctx, p.CalendarCredentials, p.CalendarID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize calendar service")
		}
	} else {
		slog.Warn("no calendar credentials configured, using in-memory calendar")
		cal = calendar.NewMockService()
	}

	var sessions session.Service
	if p.Mode == "demo" {
		sessions = session.NewMemoryStore()
	} else {
		sessions, err = session.NewSQLiteStore(p.DSN)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open session store")
		}
		cleanup := session.NewCleanupJob(sessions, session.CleanupConfig{
			RetentionDays: p.SessionRetentionDays,
		})
		cleanup.Start(ctx)
	}

	orchestrator := agent.New(
		intent.NewService(llm),
		slots.NewService(llm),
		aitime.NewParser(p.Location()),
		cal,
		sessions,
		llm,
		agent.WithSlotDuration(time.Duration(p.SlotDurationMinutes)*time.Minute),
	)

	return server.NewServer(p, orchestrator, sessions), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
