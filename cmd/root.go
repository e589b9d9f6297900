// Package cmd implements the lifeos CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/lifeos/internal/chat"
	"github.com/theirongolddev/lifeos/internal/config"
	"github.com/theirongolddev/lifeos/internal/design"
	"github.com/theirongolddev/lifeos/internal/gemini"
	"github.com/theirongolddev/lifeos/internal/habit"
	"github.com/theirongolddev/lifeos/internal/logger"
	"github.com/theirongolddev/lifeos/internal/model"
	"github.com/theirongolddev/lifeos/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flagLogLevel string
	flagVerbose  bool
)

// appCfg is loaded once per invocation by loadRuntimeConfig.
var appCfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "lifeos",
	Short: "Asisten harian muslim: chat AI, tabungan, habit, dan design studio",
	Long: "lifeos bundles a Gemini-backed chat assistant (general and business coach),\n" +
		"a savings planner, a daily habit tracker and an image/video prompt studio.",
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntimeConfig,
	PersistentPostRun: func(*cobra.Command, []string) { _ = logger.Sync() },
	RunE:              runToday,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Also log to stderr")
}

// loadRuntimeConfig reads .env and the config file, then starts the logger.
// Logs go to a file so they never interleave with terminal UI output.
func loadRuntimeConfig(cmd *cobra.Command, _ []string) error {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "  Config error, using defaults: %v\n", err)
	}
	appCfg = cfg

	level := logger.LogLevel(appCfg.Log.Level)
	if flagLogLevel != "" {
		level = logger.LogLevel(flagLogLevel)
	}

	var outputs []string
	logPath := config.LogPath(appCfg)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
		outputs = append(outputs, logPath)
	}
	if flagVerbose || cmd.Name() == serveCmd.Name() {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return nil
	}

	if err := logger.Init(appCfg.Log.Development, level, outputs...); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

// runtime wires the domain services for one process. Everything lives in an
// in-memory database and is gone when the process exits.
type runtime struct {
	store         *store.Store
	manager       *chat.Manager
	conversations map[model.Mode]*chat.Conversation
	habits        *habit.Tracker
	studio        *design.Studio
}

func openRuntime(ctx context.Context) (*runtime, error) {
	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// Interfaces stay nil (not typed-nil pointers) when there is no client,
	// so the manager and studio see the credential as missing.
	var (
		factory chat.SessionFactory
		images  design.ImageGenerator
	)
	client, err := gemini.NewClient(ctx, config.GetAPIKey(appCfg), gemini.Options{
		TextModel:  appCfg.Gemini.TextModel,
		ImageModel: appCfg.Gemini.ImageModel,
	})
	switch {
	case err == nil:
		factory, images = client, client
		logger.Get().Info("gemini client ready", zap.String("model", client.TextModel()))
	case errors.Is(err, gemini.ErrCredentialMissing):
		logger.Get().Warn("no Gemini API key; running offline")
	default:
		logger.Get().Error("gemini client unavailable", zap.Error(err))
	}

	mgr := chat.NewManager(factory)
	convs := make(map[model.Mode]*chat.Conversation, 2)
	for _, mode := range []model.Mode{model.ModeGeneral, model.ModeBusiness} {
		c, err := chat.NewConversation(st, mgr, mode)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("opening %s conversation: %w", mode, err)
		}
		convs[mode] = c
	}

	habits, err := habit.New(st)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("seeding habits: %w", err)
	}

	return &runtime{
		store:         st,
		manager:       mgr,
		conversations: convs,
		habits:        habits,
		studio:        design.NewStudio(images, mgr),
	}, nil
}

func (r *runtime) Close() error {
	return r.store.Close()
}

func maskAPIKey(key string) string {
	if len(key) > 16 {
		return key[:8] + "..." + key[len(key)-4:]
	}
	if len(key) > 4 {
		return key[:4] + "..."
	}
	return "****"
}
