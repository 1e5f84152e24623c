package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/glabrego/reels-cli/internal/app"
	"github.com/glabrego/reels-cli/internal/config"
	"github.com/glabrego/reels-cli/internal/likes"
	"github.com/glabrego/reels-cli/internal/reels"
	"github.com/glabrego/reels-cli/internal/storage"
	"github.com/glabrego/reels-cli/internal/tui"
)

// runtime is the state shared by every subcommand once PersistentPreRunE
// has opened storage and logging.
type runtime struct {
	dbPath  string
	apiURL  string
	cfg     config.Config
	repo    *storage.Repository
	logFile io.Closer
	logger  *log.Logger
	store   *likes.PersistedStore
	service *app.Service
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(&runtime{})
}

func buildRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "reels",
		Short:         "Swipe through travel reels in the terminal",
		Long:          "A vertical reel pager for the terminal. Likes are kept locally in SQLite.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return rt.open(cmd)
		},
		RunE: rt.closing(func(cmd *cobra.Command, args []string) error {
			return rt.runTUI()
		}),
	}
	root.PersistentFlags().StringVar(&rt.dbPath, "db", "", "SQLite database path (default: $REELS_DB_PATH or reels.db)")
	root.PersistentFlags().StringVar(&rt.apiURL, "api-url", "", "reels API base URL (default: $REELS_API_BASE_URL)")

	root.AddCommand(newLikesCmd(rt), newFeedCmd(rt), newVersionCmd())
	return root
}

// open loads config and opens logging and storage. Anything it opened is
// closed again when it fails.
func (rt *runtime) open(cmd *cobra.Command) (err error) {
	defer func() {
		if err != nil {
			_ = rt.close()
		}
	}()

	if _, err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("dotenv error: %w", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if rt.dbPath != "" {
		cfg.DBPath = rt.dbPath
	}
	if rt.apiURL != "" {
		cfg.APIBaseURL = rt.apiURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	rt.cfg = cfg

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", cfg.LogPath, err)
	}
	rt.logFile = logFile
	rt.logger = log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "reels",
	})
	log.SetDefault(rt.logger)

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("storage init error: %w", err)
	}
	rt.repo = repo

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()
	if err := repo.Init(ctx); err != nil {
		return fmt.Errorf("storage schema error: %w", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		return fmt.Errorf("storage write check failed (%v). Verify REELS_DB_PATH is writable: %s", err, cfg.DBPath)
	}

	rt.store = likes.NewPersistedStore(repo, rt.logger)
	client := reels.NewClient(cfg.APIBaseURL, cfg.APIToken, nil)
	rt.service = app.NewService(client, rt.store, cfg.PageSize, rt.logger)
	rt.logger.Debug("runtime ready", "db", cfg.DBPath, "api", cfg.APIBaseURL, "command", cmd.Name())
	return nil
}

// closing wraps a command body so the runtime is closed whether the body
// succeeds or fails. cobra skips post-run hooks after an error.
func (rt *runtime) closing(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if cerr := rt.close(); err == nil {
				err = cerr
			}
		}()
		return run(cmd, args)
	}
}

func (rt *runtime) close() error {
	var firstErr error
	if rt.repo != nil {
		if err := rt.repo.Close(); err != nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
		rt.repo = nil
	}
	if rt.logFile != nil {
		if err := rt.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close log file: %w", err)
		}
		rt.logFile = nil
	}
	return firstErr
}

func (rt *runtime) runTUI() error {
	model := tui.NewModel(rt.service, rt.service.NewController(), rt.cfg.VisibleThreshold)
	model.SetLogger(rt.logger)

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
