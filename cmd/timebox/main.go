package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pbaille/timebox/internal/config"
	"github.com/pbaille/timebox/internal/logging"
	"github.com/pbaille/timebox/internal/store"
	"github.com/pbaille/timebox/internal/timeutil"
)

var (
	dbPath     string
	configPath string

	conf    config.Config
	logger  *log.Logger
	logFile io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "timebox",
		Short:         "Time-boxed day planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides TIMEBOX_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "dotenv config file")

	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(dayCmd())
	rootCmd.AddCommand(slotCmd())
	rootCmd.AddCommand(blockCmd())
	rootCmd.AddCommand(unscheduledCmd())
	rootCmd.AddCommand(progressCmd())
	rootCmd.AddCommand(sleepCmd())
	rootCmd.AddCommand(doneCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(exportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setup() error {
	var err error
	conf, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		conf.DBPath = dbPath
	}

	var w io.Writer = os.Stderr
	if conf.LogPath != "" {
		f, err := logging.OpenFile(conf.LogPath)
		if err != nil {
			return err
		}
		w, logFile = f, f
	}
	logger = logging.New(logging.Options{Writer: w, Level: conf.LogLevel})
	logger.Debug("loaded config", "db", conf.DBPath, "addr", conf.Addr)
	return nil
}

func getStore() (*store.Store, error) {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(conf.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return store.New(conf.DBPath, logger)
}

// parseDay accepts YYYY-MM-DD, "today", "tomorrow" and "yesterday"
func parseDay(s string, now time.Time) (time.Time, error) {
	today := timeutil.StartOfDay(now)
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return timeutil.AddDays(today, 1), nil
	case "yesterday":
		return timeutil.AddDays(today, -1), nil
	}
	return timeutil.ParseDay(s)
}

// dayArg reads an optional day from args[i], defaulting to today
func dayArg(args []string, i int) (time.Time, error) {
	if len(args) > i {
		return parseDay(args[i], time.Now())
	}
	return parseDay("", time.Now())
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
