package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pbaille/timebox/internal/api"
	"github.com/pbaille/timebox/internal/classifier"
	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/fetcher"
	"github.com/pbaille/timebox/internal/gcal"
	"github.com/pbaille/timebox/internal/schedule"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = conf.Addr
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := api.New(s, addr, logger,
				api.WithClassifier(classifier.New(conf.AnthropicAPIKey, logger)),
				api.WithTitleFetcher(fetcher.FetchTitle),
			)
			fmt.Printf("Listening on %s\n", addr)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from TIMEBOX_ADDR)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks to external calendars",
	}
	cmd.AddCommand(exportGCalCmd())
	return cmd
}

func exportGCalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gcal [date]",
		Short: "Push scheduled tasks to Google Calendar (one day, or all when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.AllTasks(ctx)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				day, err := dayArg(args, 0)
				if err != nil {
					return err
				}
				tasks = schedule.TasksForDay(tasks, day)
			}

			return pushToGCal(ctx, tasks)
		},
	}
}

func pushToGCal(ctx context.Context, tasks []domain.Task) error {
	client, err := gcal.Connect(ctx, conf.GCalDir, conf.GCalCalendar, logger)
	if err != nil {
		return err
	}
	res, err := client.Push(ctx, tasks)
	if err != nil {
		return err
	}
	fmt.Printf("Google Calendar %q: %d created, %d updated, %d skipped\n",
		conf.GCalCalendar, res.Created, res.Updated, res.Skipped)
	return nil
}
