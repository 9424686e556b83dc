package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/timebox/internal/classifier"
	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/fetcher"
	"github.com/pbaille/timebox/internal/schedule"
	"github.com/pbaille/timebox/internal/timeparse"
)

func addCmd() *cobra.Command {
	var (
		category string
		day      string
	)

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task; a leading time like \"3pm\" or \"tomorrow 9am\" schedules it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			text := strings.Join(args, " ")
			now := time.Now()

			sched := domain.Unscheduled()
			if day != "" {
				d, err := parseDay(day, now)
				if err != nil {
					return err
				}
				sched = domain.OnDay(d)
			}

			title, notes := text, ""
			if fetcher.IsURL(text) {
				fetched, err := fetcher.FetchTitle(ctx, text)
				if err != nil {
					fmt.Printf("(title lookup skipped: %v)\n", err)
				} else {
					title, notes = fetched, text
				}
			} else if res, ok := timeparse.Parse(text); ok {
				title, sched = res.Title, res.Schedule()
			}

			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}
			if category == "" {
				cat = classifier.New(conf.AnthropicAPIKey, logger).Classify(ctx, title)
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			task := domain.NewTask(title, cat, sched, now)
			task.Notes = notes
			if err := s.InsertTask(ctx, task); err != nil {
				return err
			}

			fmt.Printf("Added task: %s\n", shortID(task.ID))
			fmt.Printf("  %s\n", renderTaskLine(task, conf.TimeFormat))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "sleep, work, personal or health (guessed when empty)")
	cmd.Flags().StringVarP(&day, "day", "d", "", "anchor day when the text has no time (YYYY-MM-DD, today, tomorrow)")
	return cmd
}

func unscheduledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unscheduled",
		Short: "List tasks with no day or time",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.AllTasks(cmd.Context())
			if err != nil {
				return err
			}

			loose := schedule.UnscheduledTasks(tasks)
			if len(loose) == 0 {
				fmt.Println("Nothing unscheduled.")
				return nil
			}
			for _, t := range loose {
				fmt.Println(renderTaskLine(t, conf.TimeFormat))
			}
			return nil
		},
	}
}

func doneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task's completion (id prefix accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.ResolveTaskID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			task, err := s.ToggleTask(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Println(renderTaskLine(task, conf.TimeFormat))
			return nil
		},
	}
}

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a task (id prefix accepted)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			id, err := s.ResolveTaskID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := s.DeleteTask(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted task: %s\n", shortID(id))
			return nil
		},
	}
}
