package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/schedule"
	"github.com/pbaille/timebox/internal/timeutil"
)

func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [date]",
		Short: "Show the hourly timeline of a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx := cmd.Context()
			tasks, err := s.AllTasks(ctx)
			if err != nil {
				return err
			}
			window, err := s.SleepWindowFor(ctx, day)
			if err != nil {
				return err
			}

			slots := schedule.Timeline(tasks, window, day)
			fmt.Print(renderTimeline(day, slots, schedule.TasksForDay(tasks, day), schedule.DailyProgress(tasks, day), conf.TimeFormat))
			return nil
		},
	}
}

func slotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slot [date] [hour]",
		Short: "List timed tasks occupying one hour of a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}
			hour, err := strconv.Atoi(args[1])
			if err != nil || hour < 0 || hour >= schedule.SlotsPerDay {
				return fmt.Errorf("hour must be 0-23, got %q", args[1])
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.AllTasks(cmd.Context())
			if err != nil {
				return err
			}

			found := schedule.TasksForSlot(tasks, day, hour)
			if len(found) == 0 {
				fmt.Printf("Nothing at %s.\n", timeutil.At(day, hour, 0).Format(conf.TimeFormat))
				return nil
			}
			for _, t := range found {
				fmt.Println(renderTaskLine(t, conf.TimeFormat))
			}
			return nil
		},
	}
}

func blockCmd() *cobra.Command {
	var (
		duration time.Duration
		category string
	)

	durations := make([]string, len(schedule.SlotDurations))
	for i, d := range schedule.SlotDurations {
		durations[i] = d.String()
	}

	cmd := &cobra.Command{
		Use:   "block [date] [HH:MM] [title]",
		Short: "Block out time for a task at a clock time",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}
			h, m, err := timeutil.ParseClock(args[1])
			if err != nil {
				return err
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}

			task, err := schedule.SlotTask(strings.Join(args[2:], " "), cat, day, h, m, duration, time.Now())
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.InsertTask(cmd.Context(), task); err != nil {
				return err
			}
			fmt.Printf("Added task: %s\n", shortID(task.ID))
			fmt.Printf("  %s\n", renderTaskLine(task, conf.TimeFormat))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "for", "f", time.Hour, "length of the block ("+strings.Join(durations, ", ")+")")
	cmd.Flags().StringVarP(&category, "category", "c", "", "sleep, work, personal or health")
	return cmd
}

func progressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress [date]",
		Short: "Show completed vs total tasks for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.AllTasks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", timeutil.FormatDay(day), renderProgress(schedule.DailyProgress(tasks, day)))
			return nil
		},
	}
}

func monthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show a month calendar with task counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			month := now
			if len(args) == 1 {
				m, err := time.ParseInLocation("2006-01", args[0], time.Local)
				if err != nil {
					return fmt.Errorf("invalid month %q: %w", args[0], err)
				}
				month = m
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			tasks, err := s.AllTasks(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(renderMonth(month, tasks, now))
			return nil
		},
	}
}
