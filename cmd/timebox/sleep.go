package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pbaille/timebox/internal/domain"
	"github.com/pbaille/timebox/internal/sleep"
	"github.com/pbaille/timebox/internal/timeutil"
)

func sleepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Inspect or set the sleep window of a day",
	}
	cmd.AddCommand(sleepShowCmd())
	cmd.AddCommand(sleepSetCmd())
	return cmd
}

func sleepShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the sleep window of a day (default today)",
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

			w, err := s.SleepWindowFor(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Println(renderSleepWindow(w, conf.TimeFormat))
			return nil
		},
	}
}

func sleepSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [date] [HH:MM] [hours]",
		Short: "Set bedtime and sleep length for a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := dayArg(args, 0)
			if err != nil {
				return err
			}
			h, m, err := timeutil.ParseClock(args[1])
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q: %w", args[2], err)
			}

			start, end := sleep.FromStartAndDuration(day, h, m, hours)
			if err := sleep.ValidateDuration(end.Sub(start)); err != nil {
				return err
			}

			s, err := getStore()
			if err != nil {
				return err
			}
			defer s.Close()

			w, err := s.SaveSleepWindow(cmd.Context(), day, start, end)
			if err != nil {
				return err
			}
			fmt.Println(renderSleepWindow(w, conf.TimeFormat))
			return nil
		},
	}
}

func renderSleepWindow(w domain.SleepWindow, format string) string {
	out := fmt.Sprintf("%s %s %s → %s (%.1fh)",
		timeutil.FormatDay(w.Day), moonMark, w.Start.Format(format), w.End.Format(format), w.Hours())
	if w.ID == "" {
		out += faintStyle.Render(" default")
	}
	return out
}
