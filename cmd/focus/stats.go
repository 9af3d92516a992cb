package main

import (
	"fmt"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/tracker"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's focus time, completed sessions, and streak",
	Args:  cobra.NoArgs,
	RunE:  withApp(runStats),
}

var (
	statsFormat outputFormat
	statsDays   int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().IntVar(&statsDays, "days", tracker.DefaultHistoryDays, "Days of history to show")
	addFormatFlag(statsCmd, &statsFormat)
}

func runStats(cmd *cobra.Command, args []string, a *app) error {
	service := tracker.NewProgressService(a.sessions, tracker.ProgressOptions{
		Logger:      a.logger,
		GoalMinutes: a.cfg.Goals.DailyMinutes,
		HistoryDays: statsDays,
	})

	report, err := service.Report(a.userID, a.now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, statsFormat, report); handled || err != nil {
		return err
	}
	fmt.Fprintln(out, ui.RenderStats(statsView(report)))
	return nil
}

func statsView(report tracker.Report) ui.StatsView {
	view := ui.StatsView{
		TodayMinutes:      report.Progress.TotalMinutes,
		GoalMinutes:       report.Progress.GoalMinutes,
		Fraction:          report.Progress.Fraction,
		RemainingMinutes:  report.Progress.RemainingMinutes,
		GoalReached:       report.Progress.GoalReached,
		CompletedSessions: report.Stats.CompletedSessions,
		StreakDays:        report.Stats.StreakDays,
	}
	for _, day := range report.History {
		view.History = append(view.History, ui.HistoryBar{
			Label:   day.Day.Format("Mon 01/02"),
			Minutes: day.Minutes,
		})
	}
	return view
}
