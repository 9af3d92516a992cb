package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Track focus sessions and breaks",
}

// session start
var sessionStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the next planned session",
	Long: `Start a session.

Without --focus or --break the timer settings pick the next session type:
a break after a finished focus session (a long break every few focus
sessions), otherwise focus.`,
	Args: cobra.NoArgs,
	RunE: withApp(runSessionStart),
}

var (
	sessionStartTask    string
	sessionStartBreak   bool
	sessionStartFocus   bool
	sessionStartMinutes int
)

// session stop
var sessionStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running session",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionStop),
}

var sessionStopNotes string

// session status
var sessionStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session or the next planned one",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionStatus),
}

// session log
var sessionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a session that already happened",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionLog),
}

var (
	sessionLogStart   string
	sessionLogMinutes int
	sessionLogTask    string
	sessionLogBreak   bool
	sessionLogNotes   string
)

// session note
var sessionNoteCmd = &cobra.Command{
	Use:   "note <id> <notes>",
	Short: "Replace a session's notes",
	Args:  cobra.ExactArgs(2),
	RunE:  withApp(runSessionNote),
}

// session list
var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  withApp(runSessionList),
}

var (
	sessionListSince  string
	sessionListType   string
	sessionListFormat outputFormat
)

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionStartCmd, sessionStopCmd, sessionStatusCmd, sessionLogCmd, sessionNoteCmd, sessionListCmd)

	sessionStartCmd.Flags().StringVar(&sessionStartTask, "task", "", "Task to work on (ID or prefix)")
	sessionStartCmd.Flags().BoolVar(&sessionStartBreak, "break", false, "Start a break")
	sessionStartCmd.Flags().BoolVar(&sessionStartFocus, "focus", false, "Start a focus session")
	sessionStartCmd.Flags().IntVarP(&sessionStartMinutes, "minutes", "m", 0, "Override the planned length")
	sessionStartCmd.MarkFlagsMutuallyExclusive("break", "focus")

	sessionStopCmd.Flags().StringVar(&sessionStopNotes, "notes", "", "Notes about the session")

	sessionLogCmd.Flags().StringVar(&sessionLogStart, "start", "", "Start time (HH:MM, YYYY-MM-DD HH:MM, or RFC 3339; default: minutes ago)")
	sessionLogCmd.Flags().IntVarP(&sessionLogMinutes, "minutes", "m", 0, "Length in minutes")
	sessionLogCmd.Flags().StringVar(&sessionLogTask, "task", "", "Task worked on (ID or prefix)")
	sessionLogCmd.Flags().BoolVar(&sessionLogBreak, "break", false, "Record a break instead of focus")
	sessionLogCmd.Flags().StringVar(&sessionLogNotes, "notes", "", "Notes about the session")
	_ = sessionLogCmd.MarkFlagRequired("minutes")

	sessionListCmd.Flags().StringVar(&sessionListSince, "since", "", "Only sessions since a date (YYYY-MM-DD) or span (7d)")
	sessionListCmd.Flags().StringVar(&sessionListType, "type", "", "Only sessions of this type (focus, break)")
	addFormatFlag(sessionListCmd, &sessionListFormat)
}

func sessionTypeFromFlags(isBreak, isFocus bool) session.Type {
	switch {
	case isBreak:
		return session.TypeBreak
	case isFocus:
		return session.TypeFocus
	default:
		return ""
	}
}

func runSessionStart(cmd *cobra.Command, args []string, a *app) error {
	if sessionStartMinutes < 0 {
		return fmt.Errorf("%w: got %d", session.ErrNegativeDuration, sessionStartMinutes)
	}
	result, err := a.sessionManager().Start(a.userID, session.StartOptions{
		TaskID:  sessionStartTask,
		Type:    sessionTypeFromFlags(sessionStartBreak, sessionStartFocus),
		Minutes: sessionStartMinutes,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	started := result.Session
	fmt.Fprintf(out, "Started %s %s (%s)\n", describePlan(result.Plan), shortSessionID(started.ID), ui.FormatMinutes(result.Plan.Minutes))
	if result.Task != nil {
		fmt.Fprintf(out, "Task: %s %s\n", result.Task.ID, result.Task.Title)
	}
	end := started.StartTime.Add(time.Duration(result.Plan.Minutes) * time.Minute)
	fmt.Fprintf(out, "Ends at %s\n", end.In(a.loc).Format(clockLayout))
	return nil
}

func runSessionStop(cmd *cobra.Command, args []string, a *app) error {
	stopped, err := a.sessionManager().Stop(a.userID, session.StopOptions{Notes: sessionStopNotes})
	if errors.Is(err, session.ErrNoActiveSession) {
		return fmt.Errorf("%w: start one with `focus session start`", err)
	}
	if err != nil {
		return err
	}

	minutes, _ := session.Minutes(*stopped)
	fmt.Fprintf(cmd.OutOrStdout(), "Stopped %s session %s after %s\n", stopped.Type, shortSessionID(stopped.ID), ui.FormatMinutes(minutes))
	return nil
}

func runSessionStatus(cmd *cobra.Command, args []string, a *app) error {
	out := cmd.OutOrStdout()
	now := a.now()

	active, err := a.sessions.ActiveSession(a.userID)
	switch {
	case err == nil:
		fmt.Fprintf(out, "Running %s session %s since %s\n", active.Type, shortSessionID(active.ID), active.StartTime.In(a.loc).Format(clockLayout))
		if active.PlannedMinutes != nil {
			remaining := session.Remaining(*active, now)
			if remaining > 0 {
				fmt.Fprintf(out, "Remaining: %s\n", ui.FormatCountdown(remaining))
			} else {
				fmt.Fprintf(out, "Over by %s\n", ui.FormatCountdown(session.Elapsed(*active, now)-time.Duration(*active.PlannedMinutes)*time.Minute))
			}
		} else {
			fmt.Fprintf(out, "Elapsed: %s\n", ui.FormatCountdown(session.Elapsed(*active, now)))
		}
		return nil
	case !errors.Is(err, session.ErrNoActiveSession):
		return err
	}

	plan, err := a.sessionManager().Next(a.userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "No session running. Next: %s (%s)\n", describePlan(plan), ui.FormatMinutes(plan.Minutes))
	return nil
}

func runSessionLog(cmd *cobra.Command, args []string, a *app) error {
	opts := session.LogOptions{
		TaskID:  sessionLogTask,
		Type:    sessionTypeFromFlags(sessionLogBreak, false),
		Minutes: sessionLogMinutes,
		Notes:   sessionLogNotes,
	}
	if sessionLogStart != "" {
		start, err := parseMoment(sessionLogStart, a.now())
		if err != nil {
			return err
		}
		opts.Start = start
	}

	logged, err := a.sessionManager().Log(a.userID, opts)
	if err != nil {
		return err
	}
	minutes, _ := session.Minutes(*logged)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session %s: %s at %s\n",
		logged.Type, shortSessionID(logged.ID), ui.FormatMinutes(minutes), ui.FormatClock(logged.StartTime, a.loc))
	return nil
}

func runSessionNote(cmd *cobra.Command, args []string, a *app) error {
	notes := strings.TrimSpace(args[1])
	updated, err := a.sessions.UpdateSession(args[0], session.UpdateOptions{Notes: &notes})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated notes on session %s\n", shortSessionID(updated.ID))
	return nil
}

func runSessionList(cmd *cobra.Command, args []string, a *app) error {
	now := a.now()
	since, err := parseSince(sessionListSince, now)
	if err != nil {
		return err
	}

	items, err := a.sessions.ListSessions(a.userID, since)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("type") {
		typ, err := session.ParseType(sessionListType)
		if err != nil {
			return err
		}
		items = filterSessionType(items, typ)
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, sessionListFormat, items); handled || err != nil {
		return err
	}

	if len(items) == 0 {
		total := 0
		if !since.IsZero() {
			all, err := a.sessions.ListSessions(a.userID, time.Time{})
			if err != nil {
				return err
			}
			total = len(all)
		}
		fmt.Fprintln(out, sessionEmptyListMessage(total, sessionListSince))
		return nil
	}
	fmt.Fprint(out, formatSessionTable(items, now, a.loc))
	return nil
}

func filterSessionType(items []session.Session, typ session.Type) []session.Session {
	filtered := items[:0]
	for _, item := range items {
		if item.Type.IsFocus() == typ.IsFocus() {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// describePlan names a plan: "focus session", "break", "long break".
func describePlan(plan session.Plan) string {
	switch {
	case plan.LongBreak:
		return "long break"
	case plan.Type == session.TypeBreak:
		return "break"
	default:
		return "focus session"
	}
}

const shortSessionIDLength = 8

// shortSessionID abbreviates a session UUID for display. session note
// accepts it as a prefix.
func shortSessionID(id string) string {
	if len(id) <= shortSessionIDLength {
		return id
	}
	return id[:shortSessionIDLength]
}

func formatSessionTable(items []session.Session, now time.Time, loc *time.Location) string {
	builder := ui.NewTableBuilder([]string{"ID", "TYPE", "START", "MIN", "STATE", "TASK", "NOTES"}, len(items)).AlignRight(3)

	for _, item := range items {
		minutes := "-"
		state := "done"
		if item.IsOpen() {
			state = "running"
			minutes = ui.FormatMinutes(int(session.Elapsed(item, now) / time.Minute))
		} else if value, source := session.Minutes(item); source != session.SourceMissing {
			minutes = ui.FormatMinutes(value)
		}

		taskID := item.TaskID
		if taskID == "" {
			taskID = "-"
		}
		notes := strings.TrimSpace(item.Notes)
		if notes == "" {
			notes = "-"
		}

		typ := item.Type
		if typ == "" {
			typ = session.TypeFocus
		}

		builder.AddRow(
			shortSessionID(item.ID),
			string(typ),
			ui.FormatClock(item.StartTime, loc),
			minutes,
			state,
			taskID,
			notes,
		)
	}

	return builder.String()
}
