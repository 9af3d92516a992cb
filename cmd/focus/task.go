package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/amonks/focus/internal/editor"
	"github.com/amonks/focus/internal/listflags"
	internalstrings "github.com/amonks/focus/internal/strings"
	"github.com/amonks/focus/internal/ui"
	"github.com/amonks/focus/priority"
	"github.com/amonks/focus/task"
	"github.com/amonks/focus/tracker"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task add
var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a task",
	Long: `Add a task.

Only a title is required. Use --edit to fill in the task in $EDITOR.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runTaskAdd),
}

var (
	taskAddDue         dueValue
	taskAddEstimate    int
	taskAddDescription string
	taskAddTags        []string
	taskAddEdit        bool
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Long: `Update a task.

Only the fields named by flags change. With --edit, or with no flags on an
interactive terminal, the task opens in $EDITOR.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runTaskUpdate),
}

var (
	taskUpdateTitle         string
	taskUpdateDescription   string
	taskUpdateDue           dueValue
	taskUpdateClearDue      bool
	taskUpdateEstimate      int
	taskUpdateClearEstimate bool
	taskUpdateStatus        string
	taskUpdateTags          []string
	taskUpdateEdit          bool
)

// task start
var taskStartCmd = &cobra.Command{
	Use:   "start <id>...",
	Short: "Mark tasks as in progress",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(statusCommand(task.StatusInProgress, "Started")),
}

// task done
var taskDoneCmd = &cobra.Command{
	Use:     "done <id>...",
	Aliases: []string{"complete"},
	Short:   "Mark tasks as completed",
	Args:    cobra.MinimumNArgs(1),
	RunE:    withApp(statusCommand(task.StatusCompleted, "Completed")),
}

// task reopen
var taskReopenCmd = &cobra.Command{
	Use:   "reopen <id>...",
	Short: "Move completed tasks back to pending",
	Args:  cobra.MinimumNArgs(1),
	RunE:  withApp(statusCommand(task.StatusPending, "Reopened")),
}

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTaskDelete),
}

var taskDeleteYes bool

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a task and its priority breakdown",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runTaskShow),
}

var taskShowFormat outputFormat

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, newest first",
	Args:  cobra.NoArgs,
	RunE:  withApp(runTaskList),
}

var (
	taskListAll    bool
	taskListLimit  int
	taskListTag    string
	taskListFormat outputFormat
)

// task rank
var taskRankCmd = &cobra.Command{
	Use:   "rank",
	Short: "List tasks by priority score, highest first",
	Args:  cobra.NoArgs,
	RunE:  withApp(runTaskRank),
}

var (
	taskRankAll    bool
	taskRankLimit  int
	taskRankTag    string
	taskRankFormat outputFormat
)

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd, taskUpdateCmd, taskStartCmd, taskDoneCmd, taskReopenCmd,
		taskDeleteCmd, taskShowCmd, taskListCmd, taskRankCmd)

	// task add flags
	taskAddCmd.Flags().Var(&taskAddDue, "due", "Due date (YYYY-MM-DD) or duration from now (3d, 90m)")
	taskAddCmd.Flags().IntVarP(&taskAddEstimate, "estimate", "e", 0, "Estimated minutes")
	taskAddCmd.Flags().StringVarP(&taskAddDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	taskAddCmd.Flags().StringSliceVarP(&taskAddTags, "tag", "t", nil, "Tags (repeatable or comma-separated)")
	taskAddCmd.Flags().BoolVar(&taskAddEdit, "edit", false, "Open $EDITOR")

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVarP(&taskUpdateDescription, "description", "d", "", "New description (use '-' to read from stdin)")
	taskUpdateCmd.Flags().Var(&taskUpdateDue, "due", "New due date (YYYY-MM-DD) or duration from now")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateClearDue, "clear-due", false, "Remove the due date")
	taskUpdateCmd.Flags().IntVarP(&taskUpdateEstimate, "estimate", "e", 0, "New estimate in minutes")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateClearEstimate, "clear-estimate", false, "Remove the estimate")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status (pending, in_progress, completed)")
	taskUpdateCmd.Flags().StringSliceVarP(&taskUpdateTags, "tag", "t", nil, "Replace tags")
	taskUpdateCmd.Flags().BoolVar(&taskUpdateEdit, "edit", false, "Open $EDITOR")

	// task delete flags
	taskDeleteCmd.Flags().BoolVarP(&taskDeleteYes, "yes", "y", false, "Do not ask for confirmation")

	// task show flags
	addFormatFlag(taskShowCmd, &taskShowFormat)

	// task list flags
	listflags.AddAllFlag(taskListCmd, &taskListAll)
	listflags.AddLimitFlag(taskListCmd, &taskListLimit, 0)
	listflags.AddTagFlag(taskListCmd, &taskListTag)
	addFormatFlag(taskListCmd, &taskListFormat)

	// task rank flags
	listflags.AddAllFlag(taskRankCmd, &taskRankAll)
	listflags.AddLimitFlag(taskRankCmd, &taskRankLimit, 10)
	listflags.AddTagFlag(taskRankCmd, &taskRankTag)
	addFormatFlag(taskRankCmd, &taskRankFormat)
}

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimRight(string(input), "\r\n"), nil
}

func runTaskAdd(cmd *cobra.Command, args []string, a *app) error {
	now := a.now()

	description, err := resolveDescriptionFromStdin(taskAddDescription, cmd.InOrStdin())
	if err != nil {
		return err
	}
	due, err := taskAddDue.Resolve(now)
	if err != nil {
		return err
	}

	title := ""
	if len(args) > 0 {
		title = args[0]
	}
	opts := task.CreateOptions{
		Description: description,
		DueDate:     due,
		Tags:        taskAddTags,
	}
	if cmd.Flags().Changed("estimate") {
		opts.EstimatedMinutes = task.MinutesPtr(taskAddEstimate)
	}

	if taskAddEdit {
		data := editor.TaskData{Title: title, Description: description, Tags: taskAddTags, Estimate: taskAddEstimate}
		if due != nil {
			data.Due = due.Format(editor.DueLayout)
		}
		parsed, err := editor.EditTask(data, a.loc)
		if err != nil {
			return err
		}
		title = parsed.Title
		opts = parsed.ToCreateOptions()
	}

	if title == "" {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	created, err := a.tasks.CreateTask(a.userID, title, opts)
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", highlight(created.ID), created.Title)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string, a *app) error {
	now := a.now()

	hasFlags := hasChangedFlags(cmd, "title", "description", "due", "clear-due",
		"estimate", "clear-estimate", "status", "tag")
	var opts task.UpdateOptions

	if taskUpdateEdit || (!hasFlags && editor.IsInteractive()) {
		existing, err := a.tasks.GetTask(args[0])
		if err != nil {
			return err
		}
		parsed, err := editor.EditTask(editor.DataFromTask(existing, a.loc), a.loc)
		if err != nil {
			return err
		}
		opts = parsed.ToUpdateOptions()
	} else {
		if !hasFlags {
			return fmt.Errorf("nothing to update: pass a field flag or --edit")
		}
		var err error
		opts, err = taskUpdateOptionsFromFlags(cmd, now)
		if err != nil {
			return err
		}
	}

	updated, err := a.tasks.UpdateTask(args[0], opts)
	if err != nil {
		return err
	}

	highlight, err := taskHighlighter(a)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", highlight(updated.ID), updated.Title)
	return nil
}

func taskUpdateOptionsFromFlags(cmd *cobra.Command, now time.Time) (task.UpdateOptions, error) {
	var opts task.UpdateOptions
	flags := cmd.Flags()

	if flags.Changed("title") {
		opts.Title = &taskUpdateTitle
	}
	if flags.Changed("description") {
		description, err := resolveDescriptionFromStdin(taskUpdateDescription, cmd.InOrStdin())
		if err != nil {
			return opts, err
		}
		opts.Description = &description
	}
	if flags.Changed("due") {
		due, err := taskUpdateDue.Resolve(now)
		if err != nil {
			return opts, err
		}
		opts.DueDate = due
	}
	opts.ClearDueDate = taskUpdateClearDue
	if flags.Changed("estimate") {
		opts.EstimatedMinutes = task.MinutesPtr(taskUpdateEstimate)
	}
	opts.ClearEstimate = taskUpdateClearEstimate
	if flags.Changed("status") {
		status, err := task.ParseStatus(taskUpdateStatus)
		if err != nil {
			return opts, err
		}
		opts.Status = &status
	}
	if flags.Changed("tag") {
		tags := internalstrings.SplitList(taskUpdateTags...)
		opts.Tags = &tags
	}
	return opts, nil
}

func statusCommand(status task.Status, verb string) func(*cobra.Command, []string, *app) error {
	return func(cmd *cobra.Command, args []string, a *app) error {
		updated := make([]task.Task, 0, len(args))
		for _, id := range args {
			item, err := a.tasks.UpdateTask(id, task.StatusUpdate(status))
			if err != nil {
				return err
			}
			updated = append(updated, *item)
		}

		highlight, err := taskHighlighter(a)
		if err != nil {
			return err
		}
		for _, item := range updated {
			fmt.Fprintf(cmd.OutOrStdout(), "%s task %s: %s\n", verb, highlight(item.ID), item.Title)
		}
		return nil
	}
}

func runTaskDelete(cmd *cobra.Command, args []string, a *app) error {
	item, err := a.tasks.GetTask(args[0])
	if err != nil {
		return err
	}

	if !taskDeleteYes {
		confirmed, err := confirm(cmd, fmt.Sprintf("Delete task %s: %s?", item.ID, item.Title))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	if err := a.tasks.DeleteTask(item.ID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", item.ID, item.Title)
	return nil
}

var errNeedsConfirmation = errors.New("refusing to delete without confirmation: pass --yes")

// confirm asks a yes/no question on the terminal. Without a terminal it
// refuses rather than guessing.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !ui.IsTerminal(os.Stdin) {
		return false, errNeedsConfirmation
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch internalstrings.NormalizeLowerTrimSpace(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// taskDetail is the structured form of task show.
type taskDetail struct {
	Task     task.Task          `json:"task" yaml:"task"`
	Priority priority.Breakdown `json:"priority" yaml:"priority"`
}

func runTaskShow(cmd *cobra.Command, args []string, a *app) error {
	item, err := a.tasks.GetTask(args[0])
	if err != nil {
		return err
	}

	now := a.now()
	breakdown := priority.Explain(*item, now)
	item.PriorityScore = breakdown.Score

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, taskShowFormat, taskDetail{Task: *item, Priority: breakdown}); handled || err != nil {
		return err
	}

	highlight, err := taskHighlighter(a)
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatTaskDetail(*item, breakdown, highlight, now, a.loc, ui.TerminalWidth(os.Stdout)))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string, a *app) error {
	if taskListLimit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", tracker.ErrValidation, taskListLimit)
	}
	all, err := a.tasks.ListTasks(a.userID)
	if err != nil {
		return err
	}

	tag := internalstrings.NormalizeLowerTrimSpace(taskListTag)
	items := make([]task.Task, 0, len(all))
	hasCompleted := false
	for _, item := range all {
		if item.Status == task.StatusCompleted && !taskListAll {
			hasCompleted = true
			continue
		}
		if tag != "" && !hasTag(item, tag) {
			continue
		}
		items = append(items, item)
	}
	if taskListLimit > 0 && len(items) > taskListLimit {
		items = items[:taskListLimit]
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, taskListFormat, items); handled || err != nil {
		return err
	}

	if len(items) == 0 {
		fmt.Fprintln(out, taskEmptyListMessage(len(all), taskListAll, hasCompleted))
		return nil
	}
	prefixLengths := task.NewIDIndex(all).PrefixLengths()
	fmt.Fprint(out, formatTaskTable(items, prefixLengths, ui.HighlightID, a.now()))
	return nil
}

func runTaskRank(cmd *cobra.Command, args []string, a *app) error {
	service := tracker.NewRankingService(a.tasks, tracker.RankingOptions{Logger: a.logger})

	now := a.now()
	ranked, err := service.Rank(a.userID, now, tracker.RankOptions{
		Limit:         taskRankLimit,
		HideCompleted: !taskRankAll,
		Tag:           internalstrings.NormalizeLowerTrimSpace(taskRankTag),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if handled, err := writeStructured(out, taskRankFormat, ranked); handled || err != nil {
		return err
	}

	if len(ranked) == 0 {
		fmt.Fprintln(out, "No tasks to rank.")
		return nil
	}
	prefixLengths, err := taskPrefixLengths(a)
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatRankTable(ranked, prefixLengths, ui.HighlightID, now))
	return nil
}

func hasChangedFlags(cmd *cobra.Command, flags ...string) bool {
	for _, flag := range flags {
		if cmd.Flags().Changed(flag) {
			return true
		}
	}
	return false
}

func hasTag(item task.Task, tag string) bool {
	for _, candidate := range item.Tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func taskPrefixLengths(a *app) (map[string]int, error) {
	all, err := a.tasks.ListTasks(a.userID)
	if err != nil {
		return nil, err
	}
	return task.NewIDIndex(all).PrefixLengths(), nil
}

func taskHighlighter(a *app) (func(string) string, error) {
	prefixLengths, err := taskPrefixLengths(a)
	if err != nil {
		return nil, err
	}
	return func(id string) string {
		return ui.HighlightID(id, ui.PrefixLength(prefixLengths, id))
	}, nil
}
