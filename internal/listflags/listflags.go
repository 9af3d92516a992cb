// Package listflags registers the flags shared by list commands.
package listflags

import "github.com/spf13/cobra"

// AddAllFlag adds a shared --all flag that includes completed tasks.
func AddAllFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("all", false, "Include completed tasks")
		return
	}

	cmd.Flags().BoolVar(target, "all", false, "Include completed tasks")
}

// AddLimitFlag adds a --limit flag. Zero means no limit.
func AddLimitFlag(cmd *cobra.Command, target *int, fallback int) {
	cmd.Flags().IntVarP(target, "limit", "n", fallback, "Maximum number of rows to show (0 for all)")
}

// AddTagFlag adds a --tag filter.
func AddTagFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "tag", "", "Only show tasks with this tag")
}
