// Package main implements the focus CLI tool.
package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "focus",
	Short:         "Focus - prioritized tasks and focus session tracking",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var (
	rootUser    string
	rootConfig  string
	rootVerbose bool
)

// flagAliases maps shorthand spellings to the flag they stand for. Aliases
// are accepted on the command line but never shown in help.
var flagAliases = map[string]string{
	"desc": "description",
	"est":  "estimate",
	"mins": "minutes",
}

// normalizeFlagName lets "--clear_due" mean "--clear-due" and resolves
// flagAliases, on every focus command.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if target, ok := flagAliases[name]; ok {
		name = target
	}
	return pflag.NormalizedName(name)
}

func init() {
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootUser, "user", "u", "", "User id (default: config user.id or $USER)")
	flags.StringVar(&rootConfig, "config", "", "Read configuration from this file only")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Log ranking and reporting details to stderr")
}
