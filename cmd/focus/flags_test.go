package main

import (
	"strings"
	"testing"
)

func TestFlagAliasesResolveOnSubcommands(t *testing.T) {
	tests := []struct {
		path []string
		name string
		want string
	}{
		{[]string{"task", "add"}, "desc", "description"},
		{[]string{"task", "update"}, "est", "estimate"},
		{[]string{"task", "update"}, "clear_due", "clear-due"},
		{[]string{"session", "log"}, "mins", "minutes"},
	}

	for _, tt := range tests {
		cmd, _, err := rootCmd.Find(tt.path)
		if err != nil {
			t.Fatalf("find %v: %v", tt.path, err)
		}
		flag := cmd.Flags().Lookup(tt.name)
		if flag == nil || flag.Name != tt.want {
			t.Errorf("%v --%s resolved to %v, want --%s", tt.path, tt.name, flag, tt.want)
		}
	}
}

func TestFlagAliasesHiddenFromUsage(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"task", "add"})
	if err != nil {
		t.Fatal(err)
	}
	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--desc ") {
		t.Errorf("alias listed in usage:\n%s", usage)
	}
	if !strings.Contains(usage, "-d, --description") {
		t.Errorf("expected -d, --description in usage:\n%s", usage)
	}
}

func TestHasChangedFlags(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"task", "update"})
	if err != nil {
		t.Fatal(err)
	}
	if hasChangedFlags(cmd, "title", "clear-due") {
		t.Fatal("expected no changed flags")
	}

	if err := cmd.Flags().Set("clear_due", "true"); err != nil {
		t.Fatalf("set clear_due: %v", err)
	}
	t.Cleanup(func() {
		cmd.Flags().Set("clear-due", "false")
		cmd.Flags().Lookup("clear-due").Changed = false
	})
	if !hasChangedFlags(cmd, "title", "clear-due") {
		t.Fatal("expected clear-due to count as changed")
	}
}

func TestTaskCommandsRegistered(t *testing.T) {
	for _, name := range []string{"add", "list", "rank", "show", "update", "start", "done", "reopen", "delete"} {
		cmd, _, err := rootCmd.Find([]string{"task", name})
		if err != nil || cmd.Name() != name {
			t.Errorf("task %s not registered: %v", name, err)
		}
	}
}
