package listflags

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestListFlags(t *testing.T) {
	var (
		all   bool
		limit int
		tag   string
	)
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, &all)
	AddLimitFlag(cmd, &limit, 10)
	AddTagFlag(cmd, &tag)

	if err := cmd.ParseFlags([]string{"--all", "-n", "3", "--tag", "work"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !all || limit != 3 || tag != "work" {
		t.Errorf("got all=%v limit=%d tag=%q", all, limit, tag)
	}
}

func TestAddAllFlag_NilTarget(t *testing.T) {
	cmd := &cobra.Command{Use: "list"}
	AddAllFlag(cmd, nil)
	if cmd.Flags().Lookup("all") == nil {
		t.Fatal("expected --all flag")
	}
}

func TestAddLimitFlag_Default(t *testing.T) {
	var limit int
	cmd := &cobra.Command{Use: "rank"}
	AddLimitFlag(cmd, &limit, 10)
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if limit != 10 {
		t.Errorf("limit = %d, want 10", limit)
	}
}
