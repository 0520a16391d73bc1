package process

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestResultOutput(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{"empty", Result{}, ""},
		{"stdout only", Result{Stdout: "ok\n"}, "ok"},
		{"stderr only", Result{Stderr: " warn \n"}, "warn"},
		{"both", Result{Stdout: "a\n", Stderr: "b\n"}, "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.res.Output(); got != tt.want {
				t.Errorf("Output() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "tslint", Args: []string{"--format", "stylish", "index.d.ts"}}
	if got := c.String(); got != "tslint --format stylish index.d.ts" {
		t.Errorf("String() = %q", got)
	}
	if got := (Command{Name: "tsc"}).String(); got != "tsc" {
		t.Errorf("String() = %q", got)
	}
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()

	res, err := ExecRunner{}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "pwd; echo oops >&2; exit 3"},
		Dir:  dir,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.ExitCode != 3 || res.OK() {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.HasSuffix(strings.TrimSpace(res.Stdout), strings.TrimPrefix(dir, "/private")) {
		t.Errorf("Stdout = %q, want working directory %q", res.Stdout, dir)
	}
	if strings.TrimSpace(res.Stderr) != "oops" {
		t.Errorf("Stderr = %q, want oops", res.Stderr)
	}
}

func TestExecRunnerEnv(t *testing.T) {
	requireShell(t)
	res, err := ExecRunner{Env: []string{"TYPESPUB_TEST=1"}}.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo $TYPESPUB_TEST"},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !res.OK() || strings.TrimSpace(res.Stdout) != "1" {
		t.Errorf("Run = %+v", res)
	}
}

func TestExecRunnerMissingExecutable(t *testing.T) {
	_, err := ExecRunner{}.Run(context.Background(), Command{Name: "typespub-no-such-tool"})
	if err == nil {
		t.Error("expected error for missing executable")
	}
}

func TestExecRunnerCancelled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (ExecRunner{}).Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
