package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points every XDG directory at a fresh temp dir and moves into it
// so no user configuration leaks into the run.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Chdir(dir)
	return dir
}

func run(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := execute(context.Background(), args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestEval(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "2^10"}, "1024\n"},
		{[]string{"eval", "2", "^", "100"}, "1267650600228229401496703205376\n"},
		{[]string{"eval", "--", "-7 / 2"}, "-3\n"},
		{[]string{"eval", "--", "-7 % 2"}, "-1\n"},
		{[]string{"eval", "gcd(84, 36)"}, "12\n"},
		{[]string{"eval", "lcm", "4", "6"}, "12\n"},
		{[]string{"eval", "20!"}, "2432902008176640000\n"},
		{[]string{"eval", "prime", "97"}, "prime\n"},
		{[]string{"eval", "prime", "91"}, "not prime\n"},
		{[]string{"eval", "--entry", "3 * 4"}, "3 * 4 = 12\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, out, errOut := run(t, "", tt.args...)
			if code != 0 {
				t.Fatalf("exit %d, stderr: %s", code, errOut)
			}
			if out != tt.want {
				t.Fatalf("stdout = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "1 / 0"}, "division by zero"},
		{[]string{"eval", "12a + 1"}, "invalid characters"},
		{[]string{"eval", "2 ^ 10001"}, "error:"},
		{[]string{"eval", "1", "+", "2", "--format", "yaml"}, "unsupported format"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, out, errOut := run(t, "", tt.args...)
			if code != 1 {
				t.Fatalf("exit %d, want 1", code)
			}
			if out != "" {
				t.Fatalf("unexpected stdout %q", out)
			}
			if !strings.Contains(errOut, tt.want) {
				t.Fatalf("stderr %q does not mention %q", errOut, tt.want)
			}
		})
	}
}

func TestEval_JSON(t *testing.T) {
	isolate(t)
	code, out, errOut := run(t, "", "eval", "--format", "json", "6 * 7")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got resultPayload
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Op != "mul" || got.Result != "42" || got.Entry != "6 * 7 = 42" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	isolate(t)
	for _, expr := range []string{"1 + 1", "2 * 3", "10 - 4"} {
		if code, _, errOut := run(t, "", "eval", expr); code != 0 {
			t.Fatalf("eval %q: %s", expr, errOut)
		}
	}

	code, out, errOut := run(t, "", "history", "--limit", "2")
	if code != 0 {
		t.Fatalf("history: %s", errOut)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("history lines = %q", out)
	}
	if !strings.HasSuffix(lines[0], "10 - 4 = 6") || !strings.HasSuffix(lines[1], "2 * 3 = 6") {
		t.Fatalf("history order = %q", lines)
	}

	if code, _, errOut := run(t, "", "history", "clear"); code != 0 {
		t.Fatalf("clear: %s", errOut)
	}
	_, out, _ = run(t, "", "history", "list")
	if strings.TrimSpace(out) != "history is empty" {
		t.Fatalf("after clear = %q", out)
	}
}

func TestNoHistory(t *testing.T) {
	isolate(t)
	if code, _, errOut := run(t, "", "--no-history", "eval", "1 + 1"); code != 0 {
		t.Fatalf("eval: %s", errOut)
	}
	_, out, _ := run(t, "", "history")
	if strings.TrimSpace(out) != "history is empty" {
		t.Fatalf("history recorded with --no-history: %q", out)
	}
	code, _, errOut := run(t, "", "--no-history", "history")
	if code != 1 || !strings.Contains(errOut, "history is disabled") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestBatch(t *testing.T) {
	isolate(t)
	input := "# comment\n1 + 2\n\n5 / 0\n3 ^ 3\n"
	code, out, errOut := run(t, input, "--ui", "off", "batch", "--jobs", "2")
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if out != "1 + 2 = 3\n3 ^ 3 = 27\n" {
		t.Fatalf("stdout = %q", out)
	}
	if !strings.Contains(errOut, "line 4: 5 / 0: division by zero") {
		t.Fatalf("stderr = %q", errOut)
	}
	if !strings.Contains(errOut, "2 ok, 1 failed, 0 skipped") {
		t.Fatalf("summary missing: %q", errOut)
	}
	if strings.Contains(errOut, "error:") {
		t.Fatalf("line failures should not be repeated: %q", errOut)
	}
}

func TestBatch_FileAndJSON(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "exprs.txt")
	if err := os.WriteFile(path, []byte("7 * 6\n2 ^ 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, out, errOut := run(t, "", "--ui", "off", "batch", "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	var got []batchPayload
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(got) != 2 || got[0].Result == nil || got[0].Result.Result != "42" || got[1].Result.Result != "256" {
		t.Fatalf("payload = %+v", got)
	}
	if got[1].Line != 2 {
		t.Fatalf("line = %d, want 2", got[1].Line)
	}
}

func TestBatch_MissingFile(t *testing.T) {
	isolate(t)
	code, _, errOut := run(t, "", "batch", "nope.txt")
	if code != 1 || !strings.Contains(errOut, "nope.txt") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestCacheClear(t *testing.T) {
	dir := isolate(t)
	cfg := "[cache]\nmin_digits = 1\n"
	if err := os.WriteFile(filepath.Join(dir, "calc.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	if code, _, errOut := run(t, "", "eval", "2 ^ 64"); code != 0 {
		t.Fatalf("eval: %s", errOut)
	}
	results := filepath.Join(dir, "cache", "calc", "results")
	entries, err := os.ReadDir(results)
	if err != nil || len(entries) != 1 {
		t.Fatalf("cache entries = %v, err %v", entries, err)
	}

	code, out, errOut := run(t, "", "eval", "--format", "json", "2 ^ 64")
	if code != 0 || !strings.Contains(out, `"cached": true`) {
		t.Fatalf("second eval not cached: %q %q", out, errOut)
	}

	if code, _, errOut := run(t, "", "cache", "clear"); code != 0 {
		t.Fatalf("cache clear: %s", errOut)
	}
	if _, err := os.Stat(results); !os.IsNotExist(err) {
		t.Fatalf("results dir still present: %v", err)
	}
}

func TestConfigErrors(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "calc.toml"), []byte("[batch]\njobs = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	code, _, errOut := run(t, "", "eval", "1 + 1")
	if code != 1 || !strings.Contains(errOut, "batch.jobs") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}

	code, _, errOut = run(t, "", "--ui", "sometimes", "--config", filepath.Join(dir, "missing.toml"), "eval", "1 + 1")
	if code != 1 || !strings.Contains(errOut, "config file") {
		t.Fatalf("exit %d, stderr %q", code, errOut)
	}
}

func TestTraceAndTimings(t *testing.T) {
	dir := isolate(t)
	tracePath := filepath.Join(dir, "trace.log")
	code, _, errOut := run(t, "", "--trace", tracePath, "--timings", "eval", "5!")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	for _, phase := range []string{"config", "parse", "evaluate"} {
		if !strings.Contains(errOut, phase) {
			t.Errorf("timings missing %q: %q", phase, errOut)
		}
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "calc eval") || !strings.Contains(string(data), "fact") {
		t.Fatalf("trace = %q", data)
	}
}

func TestInteractiveWithoutTerminal(t *testing.T) {
	isolate(t)
	code, out, errOut := run(t, "")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errOut)
	}
	if !strings.Contains(out, "Usage:") {
		t.Fatalf("expected help, got %q", out)
	}
}

func TestVersion(t *testing.T) {
	isolate(t)
	code, out, _ := run(t, "", "version", "--format", "json", "--full")
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var got versionPayload
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Tool != "calc" || got.Version == "" || got.GitCommit == "" || got.BuildDate == "" {
		t.Fatalf("payload = %+v", got)
	}
}

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"AUTO", uiModeAuto, false},
		{" on ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"maybe", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if shouldUseTUI(uiModeAuto, &bytes.Buffer{}) {
		t.Error("auto mode must not use the TUI for a buffer")
	}
	if !shouldUseTUI(uiModeOn, &bytes.Buffer{}) {
		t.Error("on mode must force the TUI")
	}
}
