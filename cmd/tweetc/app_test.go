package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tweetlang/pkg/compiler"
	"tweetlang/pkg/policy"
)

// runApp executes tweetc with args and returns stdout.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := newApp(strings.NewReader(stdin), &stdout, &stderr)
	err := app.Run(append([]string{"tweetc"}, args...))
	return stdout.String(), err
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestRunScenarios(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"punch left.", "PL\n"},
		{"walk right.", "WR\n"},
		{"Do jump left 3 times.", "JL JL JL\n"},
		{"punch left. walk right. Do jump left 3 times.", "PL WR JL JL JL\n"},
		{"Do jump left 0 times.", ""},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			out, err := runApp(t, "", "--format", "compact", "run", "-e", tt.src)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunReadsStdinAndFiles(t *testing.T) {
	out, err := runApp(t, "walk right.\npunch left.", "run")
	if err != nil {
		t.Fatalf("stdin: %v", err)
	}
	if out != "Walk(Right)\nPunch(Left)\n" {
		t.Errorf("stdin output = %q", out)
	}

	path := writeFixture(t, "combo.tw", "Do walk left 2 times.")
	out, err = runApp(t, "", "-f", "json", "run", path)
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if strings.Count(out, `"verb": "walk"`) != 2 {
		t.Errorf("json output = %q", out)
	}
}

func TestRunLuaScript(t *testing.T) {
	path := writeFixture(t, "combo.lua", `return Tweet.list(Tweet.punch("right"), Tweet.jump("left"):times(2))`)
	out, err := runApp(t, "", "--format", "compact", "run", path)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "PR JL JL\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunPolicy(t *testing.T) {
	_, err := runApp(t, "", "--policy", "Actions < 3", "run", "-e", "Do jump left 3 times.")
	if !errors.Is(err, policy.ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}

	// The default policy guards against runaway expansion.
	_, err = runApp(t, "", "run", "-e", "Do Do jump left 100000 times 100000 times.")
	if !errors.Is(err, policy.ErrRejected) {
		t.Fatalf("expected default policy to reject, got %v", err)
	}

	out, err := runApp(t, "", "--policy", "", "--format", "compact", "run", "-e", "Do Do jump left 2 times 2 times.")
	if err != nil {
		t.Fatalf("empty policy: %v", err)
	}
	if out != "JL JL JL JL\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRunSyntaxError(t *testing.T) {
	_, err := runApp(t, "", "run", "-e", "pnch left.")
	var syntaxErr *compiler.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %T %v", err, err)
	}
	if syntaxErr.Hint != "punch" {
		t.Errorf("hint = %q", syntaxErr.Hint)
	}
}

func TestConfigFile(t *testing.T) {
	cfgPath := writeFixture(t, "tweetc.yaml", "format: compact\nsimplify: true\n")
	out, err := runApp(t, "", "--config", cfgPath, "ast", "-e", "Do Do walk right 2 times 3 times.")
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if strings.TrimSpace(out) != "Repeat(Walk(Right), 6)" {
		t.Errorf("ast output = %q", out)
	}

	if _, err := runApp(t, "", "--format", "xml", "run", "-e", "punch left."); err == nil {
		t.Error("expected invalid format to fail")
	}
}

func TestAst(t *testing.T) {
	out, err := runApp(t, "", "ast", "-e", "punch left. Do jump left 3 times.")
	if err != nil {
		t.Fatalf("ast: %v", err)
	}
	if want := "List[Punch(Left), Repeat(Jump(Left), 3)]\n"; out != want {
		t.Errorf("ast = %q, want %q", out, want)
	}
}

func TestTokens(t *testing.T) {
	out, err := runApp(t, "", "tokens", "-e", "punch left.")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	if !strings.HasPrefix(out, "Tokens (4)\n") {
		t.Errorf("tokens output = %q", out)
	}
	for _, want := range []string{"PUNCH", "LEFT", "DOT", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("tokens output missing %s: %q", want, out)
		}
	}
}

func TestStats(t *testing.T) {
	out, err := runApp(t, "", "--policy", "Actions < 100", "stats", "-e", "Do Do jump left 10 times 10 times.")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	for _, want := range []string{"actions:  100", "depth:    4", "nodes:    4", "admitted: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q: %q", want, out)
		}
	}
}
