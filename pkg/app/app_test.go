package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"gopkg.in/yaml.v3"

	"github.com/zurustar/tinyexp/pkg/compiler"
	"github.com/zurustar/tinyexp/pkg/vm"
)

// programCase はtestdata/programs.yamlの1件
type programCase struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Args   []string `yaml:"args"`
	Stdout string   `yaml:"stdout"`
	Error  string   `yaml:"error"`
}

func loadProgramCases(t *testing.T) []programCase {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "programs.yaml"))
	if err != nil {
		t.Fatalf("failed to read fixtures: %v", err)
	}
	var cases []programCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("failed to parse fixtures: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("no fixtures loaded")
	}
	return cases
}

func writeSource(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}
	return path
}

// clearEnv テスト中は設定に関係する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "SOURCE_ENCODING", "MAX_CALL_DEPTH"} {
		t.Setenv(key, "")
	}
}

func TestRun_Programs(t *testing.T) {
	for _, tc := range loadProgramCases(t) {
		t.Run(tc.Name, func(t *testing.T) {
			clearEnv(t)
			path := writeSource(t, "prog.exp", []byte(tc.Source))

			var stdout, stderr bytes.Buffer
			application := New(WithStdio(strings.NewReader(""), &stdout, &stderr))
			args := append([]string{path, "--log-level", "error"}, tc.Args...)
			err := application.Run(args)

			if got := stdout.String(); got != tc.Stdout {
				t.Errorf("stdout = %q, want %q", got, tc.Stdout)
			}

			switch tc.Error {
			case "":
				if err != nil {
					t.Fatalf("Run() error: %v", err)
				}
			case "syntax":
				var ce *compiler.CompileError
				if !errors.As(err, &ce) {
					t.Fatalf("error = %v, want a *compiler.CompileError", err)
				}
			default:
				var re *vm.RuntimeError
				if !errors.As(err, &re) {
					t.Fatalf("error = %v, want a *vm.RuntimeError", err)
				}
				if string(re.Type) != tc.Error {
					t.Errorf("error type = %s, want %s", re.Type, tc.Error)
				}
				if !strings.Contains(err.Error(), "prog.exp") {
					t.Errorf("error %q should name the source file", err)
				}
			}
		})
	}
}

func TestRun_Stdin(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	application := New(WithStdio(strings.NewReader("println(6 * 7)"), &stdout, &stderr))

	for _, args := range [][]string{{}, {"-"}} {
		stdout.Reset()
		if err := application.Run(args); err != nil {
			t.Fatalf("Run(%v) error: %v", args, err)
		}
		if stdout.String() != "42\n" {
			t.Errorf("Run(%v) stdout = %q, want %q", args, stdout.String(), "42\n")
		}
		// the reader is drained after the first run
		application.stdin = strings.NewReader("println(6 * 7)")
	}
}

func TestRun_ShiftJISSource(t *testing.T) {
	clearEnv(t)
	source := "// 日本語のコメント\nprintln(1, 2)\n"
	encoded, err := japanese.ShiftJIS.NewEncoder().String(source)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	path := writeSource(t, "sjis.exp", []byte(encoded))

	var stdout, stderr bytes.Buffer
	if err := New(WithStdio(nil, &stdout, &stderr)).Run([]string{"-e", "shift_jis", path}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.String() != "1 2\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "1 2\n")
	}
}

func TestRun_Help(t *testing.T) {
	clearEnv(t)
	var stdout, stderr bytes.Buffer
	if err := New(WithStdio(nil, &stdout, &stderr)).Run([]string{"--help"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Usage:") {
		t.Errorf("help output = %q", stdout.String())
	}
}

func TestRun_LogsGoToStderr(t *testing.T) {
	clearEnv(t)
	path := writeSource(t, "prog.exp", []byte("var a = 1 println(a)"))

	var stdout, stderr bytes.Buffer
	if err := New(WithStdio(nil, &stdout, &stderr)).Run([]string{path, "-l", "debug", "--log-format", "json"}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if stdout.String() != "1\n" {
		t.Errorf("stdout = %q, want only program output", stdout.String())
	}
	for _, msg := range []string{"Application started", "Variable declared", "Run finished"} {
		if !strings.Contains(stderr.String(), msg) {
			t.Errorf("stderr should contain %q", msg)
		}
	}
}

func TestRun_HostErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{"missing file", []string{filepath.Join(os.TempDir(), "no-such-tinyexp.exp")}, "failed to load script"},
		{"unknown encoding", []string{"-e", "klingon-8", "prog.exp"}, "failed to load script"},
		{"bad flag", []string{"--bogus"}, "failed to parse args"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			var stdout, stderr bytes.Buffer
			err := New(WithStdio(nil, &stdout, &stderr)).Run(tt.args)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q should contain %q", err, tt.contains)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abc", 5); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
}
