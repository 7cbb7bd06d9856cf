package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"

	"github.com/zurustar/tinyexp/pkg/script"
)

// TestParse tests the Parse function with various source code inputs.
func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantStmts  int
		wantErrLen int
	}{
		{"empty source", "", 0, 0},
		{"variable declaration", "var x = 5", 1, 0},
		{"declaration without initializer", "var x", 1, 0},
		{"assignment", "x = 10;", 1, 0},
		{"function call", "println(1, 2, 3)", 1, 0},
		{"if statement", "if (x > 5) { y = 10 }", 1, 0},
		{"while loop", "while (x < 10) { x = x + 1 }", 1, 0},
		{"function definition", "fun f(x) { return x + 1 }", 1, 0},
		{"several statements", "var a = 1 var b = 2 println(a + b)", 3, 0},
		{"missing expression", "var x = ", 0, 1},
		{"illegal character", "var x = 1 ! 2", 0, 1},
		{"unterminated block", "while (1) {", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, errs := Parse(tt.source)

			if len(errs) < tt.wantErrLen || (tt.wantErrLen == 0 && len(errs) > 0) {
				t.Fatalf("Parse() returned %d errors, want %d: %v", len(errs), tt.wantErrLen, errs)
			}
			if tt.wantErrLen > 0 {
				if program != nil {
					t.Error("Parse() should return a nil program on error")
				}
				return
			}
			if program == nil {
				t.Fatal("Parse() returned nil program")
			}
			if len(program.Statements) != tt.wantStmts {
				t.Errorf("got %d statements, want %d", len(program.Statements), tt.wantStmts)
			}
		})
	}
}

func TestParse_ErrorPhase(t *testing.T) {
	tests := []struct {
		name   string
		source string
		phase  string
		line   int
	}{
		{"illegal character is a lexer error", "var a = 1\nvar b = a | 2", "lexer", 2},
		{"missing token is a parser error", "fun f(a {\n}", "parser", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := Parse(tt.source)
			if len(errs) == 0 {
				t.Fatal("expected errors")
			}
			var ce *CompileError
			if !errors.As(errs[0], &ce) {
				t.Fatalf("errs[0] is %T, want *CompileError", errs[0])
			}
			if ce.Phase != tt.phase {
				t.Errorf("Phase = %q, want %q", ce.Phase, tt.phase)
			}
			if ce.Line != tt.line {
				t.Errorf("Line = %d, want %d", ce.Line, tt.line)
			}
			if !strings.Contains(ce.Context, ">") {
				t.Errorf("Context should point at the error line, got %q", ce.Context)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	source := "// 挨拶\nvar a = 1\nprintln(a)\n"
	sjis, err := japanese.ShiftJIS.NewEncoder().String(source)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	path := filepath.Join(t.TempDir(), "hello.exp")
	if err := os.WriteFile(path, []byte(sjis), 0o644); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	program, errs := ParseFile(path, "shift_jis")
	if len(errs) > 0 {
		t.Fatalf("ParseFile() errors: %v", errs)
	}
	if len(program.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(program.Statements))
	}
}

func TestParseFile_Errors(t *testing.T) {
	if _, errs := ParseFile("hello.exp", "no-such-encoding"); len(errs) != 1 {
		t.Errorf("unknown encoding: got %d errors, want 1", len(errs))
	}
	if _, errs := ParseFile(filepath.Join(t.TempDir(), "missing.exp"), ""); len(errs) != 1 {
		t.Errorf("missing file: got %d errors, want 1", len(errs))
	}
}

func TestParseScript(t *testing.T) {
	s := &script.Script{FileName: "inline", Content: "fun f() { return 1 } f()"}
	program, errs := ParseScript(s)
	if len(errs) > 0 {
		t.Fatalf("ParseScript() errors: %v", errs)
	}
	if len(program.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(program.Statements))
	}
}
