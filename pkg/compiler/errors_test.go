package compiler

import (
	"strings"
	"testing"
)

// TestCompileError_Error tests the Error() method of CompileError.
func TestCompileError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CompileError
		contains []string
	}{
		{
			name: "lexer error without context",
			err: &CompileError{
				Phase:   "lexer",
				Message: "illegal character '@'",
				Line:    5,
				Column:  10,
			},
			contains: []string{"lexer error", "line 5", "column 10", "illegal character '@'"},
		},
		{
			name: "parser error without context",
			err: &CompileError{
				Phase:   "parser",
				Message: "expected next token to be ), got EOF instead",
				Line:    12,
				Column:  25,
			},
			contains: []string{"parser error", "line 12", "column 25", "got EOF instead"},
		},
		{
			name: "error with context",
			err: &CompileError{
				Phase:   "parser",
				Message: "unexpected token",
				Line:    3,
				Column:  5,
				Context: "> 3 | var x = ;\n      ^",
			},
			contains: []string{"parser error", "line 3", "column 5", "unexpected token", "> 3 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("Error() = %q, want to contain %q", errStr, substr)
				}
			}
		})
	}
}

func TestNewParserErrorWithContext(t *testing.T) {
	source := "var a = 1\nvar b =\nprintln(a)"
	err := NewParserErrorWithContext("unexpected EOF", 2, 8, source)

	if err.Phase != "parser" {
		t.Errorf("Phase = %q, want %q", err.Phase, "parser")
	}
	if err.Line != 2 || err.Column != 8 {
		t.Errorf("position = %d:%d, want 2:8", err.Line, err.Column)
	}
	if !strings.Contains(err.Context, "> 2 | var b =") {
		t.Errorf("Context = %q, want to mark line 2", err.Context)
	}
}

// TestGenerateErrorContext tests the surrounding-lines rendering.
func TestGenerateErrorContext(t *testing.T) {
	source := "line1\nline2\nline3\nline4\nline5\nline6"

	tests := []struct {
		name     string
		source   string
		line     int
		column   int
		expected string
	}{
		{
			name:     "middle of file",
			source:   source,
			line:     4,
			column:   3,
			expected: "  2 | line2\n  3 | line3\n> 4 | line4\n        ^\n  5 | line5\n  6 | line6\n",
		},
		{
			name:     "first line",
			source:   source,
			line:     1,
			column:   1,
			expected: "> 1 | line1\n      ^\n  2 | line2\n  3 | line3\n",
		},
		{
			name:     "last line",
			source:   source,
			line:     6,
			column:   0,
			expected: "  4 | line4\n  5 | line5\n> 6 | line6\n      ^\n",
		},
		{
			name:     "empty source",
			source:   "",
			line:     1,
			column:   1,
			expected: "",
		},
		{
			name:     "line out of range",
			source:   source,
			line:     99,
			column:   1,
			expected: "",
		},
		{
			name:     "windows line endings",
			source:   "a\r\nb\r\n",
			line:     2,
			column:   1,
			expected: "  1 | a\n> 2 | b\n      ^\n  3 | \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateErrorContext(tt.source, tt.line, tt.column)
			if got != tt.expected {
				t.Errorf("GenerateErrorContext() =\n%q\nwant\n%q", got, tt.expected)
			}
		})
	}
}
