// Package compiler provides the front-end pipeline for tinyexp source code.
// It turns source text into the AST executed by the vm package:
// 1. Lexer: Tokenization
// 2. Parser: AST generation
//
// - Parse: parses a UTF-8 source string
// - ParseScript: parses a script produced by script.Loader
// - ParseFile: loads, decodes and parses a file
package compiler

import (
	"errors"
	"strings"

	"github.com/zurustar/tinyexp/pkg/compiler/ast"
	"github.com/zurustar/tinyexp/pkg/compiler/lexer"
	"github.com/zurustar/tinyexp/pkg/compiler/parser"
	"github.com/zurustar/tinyexp/pkg/script"
)

// Parse parses source code into a program.
// It chains the lexer → parser pipeline. Parser errors are converted to
// *CompileError values carrying the surrounding source lines.
//
// Parameters:
//   - source: UTF-8 encoded source code string
//
// Returns:
//   - *ast.Program: The parsed program (nil if any error occurred)
//   - []error: Any syntax errors (empty if successful)
func Parse(source string) (*ast.Program, []error) {
	l := lexer.New(source)
	p := parser.New(l)
	program, parseErrs := p.ParseProgram()

	if len(parseErrs) > 0 {
		compileErrors := make([]error, 0, len(parseErrs))
		for _, err := range parseErrs {
			var pe *parser.ParserError
			if errors.As(err, &pe) {
				phase := NewParserErrorWithContext(pe.Message, pe.Line, pe.Column, source)
				if isLexical(pe) {
					phase.Phase = "lexer"
				}
				compileErrors = append(compileErrors, phase)
			} else {
				compileErrors = append(compileErrors, err)
			}
		}
		return nil, compileErrors
	}

	return program, nil
}

// ParseScript parses a script loaded by script.Loader.
func ParseScript(s *script.Script) (*ast.Program, []error) {
	return Parse(s.Content)
}

// ParseFile loads path in the given encoding and parses it.
func ParseFile(path, encoding string) (*ast.Program, []error) {
	loader, err := script.NewLoader(encoding)
	if err != nil {
		return nil, []error{err}
	}
	s, err := loader.Load(path)
	if err != nil {
		return nil, []error{err}
	}
	return ParseScript(s)
}

// isLexical reports whether a parser error was caused by an illegal character.
func isLexical(pe *parser.ParserError) bool {
	return strings.HasPrefix(pe.Message, "illegal character")
}
