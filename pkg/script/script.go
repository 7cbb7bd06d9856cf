// Package script loads tinyexp source files and decodes them to UTF-8.
package script

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zurustar/tinyexp/pkg/fileutil"
)

// DefaultEncoding is used when no source encoding is configured.
const DefaultEncoding = "utf-8"

// StdinName is the file name reported for programs read from standard input.
const StdinName = "<stdin>"

// Script はデコード済みのソースファイルを表す
type Script struct {
	FileName string // ファイル名
	Content  string // UTF-8に変換された内容
	Size     int64  // 元のバイト数
}

// Loader reads source files in a fixed encoding.
type Loader struct {
	encodingName string
	enc          encoding.Encoding
}

// NewLoader creates a Loader for the named encoding ("utf-8", "shift_jis", "euc-jp",
// "utf-16", or any WHATWG encoding label). An empty name selects DefaultEncoding.
func NewLoader(encodingName string) (*Loader, error) {
	if encodingName == "" {
		encodingName = DefaultEncoding
	}
	enc, err := LookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	return &Loader{encodingName: encodingName, enc: enc}, nil
}

// Encoding returns the configured encoding name.
func (l *Loader) Encoding() string {
	return l.encodingName
}

// Load reads and decodes the file at path. A path of "-" reads standard input.
// If path does not exist, a file whose name differs only in case is used instead.
func (l *Loader) Load(path string) (*Script, error) {
	if path == "-" {
		return l.LoadReader(StdinName, os.Stdin)
	}

	resolved, err := fileutil.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", resolved, err)
	}

	s, err := l.decode(filepath.Base(resolved), data)
	if err != nil {
		return nil, fmt.Errorf("failed to load script %s: %w", path, err)
	}
	return s, nil
}

// LoadReader reads and decodes all of r.
func (l *Loader) LoadReader(name string, r io.Reader) (*Script, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return l.decode(name, data)
}

func (l *Loader) decode(name string, data []byte) (*Script, error) {
	reader := transform.NewReader(bytes.NewReader(data), l.enc.NewDecoder())
	utf8Data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", l.encodingName, err)
	}

	return &Script{
		FileName: name,
		Content:  string(utf8Data),
		Size:     int64(len(data)),
	}, nil
}

// LookupEncoding resolves an encoding name.
// UTF-8 and UTF-16 strip a leading byte order mark; other names are resolved
// through the WHATWG index of golang.org/x/text.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "sjis":
		name = "shift_jis"
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported source encoding %q: %w", name, err)
	}
	return enc, nil
}
