package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// デフォルト値
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultEncoding     = "utf-8"
	DefaultMaxCallDepth = 10000
)

// Config はコマンドライン引数・環境変数・設定ファイルから解析された設定を保持する
type Config struct {
	SourcePath   string // ソースファイルのパス（空または"-"は標準入力）
	LogLevel     string // ログレベル（debug, info, warn, error）
	LogFormat    string // ログ形式（text, json）
	Encoding     string // ソースファイルの文字コード
	MaxCallDepth int    // 関数呼び出しの最大深さ（0は無制限）
	ConfigPath   string // YAML設定ファイルのパス
	ShowHelp     bool   // ヘルプ表示フラグ
}

// defaultConfig デフォルト設定を返す
func defaultConfig() *Config {
	return &Config{
		LogLevel:     DefaultLogLevel,
		LogFormat:    DefaultLogFormat,
		Encoding:     DefaultEncoding,
		MaxCallDepth: DefaultMaxCallDepth,
	}
}

// ParseArgs コマンドライン引数を解析してConfigを返す
// 優先順位: コマンドラインフラグ > 環境変数 > 設定ファイル > デフォルト値
func ParseArgs(args []string) (*Config, error) {
	// 引数を並べ替え：フラグを前に、位置引数を後ろに
	reorderedArgs := reorderArgs(args)

	fs := flag.NewFlagSet("tinyexp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	flags := &Config{}
	fs.StringVar(&flags.LogLevel, "log-level", DefaultLogLevel, "ログレベル（debug, info, warn, error）")
	fs.StringVar(&flags.LogLevel, "l", DefaultLogLevel, "ログレベル（短縮形）")
	fs.StringVar(&flags.LogFormat, "log-format", DefaultLogFormat, "ログ形式（text, json）")
	fs.StringVar(&flags.Encoding, "encoding", DefaultEncoding, "ソースファイルの文字コード")
	fs.StringVar(&flags.Encoding, "e", DefaultEncoding, "ソースファイルの文字コード（短縮形）")
	fs.IntVar(&flags.MaxCallDepth, "max-depth", DefaultMaxCallDepth, "関数呼び出しの最大深さ（0は無制限）")
	fs.StringVar(&flags.ConfigPath, "config", "", "YAML設定ファイル")
	fs.StringVar(&flags.ConfigPath, "c", "", "YAML設定ファイル（短縮形）")
	fs.BoolVar(&flags.ShowHelp, "help", false, "ヘルプを表示")
	fs.BoolVar(&flags.ShowHelp, "h", false, "ヘルプを表示（短縮形）")

	if err := fs.Parse(reorderedArgs); err != nil {
		return nil, err
	}

	// 明示的に指定されたフラグを記録
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})

	config := defaultConfig()
	config.ShowHelp = flags.ShowHelp
	config.ConfigPath = flags.ConfigPath

	// 設定ファイル
	if config.ConfigPath != "" {
		if err := loadConfigFile(config.ConfigPath, config); err != nil {
			return nil, err
		}
	}

	// 環境変数からの設定（コマンドラインフラグが優先）
	applyEnv(config)

	// コマンドラインフラグ
	if set["log-level"] || set["l"] {
		config.LogLevel = flags.LogLevel
	}
	if set["log-format"] {
		config.LogFormat = flags.LogFormat
	}
	if set["encoding"] || set["e"] {
		config.Encoding = flags.Encoding
	}
	if set["max-depth"] {
		config.MaxCallDepth = flags.MaxCallDepth
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// 位置引数（ソースファイルのパス）
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("too many arguments: %s", strings.Join(fs.Args(), " "))
	}
	if fs.NArg() == 1 {
		config.SourcePath = fs.Arg(0)
	}

	return config, nil
}

// applyEnv 環境変数の値を設定に反映する
// 解析できない値は無視する
func applyEnv(config *Config) {
	if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
		config.LogLevel = strings.ToLower(logLevelEnv)
	}
	if encodingEnv := os.Getenv("SOURCE_ENCODING"); encodingEnv != "" {
		config.Encoding = encodingEnv
	}
	if depthEnv := os.Getenv("MAX_CALL_DEPTH"); depthEnv != "" {
		if d, err := strconv.Atoi(depthEnv); err == nil && d >= 0 {
			config.MaxCallDepth = d
		}
	}
}

// Validate 設定値を検証する
func (c *Config) Validate() error {
	// ログレベルの検証
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.LogFormat)
	}

	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max call depth must be non-negative, got %d", c.MaxCallDepth)
	}

	if c.Encoding == "" {
		return fmt.Errorf("encoding must not be empty")
	}

	return nil
}

// UsesStdin ソースを標準入力から読むかどうか
func (c *Config) UsesStdin() bool {
	return c.SourcePath == "" || c.SourcePath == "-"
}

// reorderArgs 引数を並べ替えて、フラグを前に、位置引数を後ろに配置する
func reorderArgs(args []string) []string {
	var flags []string
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// フラグかどうかを判定（-または--で始まる、"-"単体は標準入力）
		if len(arg) > 1 && arg[0] == '-' {
			flags = append(flags, arg)

			// 次の引数が値である可能性をチェック
			// （-l debug のような場合、--log-level=debug は除く）
			if strings.Contains(arg, "=") {
				continue
			}
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				// ブール型フラグでない場合は次の引数も追加
				if arg != "-h" && arg != "--help" && arg != "-help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			// 位置引数
			positional = append(positional, arg)
		}
	}

	// フラグを前に、位置引数を後ろに配置
	return append(flags, positional...)
}

// PrintHelp ヘルプメッセージを表示
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `tinyexp - small integer language interpreter

Usage:
  tinyexp [options] [source-file]

Arguments:
  source-file   実行するソースファイルのパス（省略または"-"で標準入力）

Options:
  -l, --log-level <level>     ログレベル: debug, info, warn, error（デフォルト: info）
  --log-format <format>       ログ形式: text, json（デフォルト: text）
  -e, --encoding <name>       ソースの文字コード: utf-8, shift_jis, euc-jp, utf-16（デフォルト: utf-8）
  --max-depth <n>             関数呼び出しの最大深さ、0は無制限（デフォルト: 10000）
  -c, --config <file>         YAML設定ファイル
  -h, --help                  このヘルプを表示

Environment Variables:
  LOG_LEVEL=<level>           ログレベル
  SOURCE_ENCODING=<name>      ソースの文字コード
  MAX_CALL_DEPTH=<n>          関数呼び出しの最大深さ

Examples:
  tinyexp fib.exp                     ファイルを実行
  echo 'println(1 + 2)' | tinyexp     標準入力から実行
  tinyexp -e shift_jis prog.exp       Shift_JISのソースを実行
  tinyexp --log-level debug fib.exp   デバッグログを有効化（stderrに出力）
  tinyexp -c tinyexp.yaml fib.exp     設定ファイルを使用
`)
}
