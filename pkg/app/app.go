package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zurustar/tinyexp/pkg/cli"
	"github.com/zurustar/tinyexp/pkg/compiler"
	"github.com/zurustar/tinyexp/pkg/compiler/ast"
	"github.com/zurustar/tinyexp/pkg/logger"
	"github.com/zurustar/tinyexp/pkg/script"
	"github.com/zurustar/tinyexp/pkg/vm"
)

// Application はアプリケーションのメインロジックを管理する
type Application struct {
	config *cli.Config
	log    *slog.Logger

	stdin  io.Reader
	stdout io.Writer // println の出力先
	stderr io.Writer // ログの出力先
}

// Option はApplicationの設定を変更する
type Option func(*Application)

// WithStdio 標準入出力を差し替える（テスト用）
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) Option {
	return func(app *Application) {
		app.stdin = stdin
		app.stdout = stdout
		app.stderr = stderr
	}
}

// New Applicationを作成
func New(opts ...Option) *Application {
	app := &Application{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run アプリケーションを実行
func (app *Application) Run(args []string) error {
	// 1. コマンドライン引数の解析
	if err := app.parseArgs(args); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if app.config.ShowHelp {
		cli.PrintHelp(app.stdout)
		return nil
	}

	// 2. ロガーの初期化
	if err := app.initLogger(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.log.Info("Application started")

	// 3. スクリプトファイルの読み込み
	s, err := app.loadScript()
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}

	app.log.Info("Script loaded", "name", s.FileName, "size", s.Size, "encoding", app.config.Encoding)
	app.log.Debug("Script content preview", "name", s.FileName, "preview", truncate(s.Content, 100))

	// 4. 構文解析
	program, err := app.parseScript(s)
	if err != nil {
		return err
	}

	app.log.Info("Script parsed successfully", "statements", len(program.Statements))

	// 5. 実行
	if err := app.execute(program); err != nil {
		return fmt.Errorf("%s: %w", s.FileName, err)
	}

	app.log.Info("Application terminated normally")
	return nil
}

// parseArgs コマンドライン引数を解析
func (app *Application) parseArgs(args []string) error {
	config, err := cli.ParseArgs(args)
	if err != nil {
		return err
	}
	app.config = config
	return nil
}

// initLogger ロガーを初期化
// ログはstderrに出力し、プログラムの出力（stdout）と混ざらないようにする
func (app *Application) initLogger() error {
	if err := logger.InitLogger(app.config.LogLevel, app.config.LogFormat, app.stderr); err != nil {
		return err
	}
	app.log = logger.GetLogger()
	return nil
}

// loadScript ソースファイルを読み込んでUTF-8に変換
func (app *Application) loadScript() (*script.Script, error) {
	loader, err := script.NewLoader(app.config.Encoding)
	if err != nil {
		return nil, err
	}

	if app.config.UsesStdin() {
		return loader.LoadReader(script.StdinName, app.stdin)
	}
	return loader.Load(app.config.SourcePath)
}

// parseScript スクリプトを構文解析する
// 構文エラーはすべてまとめて返す
func (app *Application) parseScript(s *script.Script) (*ast.Program, error) {
	program, errs := compiler.ParseScript(s)
	if len(errs) > 0 {
		for _, e := range errs {
			app.log.Error("Syntax error", "file", s.FileName, "error", e)
		}
		return nil, fmt.Errorf("failed to parse %s: %w", s.FileName, errors.Join(errs...))
	}
	return program, nil
}

// execute プログラムを実行する
func (app *Application) execute(program *ast.Program) error {
	machine := vm.New(
		vm.WithOutput(app.stdout),
		vm.WithLogger(app.log),
		vm.WithMaxCallDepth(app.config.MaxCallDepth),
	)

	if err := machine.Run(program); err != nil {
		app.log.Error("Execution failed", "error", err)
		return err
	}
	return nil
}

// truncate 文字列を指定した長さに切り詰める
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
