package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig はYAML設定ファイルの内容
// 省略された項目は既存の設定を変更しない
type fileConfig struct {
	LogLevel     *string `yaml:"log_level"`
	LogFormat    *string `yaml:"log_format"`
	Encoding     *string `yaml:"encoding"`
	MaxCallDepth *int    `yaml:"max_call_depth"`
}

// loadConfigFile YAML設定ファイルを読み込んでconfigに反映する
func loadConfigFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.LogLevel != nil {
		config.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		config.LogFormat = *fc.LogFormat
	}
	if fc.Encoding != nil {
		config.Encoding = *fc.Encoding
	}
	if fc.MaxCallDepth != nil {
		config.MaxCallDepth = *fc.MaxCallDepth
	}

	return nil
}
