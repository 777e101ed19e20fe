/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gowhiteboard/internal/path"
)

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables are treated as read-only overrides
// at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible
// way. Unknown fields are ignored on unmarshal.

// ToolConfig carries the authoring defaults applied to newly drawn paths.
type ToolConfig struct {
	StrokeColor  string  `yaml:"stroke_color"`
	StrokeWidth  float64 `yaml:"stroke_width"`
	StrokeStyle  string  `yaml:"stroke_style"` // "solid" | "dashed" | "dotted"
	FillColor    string  `yaml:"fill_color"`
	AnchorType   string  `yaml:"default_anchor_type"` // "corner" | "smooth" | "symmetric"
	CornerRadius float64 `yaml:"corner_radius"`       // 0-100, relative to edge length
}

// EraserConfig carries the eraser stroke defaults.
type EraserConfig struct {
	Width float64 `yaml:"width"`
	Cap   string  `yaml:"cap"` // "round" | "square"
}

type GeneralConfig struct {
	Theme        string `yaml:"theme"` // "system" | "light" | "dark" (informational for now)
	HistoryDepth int    `yaml:"history_depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Tool          ToolConfig    `yaml:"tool"`
	Eraser        EraserConfig  `yaml:"eraser"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "system", HistoryDepth: 100},
		Tool: ToolConfig{
			StrokeColor: "#1e1e1e",
			StrokeWidth: 2,
			StrokeStyle: "solid",
			AnchorType:  "corner",
		},
		Eraser:  EraserConfig{Width: 20, Cap: "round"},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvStrokeColor  = "GWB_STROKE_COLOR"
	EnvStrokeWidth  = "GWB_STROKE_WIDTH"
	EnvStrokeStyle  = "GWB_STROKE_STYLE"
	EnvAnchorType   = "GWB_DEFAULT_ANCHOR_TYPE"
	EnvEraserWidth  = "GWB_ERASER_WIDTH"
	EnvHistoryDepth = "GWB_HISTORY_DEPTH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GWB_LOG_LEVEL"
	EnvLogFormat = "GWB_LOG_FORMAT"
	EnvLogSource = "GWB_LOG_SOURCE"
	EnvLogFile   = "GWB_LOG_FILE"
)

// Style converts the tool defaults into a path style.
func (t ToolConfig) Style() path.Style {
	var ls path.LineStyle
	switch strings.ToLower(strings.TrimSpace(t.StrokeStyle)) {
	case "dashed":
		ls = path.Dashed
	case "dotted":
		ls = path.Dotted
	default:
		ls = path.Solid
	}
	return path.Style{
		StrokeColor: t.StrokeColor,
		StrokeWidth: t.StrokeWidth,
		StrokeStyle: ls,
		FillColor:   t.FillColor,
	}
}

// DefaultAnchorType resolves the configured anchor type.
func (t ToolConfig) DefaultAnchorType() path.AnchorType {
	return path.ParseAnchorType(strings.ToLower(strings.TrimSpace(t.AnchorType)))
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "GoWhiteboard")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoWhiteboard")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "gowhiteboard")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and
// merges environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	fpath, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(fpath); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	fpath, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	if src.General.HistoryDepth > 0 {
		dst.General.HistoryDepth = src.General.HistoryDepth
	}
	if src.Tool.StrokeColor != "" {
		dst.Tool.StrokeColor = src.Tool.StrokeColor
	}
	if src.Tool.StrokeWidth > 0 {
		dst.Tool.StrokeWidth = src.Tool.StrokeWidth
	}
	if strings.TrimSpace(src.Tool.StrokeStyle) != "" {
		dst.Tool.StrokeStyle = strings.ToLower(strings.TrimSpace(src.Tool.StrokeStyle))
	}
	if src.Tool.FillColor != "" {
		dst.Tool.FillColor = src.Tool.FillColor
	}
	if strings.TrimSpace(src.Tool.AnchorType) != "" {
		dst.Tool.AnchorType = strings.ToLower(strings.TrimSpace(src.Tool.AnchorType))
	}
	if src.Tool.CornerRadius > 0 {
		dst.Tool.CornerRadius = src.Tool.CornerRadius
	}
	if src.Eraser.Width > 0 {
		dst.Eraser.Width = src.Eraser.Width
	}
	if strings.TrimSpace(src.Eraser.Cap) != "" {
		dst.Eraser.Cap = strings.ToLower(strings.TrimSpace(src.Eraser.Cap))
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStrokeColor)); v != "" {
		cfg.Tool.StrokeColor = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStrokeWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Tool.StrokeWidth = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStrokeStyle)); v != "" {
		cfg.Tool.StrokeStyle = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvAnchorType)); v != "" {
		cfg.Tool.AnchorType = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvEraserWidth)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Eraser.Width = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryDepth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.General.HistoryDepth = n
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by
// environment variables.
func EnvOverrideFor(key string) (string, bool) {
	switch key {
	case "tool.stroke_color":
		if os.Getenv(EnvStrokeColor) != "" {
			return EnvStrokeColor, true
		}
	case "tool.stroke_width":
		if os.Getenv(EnvStrokeWidth) != "" {
			return EnvStrokeWidth, true
		}
	case "tool.stroke_style":
		if os.Getenv(EnvStrokeStyle) != "" {
			return EnvStrokeStyle, true
		}
	case "tool.default_anchor_type":
		if os.Getenv(EnvAnchorType) != "" {
			return EnvAnchorType, true
		}
	case "eraser.width":
		if os.Getenv(EnvEraserWidth) != "" {
			return EnvEraserWidth, true
		}
	case "general.history_depth":
		if os.Getenv(EnvHistoryDepth) != "" {
			return EnvHistoryDepth, true
		}
	case "logging.level":
		if os.Getenv(EnvLogLevel) != "" {
			return EnvLogLevel, true
		}
	case "logging.format":
		if os.Getenv(EnvLogFormat) != "" {
			return EnvLogFormat, true
		}
	case "logging.source":
		if os.Getenv(EnvLogSource) != "" {
			return EnvLogSource, true
		}
	case "logging.file":
		if os.Getenv(EnvLogFile) != "" {
			return EnvLogFile, true
		}
	}
	return "", false
}
