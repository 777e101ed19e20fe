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
	"testing"

	"gowhiteboard/internal/path"
)

func TestEnvOverridesTool(t *testing.T) {
	t.Setenv(EnvStrokeWidth, "4.5")
	t.Setenv(EnvAnchorType, "smooth")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tool.StrokeWidth != 4.5 {
		t.Fatalf("Tool.StrokeWidth = %v, want 4.5", cfg.Tool.StrokeWidth)
	}
	if cfg.Tool.DefaultAnchorType() != path.Smooth {
		t.Fatalf("anchor type override not applied: %q", cfg.Tool.AnchorType)
	}
	if name, ok := EnvOverrideFor("tool.stroke_width"); !ok || name != EnvStrokeWidth {
		t.Fatalf("EnvOverrideFor mismatch: %q/%v", name, ok)
	}
}

func TestEnvOverridesIgnoreInvalidNumbers(t *testing.T) {
	t.Setenv(EnvStrokeWidth, "not-a-number")
	t.Setenv(EnvEraserWidth, "-3")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Tool.StrokeWidth != Defaults().Tool.StrokeWidth {
		t.Fatalf("invalid stroke width must keep the default, got %v", cfg.Tool.StrokeWidth)
	}
	if cfg.Eraser.Width != Defaults().Eraser.Width {
		t.Fatalf("negative eraser width must keep the default, got %v", cfg.Eraser.Width)
	}
}

func TestMergeIncludesToolAndEraser(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Tool.StrokeColor = "#ff0000"
	src.Tool.StrokeStyle = "Dashed"
	src.Tool.CornerRadius = 25
	src.Eraser.Width = 32
	src.Eraser.Cap = "square"
	mergeInto(&dst, &src)
	if dst.Tool.StrokeColor != "#ff0000" || dst.Tool.StrokeStyle != "dashed" || dst.Tool.CornerRadius != 25 {
		t.Fatalf("tool fields not merged correctly: %#v", dst.Tool)
	}
	if dst.Eraser.Width != 32 || dst.Eraser.Cap != "square" {
		t.Fatalf("eraser fields not merged correctly: %#v", dst.Eraser)
	}
}

func TestMergeIncludesLogging(t *testing.T) {
	dst := Defaults()
	src := Defaults()
	src.Logging.Level = "debug"
	src.Logging.Format = "json"
	src.Logging.Source = true
	src.Logging.File = "/tmp/gwb.log"
	mergeInto(&dst, &src)
	if dst.Logging.Level != "debug" || dst.Logging.Format != "json" || !dst.Logging.Source || dst.Logging.File != "/tmp/gwb.log" {
		t.Fatalf("logging fields not merged correctly: %#v", dst.Logging)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "/tmp/gwb-env.log")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "/tmp/gwb-env.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}

func TestStyleConversion(t *testing.T) {
	tc := ToolConfig{StrokeColor: "#123456", StrokeWidth: 3, StrokeStyle: "dotted", FillColor: "#abcdef"}
	st := tc.Style()
	if st.StrokeColor != "#123456" || st.StrokeWidth != 3 || st.StrokeStyle != path.Dotted || st.FillColor != "#abcdef" {
		t.Fatalf("style conversion mismatch: %#v", st)
	}
}
