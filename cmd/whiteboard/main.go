/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"gopkg.in/yaml.v3"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/boolop"
	"gowhiteboard/internal/config"
	"gowhiteboard/internal/crash"
	"gowhiteboard/internal/eraser"
	"gowhiteboard/internal/export"
	"gowhiteboard/internal/geom"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/pen"
	"gowhiteboard/internal/shape"
	"gowhiteboard/internal/version"
)

func usage() {
	fmt.Println("Go Whiteboard — vector path and boolean geometry core")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  whiteboard version|-v|--version   Show version")
	fmt.Println("  whiteboard config                 Print the effective configuration")
	fmt.Println("  whiteboard demo <out.(svg|png|pdf)>  Render a demo board exercising the engines")
}

func main() {
	defer crash.Recover()
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Whiteboard — vector path and boolean geometry core")
			fmt.Println(version.String())
			return
		case "config":
			cfg, err := config.Load()
			if err != nil {
				l.Error("config load failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Print(string(data))
			return
		case "demo":
			if len(args) < 3 {
				fmt.Println("demo requires an output file")
				usage()
				os.Exit(2)
			}
			out := args[2]
			if err := runDemo(out); err != nil {
				l.Error("demo failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			abs, _ := filepath.Abs(out)
			fmt.Println("Wrote", abs)
			return
		}
	}

	usage()
}

// runDemo authors a path with the pen tool, drops in two shapes, unions
// them, erases a corridor through the result and exports the outcome.
func runDemo(out string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := applog.WithBoard(context.Background(), "demo")
	l := applog.WithComponent("demo")
	brd := board.NewWithHistoryDepth(cfg.General.HistoryDepth)

	// author a closed triangle with the pen tool
	tool := pen.New(pen.Settings{
		Style:             cfg.Tool.Style(),
		DefaultAnchorType: cfg.Tool.DefaultAnchorType(),
		CornerRadius:      cfg.Tool.CornerRadius,
	})
	for _, p := range []geom.Pt{geom.P(40, 200), geom.P(160, 200), geom.P(100, 120)} {
		tool.PointerDown(p)
		tool.PointerUp()
	}
	// clicking the first anchor closes and commits
	if b := tool.PointerDown(geom.P(40, 200)); !b.IsEmpty() {
		if err := brd.Apply(b); err != nil {
			return err
		}
	}
	tool.PointerUp()

	// two overlapping shapes, merged into one path
	circle := board.NewShapeElement(shape.Shape{
		Kind:  shape.Ellipse,
		Rect:  geom.Rect{X: 180, Y: 120, W: 80, H: 80},
		Style: path.Style{StrokeColor: "#1e1e1e", StrokeWidth: 2, FillColor: "#7fb2e5"},
	})
	box := board.NewShapeElement(shape.Shape{
		Kind:  shape.RoundedRectangle,
		Rect:  geom.Rect{X: 230, Y: 150, W: 90, H: 60},
		Style: path.Style{StrokeColor: "#1e1e1e", StrokeWidth: 2, FillColor: "#a5d6a7"},
	})
	for _, el := range []board.Element{circle, box} {
		if err := brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}}); err != nil {
			return err
		}
	}
	union, err := boolop.Combine([]board.Element{circle, box}, boolop.Union)
	if err != nil {
		return err
	}
	if err := brd.Apply(union); err != nil {
		return err
	}

	// erase a corridor through everything
	capStyle := eraser.RoundCap
	if cfg.Eraser.Cap == "square" {
		capStyle = eraser.SquareCap
	}
	res := eraser.Erase(brd.Elements(), []geom.Pt{geom.P(0, 170), geom.P(360, 150)}, eraser.Options{
		Width: cfg.Eraser.Width,
		Cap:   capStyle,
	})
	if !res.Batch.IsEmpty() {
		if err := brd.Apply(res.Batch); err != nil {
			return err
		}
	}
	l.InfoContext(ctx, "demo board assembled", slog.Int("elements", len(brd.Elements())))

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	opts := export.Options{Margin: 10, Scale: 2, Background: "#ffffff"}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".svg":
		return export.WriteSVG(f, brd.Elements(), opts)
	case ".png":
		return export.WritePNG(f, brd.Elements(), opts)
	case ".pdf":
		return export.WritePDF(f, brd.Elements(), opts)
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(out))
	}
}
