/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders board contents to SVG, PNG and PDF files. The
// geometry comes straight from the path draw commands and the shape
// polygonizer; unsupported elements are skipped with a warning.
package export

import (
	"strconv"
	"strings"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/render"
	"gowhiteboard/internal/shape"
)

// Options controls export behavior for all formats.
type Options struct {
	// Margin is added around the content bounds, in canvas units.
	Margin float64
	// Scale multiplies canvas units into output pixels (PNG only).
	Scale float64
	// Background fills the page when non-empty, e.g. "#ffffff".
	Background string
}

func (o Options) margin() float64 {
	if o.Margin < 0 {
		return 0
	}
	return o.Margin
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// contentBounds returns the union of every element's bounds plus margin.
func contentBounds(els []board.Element, margin float64) geom.Rect {
	var r geom.Rect
	first := true
	for _, el := range els {
		b := el.Bounds()
		if b.IsEmpty() {
			continue
		}
		if first {
			r = b
			first = false
		} else {
			r = r.Union(b)
		}
	}
	if first {
		r = geom.Rect{W: 1, H: 1}
	}
	if margin > 0 {
		r = r.Pad(margin)
	}
	return r
}

// elementCommands returns the draw commands for a drawable element, or
// nil for unsupported kinds.
func elementCommands(el board.Element) []path.Cmd {
	switch el.Kind {
	case board.VectorPath:
		return render.PathDescription(el.Path)
	case board.ParametricShape:
		return polygonCommands(shape.Polygonize(el.Shape))
	default:
		return nil
	}
}

func polygonCommands(pg geom.Polygon) []path.Cmd {
	if len(pg) < 3 {
		return nil
	}
	cmds := make([]path.Cmd, 0, len(pg)+2)
	cmds = append(cmds, path.Cmd{Op: path.MoveTo, P1: pg[0]})
	for _, p := range pg[1:] {
		cmds = append(cmds, path.Cmd{Op: path.LineTo, P1: p})
	}
	return append(cmds, path.Cmd{Op: path.Close})
}

func elementStyle(el board.Element) path.Style {
	switch el.Kind {
	case board.ParametricShape:
		return el.Shape.Style
	default:
		return el.Path.Style
	}
}

// parseHexColor decodes "#rgb" and "#rrggbb". Unknown strings come back
// as opaque black with ok=false so callers can apply their default.
func parseHexColor(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "#"))
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(n >> 16), uint8(n >> 8), uint8(n), true
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func strokeWidthOf(st path.Style) float64 {
	if st.StrokeWidth > 0 {
		return st.StrokeWidth
	}
	return 1
}
