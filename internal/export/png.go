/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/eraser"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/shape"
)

// WritePNG rasterizes the elements into a PNG image. Fills are rendered
// from the exact draw commands; strokes are expanded into outline
// polygons and filled, so stroke width survives scaling.
func WritePNG(w io.Writer, els []board.Element, opt Options) error {
	bounds := contentBounds(els, opt.margin())
	scale := opt.scale()
	wpx := int(math.Ceil(bounds.W * scale))
	hpx := int(math.Ceil(bounds.H * scale))
	if wpx < 1 {
		wpx = 1
	}
	if hpx < 1 {
		hpx = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, wpx, hpx))
	if r, g, b, ok := parseHexColor(opt.Background); ok {
		draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{r, g, b, 255}), image.Point{}, draw.Src)
	}

	toPx := func(p geom.Pt) (float32, float32) {
		return float32((p.X - bounds.X) * scale), float32((p.Y - bounds.Y) * scale)
	}

	for _, el := range els {
		st := elementStyle(el)

		// fill pass
		if fr, fg, fb, ok := parseHexColor(st.FillColor); ok {
			if cmds := elementCommands(el); cmds != nil {
				fillCommands(img, cmds, toPx, color.RGBA{fr, fg, fb, 255})
			}
		}

		// stroke pass: expand the sampled outline into a polygon
		outline := elementOutline(el)
		if len(outline) < 2 {
			continue
		}
		sr, sg, sb, ok := parseHexColor(st.StrokeColor)
		if !ok {
			sr, sg, sb = 0, 0, 0
		}
		stroke := eraser.StrokePolygon(outline, strokeWidthOf(st), eraser.RoundCap)
		if len(stroke) >= 3 {
			fillCommands(img, polygonCommands(stroke), toPx, color.RGBA{sr, sg, sb, 255})
		}
	}

	return png.Encode(w, img)
}

// elementOutline samples the element's boundary as a polyline in canvas
// coordinates; closed outlines repeat their first point. Paths are
// sampled from their draw commands so corner rounding strokes as arcs.
func elementOutline(el board.Element) []geom.Pt {
	switch el.Kind {
	case board.VectorPath:
		cmds := path.DrawCommands(el.Path.ToAbsolute(), el.Path.Closed, el.Path.CornerRadius)
		return path.SampleCommands(cmds, path.SamplesPerCurvedSegment)
	case board.ParametricShape:
		pts := []geom.Pt(shape.Polygonize(el.Shape))
		if len(pts) > 1 {
			pts = append(pts, pts[0])
		}
		return pts
	default:
		return nil
	}
}

func fillCommands(img *image.RGBA, cmds []path.Cmd, toPx func(geom.Pt) (float32, float32), col color.RGBA) {
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	open := false
	for _, c := range cmds {
		switch c.Op {
		case path.MoveTo:
			if open {
				z.ClosePath()
			}
			x, y := toPx(c.P1)
			z.MoveTo(x, y)
			open = true
		case path.LineTo:
			x, y := toPx(c.P1)
			z.LineTo(x, y)
		case path.QuadTo:
			cx, cy := toPx(c.P1)
			x, y := toPx(c.P2)
			z.QuadTo(cx, cy, x, y)
		case path.CubicTo:
			c1x, c1y := toPx(c.P1)
			c2x, c2y := toPx(c.P2)
			x, y := toPx(c.P3)
			z.CubeTo(c1x, c1y, c2x, c2y, x, y)
		case path.Close:
			z.ClosePath()
			open = false
		}
	}
	if open {
		z.ClosePath()
	}
	z.Draw(img, img.Bounds(), image.NewUniform(col), image.Point{})
}
