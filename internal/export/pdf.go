/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

// WritePDF renders the elements onto a single PDF page sized to the
// content bounds (one canvas unit = one point).
func WritePDF(w io.Writer, els []board.Element, opt Options) error {
	bounds := contentBounds(els, opt.margin())

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: bounds.W, Ht: bounds.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	if r, g, b, ok := parseHexColor(opt.Background); ok {
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.Rect(0, 0, bounds.W, bounds.H, "F")
	}

	tr := func(p geom.Pt) (float64, float64) {
		return p.X - bounds.X, p.Y - bounds.Y
	}

	for _, el := range els {
		cmds := elementCommands(el)
		if cmds == nil {
			continue
		}
		st := elementStyle(el)

		sr, sg, sb, ok := parseHexColor(st.StrokeColor)
		if !ok {
			sr, sg, sb = 0, 0, 0
		}
		pdf.SetDrawColor(int(sr), int(sg), int(sb))
		pdf.SetLineWidth(strokeWidthOf(st))
		switch st.StrokeStyle {
		case path.Dashed:
			pdf.SetDashPattern([]float64{6, 4}, 0)
		case path.Dotted:
			pdf.SetDashPattern([]float64{1, 3}, 0)
		default:
			pdf.SetDashPattern([]float64{}, 0)
		}

		styleStr := "D"
		if fr, fg, fb, ok := parseHexColor(st.FillColor); ok {
			pdf.SetFillColor(int(fr), int(fg), int(fb))
			styleStr = "FD"
		}

		for _, c := range cmds {
			switch c.Op {
			case path.MoveTo:
				x, y := tr(c.P1)
				pdf.MoveTo(x, y)
			case path.LineTo:
				x, y := tr(c.P1)
				pdf.LineTo(x, y)
			case path.QuadTo:
				cx, cy := tr(c.P1)
				x, y := tr(c.P2)
				pdf.CurveTo(cx, cy, x, y)
			case path.CubicTo:
				c1x, c1y := tr(c.P1)
				c2x, c2y := tr(c.P2)
				x, y := tr(c.P3)
				pdf.CurveBezierCubicTo(c1x, c1y, c2x, c2y, x, y)
			case path.Close:
				pdf.ClosePath()
			}
		}
		pdf.DrawPath(styleStr)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
