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
	"strings"

	"log/slog"

	"gowhiteboard/internal/board"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/path"
)

// WriteSVG renders the elements as one SVG document. The viewBox covers
// the content bounds plus margin, so the output is resolution independent.
func WriteSVG(w io.Writer, els []board.Element, opt Options) error {
	l := applog.WithOperation(applog.WithComponent("export"), "svg")
	bounds := contentBounds(els, opt.margin())

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		fmtFloat(bounds.X), fmtFloat(bounds.Y), fmtFloat(bounds.W), fmtFloat(bounds.H))
	b.WriteString("\n")
	if opt.Background != "" {
		fmt.Fprintf(&b, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			fmtFloat(bounds.X), fmtFloat(bounds.Y), fmtFloat(bounds.W), fmtFloat(bounds.H), opt.Background)
		b.WriteString("\n")
	}

	skipped := 0
	for _, el := range els {
		cmds := elementCommands(el)
		if cmds == nil {
			skipped++
			continue
		}
		st := elementStyle(el)
		stroke := st.StrokeColor
		if stroke == "" {
			stroke = "#000000"
		}
		fill := st.FillColor
		if fill == "" {
			fill = "none"
		}
		dash := ""
		switch st.StrokeStyle {
		case path.Dashed:
			dash = ` stroke-dasharray="6 4"`
		case path.Dotted:
			dash = ` stroke-dasharray="1 3"`
		}
		fmt.Fprintf(&b, `  <path d="%s" stroke="%s" stroke-width="%s" fill="%s"%s/>`,
			svgPathData(cmds), stroke, fmtFloat(strokeWidthOf(st)), fill, dash)
		b.WriteString("\n")
	}
	b.WriteString("</svg>\n")

	if skipped > 0 {
		l.Warn("unsupported elements skipped", slog.Int("count", skipped))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func svgPathData(cmds []path.Cmd) string {
	var d strings.Builder
	for i, c := range cmds {
		if i > 0 {
			d.WriteByte(' ')
		}
		switch c.Op {
		case path.MoveTo:
			fmt.Fprintf(&d, "M %s %s", fmtFloat(c.P1.X), fmtFloat(c.P1.Y))
		case path.LineTo:
			fmt.Fprintf(&d, "L %s %s", fmtFloat(c.P1.X), fmtFloat(c.P1.Y))
		case path.QuadTo:
			fmt.Fprintf(&d, "Q %s %s %s %s",
				fmtFloat(c.P1.X), fmtFloat(c.P1.Y), fmtFloat(c.P2.X), fmtFloat(c.P2.Y))
		case path.CubicTo:
			fmt.Fprintf(&d, "C %s %s %s %s %s %s",
				fmtFloat(c.P1.X), fmtFloat(c.P1.Y),
				fmtFloat(c.P2.X), fmtFloat(c.P2.Y),
				fmtFloat(c.P3.X), fmtFloat(c.P3.Y))
		case path.Close:
			d.WriteByte('Z')
		}
	}
	return d.String()
}
