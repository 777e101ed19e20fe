/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package path

import (
	"math"

	"gowhiteboard/internal/geom"
)

const (
	// SimplifyTolerance collapses near-collinear contour points before
	// reconstruction so clipped output does not explode into anchors.
	SimplifyTolerance = 0.3
	// SmoothTurnDegrees is the largest direction change at a contour
	// point that still reads as lying on a smooth curve.
	SmoothTurnDegrees = 72
	// HandleRatio sizes synthesized handles relative to the distance to
	// the neighboring point.
	HandleRatio = 0.3
)

// FromPolygon reconstructs an editable closed path from a raw contour,
// typically clipper output. The contour is simplified first; each kept
// point then becomes either a smooth anchor with handles tangent to the
// chord between its neighbors, when the local turn is gentle, or a plain
// corner anchor. Returns a zero path for degenerate input.
func FromPolygon(pg geom.Polygon, style Style) Path {
	pg = pg.Simplify(SimplifyTolerance)
	if len(pg) < 3 {
		return Path{}
	}
	maxTurn := SmoothTurnDegrees * math.Pi / 180
	n := len(pg)
	abs := make([]Anchor, 0, n)
	for i, p := range pg {
		prev := pg[(i-1+n)%n]
		next := pg[(i+1)%n]
		d1 := unit(p.Sub(prev))
		d2 := unit(next.Sub(p))
		dot := d1.X*d2.X + d1.Y*d2.Y
		turn := math.Acos(math.Max(-1, math.Min(1, dot)))
		a := Anchor{Pt: p, Type: Corner}
		if turn < maxTurn && turn > 0 {
			tangent := unit(next.Sub(prev))
			if tangent != (geom.Pt{}) {
				in := p.Sub(tangent.Scale(HandleRatio * geom.Dist(p, prev)))
				out := p.Add(tangent.Scale(HandleRatio * geom.Dist(p, next)))
				a = Anchor{Pt: p, Type: Smooth, In: &in, Out: &out}
			}
		}
		abs = append(abs, a)
	}
	return FromAbsolute(abs, true, style, 0)
}
