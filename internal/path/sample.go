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
	// HitTolerance is the stroke hit-test distance in canvas units.
	HitTolerance = 5
	// SamplesPerCurvedSegment is the default polygon sampling density.
	SamplesPerCurvedSegment = 10
)

// segment pairs two consecutive absolute anchors.
type segment struct {
	from, to Anchor
}

func segments(abs []Anchor, closed bool) []segment {
	n := len(abs)
	if n < 2 {
		return nil
	}
	count := n - 1
	if closed {
		count = n
	}
	out := make([]segment, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, segment{from: abs[i], to: abs[(i+1)%n]})
	}
	return out
}

func (s segment) straight() bool { return s.from.Out == nil && s.to.In == nil }

func (s segment) controls() (c1, c2 geom.Pt) {
	c1, c2 = s.from.Pt, s.to.Pt
	if s.from.Out != nil {
		c1 = *s.from.Out
	}
	if s.to.In != nil {
		c2 = *s.to.In
	}
	return c1, c2
}

// DistanceToPath returns the minimum distance from p to the path outline,
// including the closing segment when closed. Anchors are absolute.
func DistanceToPath(p geom.Pt, abs []Anchor, closed bool) float64 {
	abs = finiteAnchors(abs)
	best := math.Inf(1)
	if len(abs) == 1 {
		return geom.Dist(p, abs[0].Pt)
	}
	for _, s := range segments(abs, closed) {
		var d float64
		if s.straight() {
			d = geom.DistToSegment(p, s.from.Pt, s.to.Pt)
		} else {
			c1, c2 := s.controls()
			d = geom.DistToCubic(p, s.from.Pt, c1, c2, s.to.Pt)
		}
		if d < best {
			best = d
		}
	}
	return best
}

// SampleToPolygon flattens the path into a polygon: straight segments
// contribute only their start point, curved segments contribute samples
// evenly spaced bezier-evaluated points. Anchors are absolute. Used
// wherever a path must be treated as a polygon (fill hit-testing, boolean
// input). samples <= 0 selects SamplesPerCurvedSegment.
func SampleToPolygon(abs []Anchor, closed bool, samples int) geom.Polygon {
	if samples <= 0 {
		samples = SamplesPerCurvedSegment
	}
	abs = finiteAnchors(abs)
	if len(abs) < 2 {
		return nil
	}
	var pg geom.Polygon
	for _, s := range segments(abs, closed) {
		if s.straight() {
			pg = append(pg, s.from.Pt)
			continue
		}
		c1, c2 := s.controls()
		for k := 0; k < samples; k++ {
			t := float64(k) / float64(samples)
			pg = append(pg, geom.CubicAt(s.from.Pt, c1, c2, s.to.Pt, t))
		}
	}
	if !closed {
		pg = append(pg, abs[len(abs)-1].Pt)
	}
	return pg
}

// SampleCommands flattens a draw-command list into a polyline. Unlike
// SampleToPolygon it follows the rendered geometry, so corner-rounding
// quadratics contribute their arcs. samples <= 0 selects
// SamplesPerCurvedSegment.
func SampleCommands(cmds []Cmd, samples int) geom.Polygon {
	if samples <= 0 {
		samples = SamplesPerCurvedSegment
	}
	var pg geom.Polygon
	var cur, start geom.Pt
	for _, c := range cmds {
		switch c.Op {
		case MoveTo:
			cur = c.P1
			start = cur
			pg = append(pg, cur)
		case LineTo:
			cur = c.P1
			pg = append(pg, cur)
		case QuadTo:
			for k := 1; k <= samples; k++ {
				t := float64(k) / float64(samples)
				pg = append(pg, geom.QuadAt(cur, c.P1, c.P2, t))
			}
			cur = c.P2
		case CubicTo:
			for k := 1; k <= samples; k++ {
				t := float64(k) / float64(samples)
				pg = append(pg, geom.CubicAt(cur, c.P1, c.P2, c.P3, t))
			}
			cur = c.P3
		case Close:
			if len(pg) > 0 {
				pg = append(pg, start)
				cur = start
			}
		}
	}
	return pg
}

// Hit reports whether p hits the path: within HitTolerance of the stroke,
// or, for a closed path with at least 3 anchors, inside the sampled fill
// polygon. The path's own anchors are converted to absolute internally.
func (p Path) Hit(pt geom.Pt) bool {
	abs := finiteAnchors(p.ToAbsolute())
	if len(abs) < 2 {
		return false
	}
	if DistanceToPath(pt, abs, p.Closed) <= HitTolerance {
		return true
	}
	if p.Closed && len(abs) >= 3 {
		return SampleToPolygon(abs, true, SamplesPerCurvedSegment).Contains(pt)
	}
	return false
}
