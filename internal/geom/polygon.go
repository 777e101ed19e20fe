/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Polygon is a transient, ordered point sequence in absolute coordinates.
// It is the lingua franca into and out of the boolean and erase engines and
// never has persistent identity: it is always derived from a path or shape
// and converted back afterwards. The contour is implicitly closed.
type Polygon []Pt

// SignedArea returns the signed area via the shoelace formula. Positive for
// counter-clockwise winding in a y-up frame (the sign flips in the y-down
// canvas frame; callers compare magnitudes).
func (pg Polygon) SignedArea() float64 {
	if len(pg) < 3 {
		return 0
	}
	var s float64
	for i, p := range pg {
		q := pg[(i+1)%len(pg)]
		s += p.X*q.Y - q.X*p.Y
	}
	return s / 2
}

// Area returns the absolute enclosed area.
func (pg Polygon) Area() float64 { return math.Abs(pg.SignedArea()) }

// Bounds returns the bounding rect of the contour.
func (pg Polygon) Bounds() Rect { return BoundsOf(pg) }

// Contains reports whether p lies inside the contour under the non-zero
// winding rule. Points exactly on an edge may report either way.
func (pg Polygon) Contains(p Pt) bool {
	if len(pg) < 3 {
		return false
	}
	winding := 0
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		if a.Y <= p.Y {
			if b.Y > p.Y && isLeft(a, b, p) > 0 {
				winding++
			}
		} else if b.Y <= p.Y && isLeft(a, b, p) < 0 {
			winding--
		}
	}
	return winding != 0
}

// isLeft is > 0 when p is left of the directed line ab.
func isLeft(a, b, p Pt) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (p.X-a.X)*(b.Y-a.Y)
}

// Simplify collapses near-collinear points: a point is dropped when its
// perpendicular distance to the line through the previously kept point and
// its successor is below tol. Keeps at least a triangle.
func (pg Polygon) Simplify(tol float64) Polygon {
	n := len(pg)
	if n <= 3 || tol <= 0 {
		return pg
	}
	out := make(Polygon, 0, n)
	for i := 0; i < n; i++ {
		var prev Pt
		if len(out) > 0 {
			prev = out[len(out)-1]
		} else {
			prev = pg[n-1]
		}
		next := pg[(i+1)%n]
		if DistToSegment(pg[i], prev, next) < tol && n-(i-len(out))-1 >= 3 {
			continue
		}
		out = append(out, pg[i])
	}
	if len(out) < 3 {
		return pg
	}
	return out
}

// Reverse returns the contour with opposite winding.
func (pg Polygon) Reverse() Polygon {
	out := make(Polygon, len(pg))
	for i, p := range pg {
		out[len(pg)-1-i] = p
	}
	return out
}

// ClosestPair returns the indices of the closest point pair between the two
// contours and their distance. Both contours must be non-empty.
func (pg Polygon) ClosestPair(other Polygon) (i, j int, d float64) {
	d = math.Inf(1)
	for a, p := range pg {
		for b, q := range other {
			if dd := Dist(p, q); dd < d {
				d = dd
				i, j = a, b
			}
		}
	}
	return i, j, d
}

// Intersects reports whether the two contours share any area. Bounding
// boxes are checked first; the full test looks for any vertex containment
// or edge crossing.
func (pg Polygon) Intersects(other Polygon) bool {
	if len(pg) < 3 || len(other) < 3 {
		return false
	}
	if !pg.Bounds().Overlaps(other.Bounds()) {
		return false
	}
	for _, p := range other {
		if pg.Contains(p) {
			return true
		}
	}
	for _, p := range pg {
		if other.Contains(p) {
			return true
		}
	}
	for i, a := range pg {
		b := pg[(i+1)%len(pg)]
		for j, c := range other {
			d := other[(j+1)%len(other)]
			if segmentsCross(a, b, c, d) {
				return true
			}
		}
	}
	return false
}

// BridgeHoles splices every hole into the outer contour: for each hole
// the closest vertex pair between outer and hole is found and the hole's
// points are inserted at that position, entering and leaving through the
// same pair so the result stays a single closed contour. Holes are given
// opposite winding first so the enclosed region subtracts under the
// non-zero rule.
func BridgeHoles(outer Polygon, holes []Polygon) Polygon {
	out := outer
	for _, h := range holes {
		if len(h) < 3 {
			continue
		}
		if (out.SignedArea() > 0) == (h.SignedArea() > 0) {
			h = h.Reverse()
		}
		i, j, _ := out.ClosestPair(h)
		spliced := make(Polygon, 0, len(out)+len(h)+2)
		spliced = append(spliced, out[:i+1]...)
		spliced = append(spliced, h[j:]...)
		spliced = append(spliced, h[:j+1]...)
		spliced = append(spliced, out[i:]...)
		out = spliced
	}
	return out
}

// minContourArea drops sliver contours produced by clipping noise.
const minContourArea = 1e-9

// AssembleContours groups raw clipper output into filled regions. A
// contour contained in an odd number of other contours is a hole and is
// bridged into its smallest enclosing contour; every even-depth contour
// becomes its own region. Disjoint remainders therefore stay separate
// while an enclosed cutout collapses into its outer boundary.
func AssembleContours(contours []Polygon) []Polygon {
	kept := make([]Polygon, 0, len(contours))
	for _, c := range contours {
		if len(c) >= 3 && c.Area() > minContourArea {
			kept = append(kept, c)
		}
	}
	n := len(kept)
	depth := make([]int, n)
	parent := make([]int, n)
	for i := range kept {
		parent[i] = -1
		for j := range kept {
			if i == j || !kept[j].Contains(kept[i][0]) {
				continue
			}
			depth[i]++
			if parent[i] == -1 || kept[j].Area() < kept[parent[i]].Area() {
				parent[i] = j
			}
		}
	}
	holes := make(map[int][]Polygon, n)
	for i := range kept {
		if depth[i]%2 == 1 && parent[i] >= 0 {
			holes[parent[i]] = append(holes[parent[i]], kept[i])
		}
	}
	var out []Polygon
	for i := range kept {
		if depth[i]%2 == 0 {
			out = append(out, BridgeHoles(kept[i], holes[i]))
		}
	}
	return out
}

func segmentsCross(a, b, c, d Pt) bool {
	d1 := isLeft(c, d, a)
	d2 := isLeft(c, d, b)
	d3 := isLeft(a, b, c)
	d4 := isLeft(a, b, d)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}
