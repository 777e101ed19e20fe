/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom provides the basic 2D primitives of the whiteboard geometry
// core: points, rectangles, bezier evaluation, distances and polygons.
// Everything here is pure and stateless; callers are responsible for the
// finiteness of coordinates crossing the library boundary.
package geom

import "math"

// Pt is a 2D point in canvas units.
type Pt struct{ X, Y float64 }

func P(x, y float64) Pt { return Pt{X: x, Y: y} }

func (p Pt) Add(q Pt) Pt        { return Pt{p.X + q.X, p.Y + q.Y} }
func (p Pt) Sub(q Pt) Pt        { return Pt{p.X - q.X, p.Y - q.Y} }
func (p Pt) Scale(s float64) Pt { return Pt{p.X * s, p.Y * s} }

// Len returns the length of p interpreted as a vector.
func (p Pt) Len() float64 { return math.Hypot(p.X, p.Y) }

// IsFinite reports whether both coordinates are finite numbers. Points
// failing this check are excluded from rendering and sampling rather than
// raised as errors.
func (p Pt) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Dist returns the euclidean distance between a and b.
func Dist(a, b Pt) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Pt) Pt { return Pt{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Mirror reflects p through center (a 180 degree rotation about center).
func Mirror(p, center Pt) Pt { return Pt{2*center.X - p.X, 2*center.Y - p.Y} }

// ScaleTo returns the point at the given distance from center along the
// direction from center to target. When target coincides with center the
// center itself is returned, since the direction is undefined.
func ScaleTo(center, target Pt, length float64) Pt {
	d := Dist(center, target)
	if d == 0 {
		return center
	}
	return Pt{
		X: center.X + (target.X-center.X)/d*length,
		Y: center.Y + (target.Y-center.Y)/d*length,
	}
}

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float64
	W, H float64
}

func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Min() Pt { return Pt{r.X, r.Y} }
func (r Rect) Max() Pt { return Pt{r.X + r.W, r.Y + r.H} }

// IsEmpty reports whether the rect has no extent in either dimension.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X <= r.X+r.W && p.Y <= r.Y+r.H
}

// Overlaps reports whether r and o share any area (touching edges count).
func (r Rect) Overlaps(o Rect) bool {
	return r.X <= o.X+o.W && o.X <= r.X+r.W && r.Y <= o.Y+o.H && o.Y <= r.Y+r.H
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	minX := math.Min(r.X, o.X)
	minY := math.Min(r.Y, o.Y)
	maxX := math.Max(r.X+r.W, o.X+o.W)
	maxY := math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Pad grows the rect by d on all sides (negative shrinks).
func (r Rect) Pad(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

// BoundsOf returns the bounding rect of the given points, skipping
// non-finite ones. An empty or fully non-finite input yields a zero rect.
func BoundsOf(pts []Pt) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	any := false
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		any = true
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if !any {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}
