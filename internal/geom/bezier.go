/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Bezier evaluation and distance approximation. The distance functions use
// a fixed-sample minimum search, which is plenty for hit-testing at UI
// precision and keeps the math allocation-free.

// CurveDistSamples is the sample count used by DistToCubic.
const CurveDistSamples = 50

// CubicAt evaluates a cubic bezier with endpoints p0,p3 and controls p1,p2
// at parameter t in [0,1].
func CubicAt(p0, p1, p2, p3 Pt, t float64) Pt {
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Pt{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// QuadAt evaluates a quadratic bezier with endpoints p0,p2 and control p1.
func QuadAt(p0, p1, p2 Pt, t float64) Pt {
	u := 1 - t
	a := u * u
	b := 2 * u * t
	c := t * t
	return Pt{
		X: a*p0.X + b*p1.X + c*p2.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y,
	}
}

// DistToSegment returns the distance from p to the segment ab.
func DistToSegment(p, a, b Pt) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return Dist(p, a)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, Pt{a.X + t*ab.X, a.Y + t*ab.Y})
}

// DistToCubic approximates the distance from p to a cubic bezier by
// evaluating CurveDistSamples points along the curve and taking the
// minimum sample distance.
func DistToCubic(p, p0, p1, p2, p3 Pt) float64 {
	best := Dist(p, p0)
	for i := 1; i <= CurveDistSamples; i++ {
		t := float64(i) / CurveDistSamples
		if d := Dist(p, CubicAt(p0, p1, p2, p3, t)); d < best {
			best = d
		}
	}
	return best
}
