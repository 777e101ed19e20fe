/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func almostEq(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func TestMirrorAndMidpoint(t *testing.T) {
	c := P(10, 10)
	p := P(13, 6)
	m := Mirror(p, c)
	if m.X != 7 || m.Y != 14 {
		t.Fatalf("mirror: got %+v", m)
	}
	mid := Midpoint(p, m)
	if mid != c {
		t.Fatalf("midpoint of a point and its mirror must be the center, got %+v", mid)
	}
}

func TestScaleTo(t *testing.T) {
	c := P(0, 0)
	p := ScaleTo(c, P(3, 4), 10)
	if !almostEq(p.X, 6, 1e-9) || !almostEq(p.Y, 8, 1e-9) {
		t.Fatalf("expected (6,8), got %+v", p)
	}
	// degenerate direction stays at the center
	if q := ScaleTo(c, c, 5); q != c {
		t.Fatalf("expected center for zero direction, got %+v", q)
	}
}

func TestCubicAtEndpoints(t *testing.T) {
	p0, p1, p2, p3 := P(0, 0), P(10, 0), P(10, 10), P(20, 10)
	if got := CubicAt(p0, p1, p2, p3, 0); got != p0 {
		t.Fatalf("t=0 must be start, got %+v", got)
	}
	if got := CubicAt(p0, p1, p2, p3, 1); got != p3 {
		t.Fatalf("t=1 must be end, got %+v", got)
	}
	mid := CubicAt(p0, p1, p2, p3, 0.5)
	if !almostEq(mid.X, 10, 1e-9) || !almostEq(mid.Y, 5, 1e-9) {
		t.Fatalf("midpoint of symmetric cubic: got %+v", mid)
	}
}

func TestDistToSegment(t *testing.T) {
	if d := DistToSegment(P(5, 5), P(0, 0), P(10, 0)); !almostEq(d, 5, 1e-9) {
		t.Fatalf("perpendicular distance: got %v", d)
	}
	// beyond an endpoint the distance is to the endpoint
	if d := DistToSegment(P(-3, 4), P(0, 0), P(10, 0)); !almostEq(d, 5, 1e-9) {
		t.Fatalf("endpoint distance: got %v", d)
	}
	// degenerate segment
	if d := DistToSegment(P(3, 4), P(0, 0), P(0, 0)); !almostEq(d, 5, 1e-9) {
		t.Fatalf("degenerate segment: got %v", d)
	}
}

func TestDistToCubicOnCurveIsNearZero(t *testing.T) {
	p0, p1, p2, p3 := P(0, 0), P(10, 20), P(30, 20), P(40, 0)
	on := CubicAt(p0, p1, p2, p3, 0.32)
	if d := DistToCubic(on, p0, p1, p2, p3); d > 0.5 {
		t.Fatalf("point on curve should be near zero distance, got %v", d)
	}
}

func TestPolygonAreaAndContains(t *testing.T) {
	sq := Polygon{P(0, 0), P(10, 0), P(10, 10), P(0, 10)}
	if a := sq.Area(); !almostEq(a, 100, 1e-9) {
		t.Fatalf("square area: got %v", a)
	}
	if !sq.Contains(P(5, 5)) {
		t.Fatalf("center must be inside")
	}
	if sq.Contains(P(15, 5)) {
		t.Fatalf("outside point must not be inside")
	}
	// winding independent of orientation under the non-zero rule
	if !sq.Reverse().Contains(P(5, 5)) {
		t.Fatalf("reversed square must still contain its center")
	}
}

func TestPolygonSimplifyDropsCollinear(t *testing.T) {
	pg := Polygon{P(0, 0), P(5, 0.01), P(10, 0), P(10, 10), P(0, 10)}
	out := pg.Simplify(0.3)
	if len(out) != 4 {
		t.Fatalf("expected the near-collinear point dropped, got %d points", len(out))
	}
	// a large tolerance must never reduce below a triangle
	tri := Polygon{P(0, 0), P(10, 0), P(5, 1)}
	if got := tri.Simplify(100); len(got) < 3 {
		t.Fatalf("simplify collapsed below a triangle: %d", len(got))
	}
}

func TestPolygonIntersects(t *testing.T) {
	a := Polygon{P(0, 0), P(10, 0), P(10, 10), P(0, 10)}
	b := Polygon{P(5, 5), P(15, 5), P(15, 15), P(5, 15)}
	c := Polygon{P(20, 20), P(30, 20), P(30, 30), P(20, 30)}
	if !a.Intersects(b) {
		t.Fatalf("overlapping squares must intersect")
	}
	if a.Intersects(c) {
		t.Fatalf("disjoint squares must not intersect")
	}
	// pure edge-crossing case with no vertex containment
	h := Polygon{P(-1, 4), P(11, 4), P(11, 6), P(-1, 6)}
	v := Polygon{P(4, -1), P(6, -1), P(6, 11), P(4, 11)}
	if !h.Intersects(v) {
		t.Fatalf("crossing strips must intersect")
	}
}

func TestClosestPair(t *testing.T) {
	a := Polygon{P(0, 0), P(10, 0), P(10, 10)}
	b := Polygon{P(12, 0), P(20, 0), P(20, 10)}
	i, j, d := a.ClosestPair(b)
	if i != 1 || j != 0 || !almostEq(d, 2, 1e-9) {
		t.Fatalf("closest pair: got i=%d j=%d d=%v", i, j, d)
	}
}

func TestBoundsOfSkipsNonFinite(t *testing.T) {
	pts := []Pt{P(1, 1), {math.NaN(), 2}, P(3, 4)}
	r := BoundsOf(pts)
	if r.X != 1 || r.Y != 1 || r.W != 2 || r.H != 3 {
		t.Fatalf("bounds: got %+v", r)
	}
	if !(BoundsOf(nil) == Rect{}) {
		t.Fatalf("empty input must give zero rect")
	}
}
