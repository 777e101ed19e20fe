/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package shape converts the built-in parametric shapes into point-sampled
// polygons for the boolean and erase engines. The kind set is a closed
// enum: adding a supported kind is a single compile-checked change here.
package shape

import (
	"math"

	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

// Kind enumerates the parametric shapes the whiteboard can draw.
type Kind uint8

const (
	Rectangle Kind = iota
	RoundedRectangle
	Ellipse
	Pentagon
	Hexagon
	Octagon
	Star
	Capsule
	Cross
	Parallelogram
	Trapezoid
	Diamond
	Triangle
	Arrow
)

func (k Kind) String() string {
	switch k {
	case RoundedRectangle:
		return "rounded-rectangle"
	case Ellipse:
		return "ellipse"
	case Pentagon:
		return "pentagon"
	case Hexagon:
		return "hexagon"
	case Octagon:
		return "octagon"
	case Star:
		return "star"
	case Capsule:
		return "capsule"
	case Cross:
		return "cross"
	case Parallelogram:
		return "parallelogram"
	case Trapezoid:
		return "trapezoid"
	case Diamond:
		return "diamond"
	case Triangle:
		return "triangle"
	case Arrow:
		return "arrow"
	default:
		return "rectangle"
	}
}

// Shape is a parametric shape descriptor: a kind plus its bounding rect.
// Radius overrides the rounded-rectangle corner radius when > 0.
type Shape struct {
	Kind   Kind
	Rect   geom.Rect
	Radius float64
	Style  path.Style
}

const (
	// ellipseMinSamples is the floor on ellipse sampling density.
	ellipseMinSamples = 180
	// arcSamples is the per-corner sample count for rounded rects and
	// per-cap count for capsules.
	arcSamples = 16
	// roundedRadiusRatio is the default rounded-rect corner radius as a
	// fraction of the shorter side.
	roundedRadiusRatio = 0.15
	// starInnerRatio scales the inner ring of the 5-point star.
	starInnerRatio = 0.38
)

// Polygonize converts the shape into a closed point sequence. The switch
// is exhaustive over Kind; unknown values fall back to the plain
// rectangle, matching the drawing behavior of the host.
func Polygonize(s Shape) geom.Polygon {
	r := s.Rect
	switch s.Kind {
	case Ellipse:
		return ellipsePolygon(r)
	case RoundedRectangle:
		return roundedRectPolygon(r, s.Radius)
	case Pentagon:
		return regularPolygon(r, 5)
	case Hexagon:
		return regularPolygon(r, 6)
	case Octagon:
		return regularPolygon(r, 8)
	case Star:
		return starPolygon(r)
	case Capsule:
		return capsulePolygon(r)
	case Cross:
		return crossPolygon(r)
	case Parallelogram:
		return geom.Polygon{
			geom.P(r.X+r.W/4, r.Y), geom.P(r.X+r.W, r.Y),
			geom.P(r.X+r.W*3/4, r.Y+r.H), geom.P(r.X, r.Y+r.H),
		}
	case Trapezoid:
		return geom.Polygon{
			geom.P(r.X+r.W/4, r.Y), geom.P(r.X+r.W*3/4, r.Y),
			geom.P(r.X+r.W, r.Y+r.H), geom.P(r.X, r.Y+r.H),
		}
	case Diamond:
		return geom.Polygon{
			geom.P(r.X+r.W/2, r.Y), geom.P(r.X+r.W, r.Y+r.H/2),
			geom.P(r.X+r.W/2, r.Y+r.H), geom.P(r.X, r.Y+r.H/2),
		}
	case Triangle:
		return geom.Polygon{
			geom.P(r.X+r.W/2, r.Y), geom.P(r.X+r.W, r.Y+r.H), geom.P(r.X, r.Y+r.H),
		}
	case Arrow:
		return arrowPolygon(r)
	default: // Rectangle
		return geom.Polygon{
			r.Min(), geom.P(r.X+r.W, r.Y), r.Max(), geom.P(r.X, r.Y+r.H),
		}
	}
}

// ellipsePolygon samples the inscribed ellipse; the sample count follows
// the estimated perimeter (Ramanujan) with a floor of 180 points so small
// circles still erase cleanly.
func ellipsePolygon(r geom.Rect) geom.Polygon {
	a, b := r.W/2, r.H/2
	cx, cy := r.X+a, r.Y+b
	per := math.Pi * (3*(a+b) - math.Sqrt((3*a+b)*(a+3*b)))
	n := ellipseMinSamples
	if int(per) > n {
		n = int(per)
	}
	pg := make(geom.Polygon, 0, n)
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		pg = append(pg, geom.P(cx+a*math.Cos(t), cy+b*math.Sin(t)))
	}
	return pg
}

func roundedRectPolygon(r geom.Rect, radius float64) geom.Polygon {
	short := math.Min(r.W, r.H)
	rad := radius
	if rad <= 0 {
		rad = short * roundedRadiusRatio
	}
	if rad > short/2 {
		rad = short / 2
	}
	// quarter-circle centers, clockwise from top-left
	centers := []geom.Pt{
		geom.P(r.X+rad, r.Y+rad),
		geom.P(r.X+r.W-rad, r.Y+rad),
		geom.P(r.X+r.W-rad, r.Y+r.H-rad),
		geom.P(r.X+rad, r.Y+r.H-rad),
	}
	starts := []float64{math.Pi, 1.5 * math.Pi, 0, 0.5 * math.Pi}
	pg := make(geom.Polygon, 0, 4*arcSamples)
	for c := 0; c < 4; c++ {
		for i := 0; i < arcSamples; i++ {
			t := starts[c] + (math.Pi/2)*float64(i)/float64(arcSamples-1)
			pg = append(pg, geom.P(
				centers[c].X+rad*math.Cos(t),
				centers[c].Y+rad*math.Sin(t),
			))
		}
	}
	return pg
}

// regularPolygon places n evenly spaced points on the inscribed ellipse,
// first point at the top.
func regularPolygon(r geom.Rect, n int) geom.Polygon {
	a, b := r.W/2, r.H/2
	cx, cy := r.X+a, r.Y+b
	pg := make(geom.Polygon, 0, n)
	for i := 0; i < n; i++ {
		t := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pg = append(pg, geom.P(cx+a*math.Cos(t), cy+b*math.Sin(t)))
	}
	return pg
}

// starPolygon is the 5-point star: 10 alternating outer/inner points.
func starPolygon(r geom.Rect) geom.Polygon {
	a, b := r.W/2, r.H/2
	cx, cy := r.X+a, r.Y+b
	pg := make(geom.Polygon, 0, 10)
	for i := 0; i < 10; i++ {
		ra, rb := a, b
		if i%2 == 1 {
			ra, rb = a*starInnerRatio, b*starInnerRatio
		}
		t := -math.Pi/2 + math.Pi*float64(i)/5
		pg = append(pg, geom.P(cx+ra*math.Cos(t), cy+rb*math.Sin(t)))
	}
	return pg
}

// capsulePolygon joins two semicircular end-caps with straight sides; a
// capsule no wider than tall degenerates to the plain ellipse.
func capsulePolygon(r geom.Rect) geom.Polygon {
	if r.W <= r.H {
		return ellipsePolygon(r)
	}
	rad := r.H / 2
	cy := r.Y + rad
	leftC := geom.P(r.X+rad, cy)
	rightC := geom.P(r.X+r.W-rad, cy)
	pg := make(geom.Polygon, 0, 2*arcSamples)
	// right cap, top to bottom
	for i := 0; i < arcSamples; i++ {
		t := -math.Pi/2 + math.Pi*float64(i)/float64(arcSamples-1)
		pg = append(pg, geom.P(rightC.X+rad*math.Cos(t), rightC.Y+rad*math.Sin(t)))
	}
	// left cap, bottom to top
	for i := 0; i < arcSamples; i++ {
		t := math.Pi/2 + math.Pi*float64(i)/float64(arcSamples-1)
		pg = append(pg, geom.P(leftC.X+rad*math.Cos(t), leftC.Y+rad*math.Sin(t)))
	}
	return pg
}

// crossPolygon is the plus sign with arms one third of each dimension.
func crossPolygon(r geom.Rect) geom.Polygon {
	x1, x2 := r.X+r.W/3, r.X+r.W*2/3
	y1, y2 := r.Y+r.H/3, r.Y+r.H*2/3
	return geom.Polygon{
		geom.P(x1, r.Y), geom.P(x2, r.Y), geom.P(x2, y1),
		geom.P(r.X+r.W, y1), geom.P(r.X+r.W, y2), geom.P(x2, y2),
		geom.P(x2, r.Y+r.H), geom.P(x1, r.Y+r.H), geom.P(x1, y2),
		geom.P(r.X, y2), geom.P(r.X, y1), geom.P(x1, y1),
	}
}

// arrowPolygon is the closed right-pointing block arrow.
func arrowPolygon(r geom.Rect) geom.Polygon {
	headX := r.X + r.W*0.6
	y1, y2 := r.Y+r.H/4, r.Y+r.H*3/4
	return geom.Polygon{
		geom.P(r.X, y1), geom.P(headX, y1), geom.P(headX, r.Y),
		geom.P(r.X+r.W, r.Y+r.H/2), geom.P(headX, r.Y+r.H),
		geom.P(headX, y2), geom.P(r.X, y2),
	}
}
