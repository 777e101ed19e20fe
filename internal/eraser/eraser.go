/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package eraser implements the precise eraser: an eraser stroke is
// expanded into a closed polygon, subtracted from every element it truly
// overlaps, and each remainder is reconstructed as editable closed paths.
// Elements the stroke never intersects are guaranteed untouched.
package eraser

import (
	"errors"
	"math"

	"log/slog"

	polyclip "github.com/ctessum/polyclip-go"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/path"
)

// CapStyle selects the stroke end treatment.
type CapStyle uint8

const (
	RoundCap CapStyle = iota
	SquareCap
)

const (
	// capSamples is the point count of a round end-cap semicircle.
	capSamples = 16
	// miterLimit caps the join offset at sharp stroke corners.
	miterLimit = 4
)

// Options configures one eraser pass.
type Options struct {
	Width float64
	Cap   CapStyle
}

// Result is the outcome of one eraser stroke. Skipped lists the elements
// the stroke touched but the engine cannot cut, so the caller may offer
// whole-element deletion instead.
type Result struct {
	Batch   board.Batch
	Skipped []*board.UnsupportedError
}

// Erase resolves the stroke against every candidate element and returns
// one batch covering the full stroke. Strokes with fewer than 2 distinct
// points, or a non-positive width, erase nothing.
func Erase(els []board.Element, stroke []geom.Pt, opts Options) Result {
	log := applog.WithOperation(applog.WithComponent("eraser"), "erase")
	eraser := StrokePolygon(stroke, opts.Width, opts.Cap)
	if len(eraser) < 3 {
		return Result{}
	}
	eraserClip := toClip(eraser)
	eraserBounds := eraser.Bounds()

	var res Result
	touched, deleted := 0, 0
	for _, el := range els {
		if !el.Bounds().Overlaps(eraserBounds) {
			continue
		}
		pg, err := el.Polygonize()
		if err != nil {
			var ue *board.UnsupportedError
			if errors.As(err, &ue) {
				res.Skipped = append(res.Skipped, ue)
			}
			continue
		}
		// a bounding-box overlap is not an intersection; elements the
		// stroke never truly crosses must be left untouched
		if !pg.Intersects(eraser) {
			continue
		}
		touched++
		remainder := toClip(pg).Construct(polyclip.DIFFERENCE, eraserClip)
		regions := geom.AssembleContours(fromClip(remainder))
		res.Batch.Changes = append(res.Batch.Changes, board.Change{Op: board.Delete, ID: el.ID})
		inserted := 0
		for _, region := range regions {
			p := path.FromPolygon(region, elementStyle(el))
			if len(p.Anchors) < 3 {
				continue
			}
			res.Batch.Changes = append(res.Batch.Changes, board.Change{
				Op: board.Insert, Element: board.NewPathElement(p),
			})
			inserted++
		}
		if inserted == 0 {
			deleted++
		}
	}
	if touched > 0 {
		log.Info("stroke resolved",
			slog.Int("touched", touched),
			slog.Int("fully_erased", deleted),
			slog.Int("skipped", len(res.Skipped)),
		)
	}
	return res
}

// StrokePolygon expands an ordered stroke into a closed polygon by
// offsetting width/2 to each side. Round strokes join bends with sampled
// arcs and close the ends with semicircles; square strokes use mitered
// joins (clamped at sharp corners) and extend the ends by the half width.
func StrokePolygon(stroke []geom.Pt, width float64, capStyle CapStyle) geom.Polygon {
	pts := dedupe(stroke)
	if len(pts) < 2 || width <= 0 {
		return nil
	}
	half := width / 2
	n := len(pts)

	dirs := make([]geom.Pt, n-1)
	for i := 0; i < n-1; i++ {
		dirs[i] = unit(pts[i+1].Sub(pts[i]))
	}

	left := geom.Polygon{pts[0].Add(perp(dirs[0]).Scale(half))}
	right := geom.Polygon{pts[0].Sub(perp(dirs[0]).Scale(half))}
	for i := 1; i < n-1; i++ {
		a, b := perp(dirs[i-1]), perp(dirs[i])
		cross := dirs[i-1].X*dirs[i].Y - dirs[i-1].Y*dirs[i].X
		// the side the stroke turns away from is the convex one
		left = append(left, joinPoints(pts[i], a, b, half, capStyle, cross < 0)...)
		right = append(right, joinPoints(pts[i], a.Scale(-1), b.Scale(-1), half, capStyle, cross > 0)...)
	}
	left = append(left, pts[n-1].Add(perp(dirs[n-2]).Scale(half)))
	right = append(right, pts[n-1].Sub(perp(dirs[n-2]).Scale(half)))

	out := make(geom.Polygon, 0, len(left)+len(right)+2*capSamples)
	out = append(out, left...)
	out = append(out, endCap(pts[n-1], dirs[n-2], half, capStyle, left[len(left)-1], right[len(right)-1])...)
	for i := len(right) - 1; i >= 0; i-- {
		out = append(out, right[i])
	}
	out = append(out, endCap(pts[0], dirs[0].Scale(-1), half, capStyle, right[0], left[0])...)
	return out
}

// joinPoints emits the offset points for one side of an interior bend.
// a and b are the side's unit offset directions before and after the
// bend. A round stroke's convex side gets an arc at exactly the half
// width, so the brush never reaches past its own radius; everything
// else keeps the clamped miter.
func joinPoints(center, a, b geom.Pt, half float64, capStyle CapStyle, convex bool) []geom.Pt {
	if capStyle == RoundCap && convex {
		start := math.Atan2(a.Y, a.X)
		sweep := angleDiff(start, math.Atan2(b.Y, b.X))
		k := int(math.Ceil(math.Abs(sweep) / math.Pi * capSamples))
		if k < 1 {
			k = 1
		}
		arc := make([]geom.Pt, 0, k+1)
		for j := 0; j <= k; j++ {
			t := start + sweep*float64(j)/float64(k)
			arc = append(arc, geom.P(center.X+half*math.Cos(t), center.Y+half*math.Sin(t)))
		}
		return arc
	}
	normal := unit(a.Add(b))
	scale := half
	if normal == (geom.Pt{}) {
		normal = a
	} else if dot := normal.X*a.X + normal.Y*a.Y; dot > 1.0/miterLimit {
		scale = half / dot
	} else {
		scale = half * miterLimit
	}
	return []geom.Pt{center.Add(normal.Scale(scale))}
}

// endCap emits the cap points between the side endpoints from and to,
// bulging along dir. The side endpoints themselves are not repeated.
func endCap(center, dir geom.Pt, half float64, capStyle CapStyle, from, to geom.Pt) []geom.Pt {
	if capStyle == SquareCap {
		ext := dir.Scale(half)
		return []geom.Pt{from.Add(ext), to.Add(ext)}
	}
	// sweep a semicircle from the angle of from to the angle of to,
	// passing through center+dir*half
	start := math.Atan2(from.Y-center.Y, from.X-center.X)
	mid := math.Atan2(dir.Y, dir.X)
	// choose the sweep direction that passes through mid
	sweep := math.Pi
	if angleDiff(start, mid) < 0 {
		sweep = -math.Pi
	}
	pts := make([]geom.Pt, 0, capSamples)
	for i := 1; i < capSamples; i++ {
		t := start + sweep*float64(i)/capSamples
		pts = append(pts, geom.P(center.X+half*math.Cos(t), center.Y+half*math.Sin(t)))
	}
	return pts
}

// angleDiff returns the signed difference b-a normalized to (-pi, pi].
func angleDiff(a, b float64) float64 {
	d := b - a
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

func dedupe(pts []geom.Pt) []geom.Pt {
	out := make([]geom.Pt, 0, len(pts))
	for _, p := range pts {
		if !p.IsFinite() {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func unit(v geom.Pt) geom.Pt {
	l := v.Len()
	if l == 0 {
		return geom.Pt{}
	}
	return v.Scale(1 / l)
}

// perp rotates v a quarter turn counter-clockwise.
func perp(v geom.Pt) geom.Pt { return geom.Pt{X: -v.Y, Y: v.X} }

func elementStyle(el board.Element) path.Style {
	switch el.Kind {
	case board.VectorPath:
		return el.Path.Style
	case board.ParametricShape:
		return el.Shape.Style
	default:
		return path.Style{}
	}
}

func toClip(pg geom.Polygon) polyclip.Polygon {
	c := make(polyclip.Contour, len(pg))
	for i, p := range pg {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return polyclip.Polygon{c}
}

func fromClip(p polyclip.Polygon) []geom.Polygon {
	out := make([]geom.Polygon, 0, len(p))
	for _, c := range p {
		pg := make(geom.Polygon, len(c))
		for i, pt := range c {
			pg[i] = geom.Pt{X: pt.X, Y: pt.Y}
		}
		out = append(out, pg)
	}
	return out
}
