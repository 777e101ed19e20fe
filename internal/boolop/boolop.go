/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package boolop combines closed paths and polygonized shapes with the
// classic boolean set operations. The first element of the selection is
// the clipping subject, every further element a clip operand. Results
// come back as editable paths reconstructed from the clipped contours;
// enclosed cutouts are bridged into their outer boundary so each result
// stays one closed contour.
package boolop

import (
	"errors"

	"log/slog"

	polyclip "github.com/ctessum/polyclip-go"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	applog "gowhiteboard/internal/log"
	"gowhiteboard/internal/path"
)

// Op is a boolean combination.
type Op uint8

const (
	Union Op = iota
	Subtract
	Intersect
	Exclude
	// Flatten merges a selection into one shape; geometrically a union.
	Flatten
)

func (o Op) String() string {
	switch o {
	case Subtract:
		return "subtract"
	case Intersect:
		return "intersect"
	case Exclude:
		return "exclude"
	case Flatten:
		return "flatten"
	default:
		return "union"
	}
}

func (o Op) clipOp() polyclip.Op {
	switch o {
	case Subtract:
		return polyclip.DIFFERENCE
	case Intersect:
		return polyclip.INTERSECTION
	case Exclude:
		return polyclip.XOR
	default:
		return polyclip.UNION
	}
}

var (
	// ErrNotEnoughElements means fewer than 2 convertible elements were
	// available; the board is left untouched.
	ErrNotEnoughElements = errors.New("boolean operation needs at least two closed elements")
	// ErrNoResult means the clip produced no area (e.g. an intersection
	// of disjoint shapes); the board is left untouched.
	ErrNoResult = errors.New("boolean operation produced no result")
)

// Combine computes op over the given elements, in selection order, and
// returns the batch that deletes the combined originals and inserts the
// reconstructed result paths. Elements that cannot be polygonized are
// skipped with a warning and survive the operation; when fewer than two
// convertible elements remain the whole operation aborts with
// ErrNotEnoughElements and an empty batch.
func Combine(els []board.Element, op Op) (board.Batch, error) {
	log := applog.WithOperation(applog.WithComponent("boolop"), op.String())
	if len(els) < 2 {
		return board.Batch{}, ErrNotEnoughElements
	}

	type operand struct {
		el board.Element
		pg polyclip.Polygon
	}
	operands := make([]operand, 0, len(els))
	var style path.Style
	for _, el := range els {
		pg, err := el.Polygonize()
		if err != nil {
			log.Warn("element skipped", slog.String("id", el.ID), slog.Any("err", err))
			continue
		}
		if len(operands) == 0 {
			style = elementStyle(el)
		}
		operands = append(operands, operand{el: el, pg: toClip(pg)})
	}
	if len(operands) < 2 {
		return board.Batch{}, ErrNotEnoughElements
	}

	result := operands[0].pg
	for _, o := range operands[1:] {
		result = result.Construct(op.clipOp(), o.pg)
	}

	regions := geom.AssembleContours(fromClip(result))
	var batch board.Batch
	for _, o := range operands {
		batch.Changes = append(batch.Changes, board.Change{Op: board.Delete, ID: o.el.ID})
	}
	for _, region := range regions {
		p := path.FromPolygon(region, style)
		if len(p.Anchors) < 3 {
			continue
		}
		el := board.NewPathElement(p)
		batch.Changes = append(batch.Changes, board.Change{Op: board.Insert, Element: el})
		batch.Select = append(batch.Select, el.ID)
	}
	if len(batch.Select) == 0 {
		return board.Batch{}, ErrNoResult
	}
	log.Info("elements combined",
		slog.Int("inputs", len(operands)),
		slog.Int("results", len(batch.Select)),
	)
	return batch, nil
}

// elementStyle picks the style the result inherits.
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
