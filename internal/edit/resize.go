/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package edit

import (
	"fmt"
	"math"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

// ResizeHandle identifies one of the 8 bounding-box handles.
type ResizeHandle uint8

const (
	North ResizeHandle = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// MinResize is the floor on either dimension of the resized rect.
const MinResize = 10

// ScalePath multiplies every relative anchor point and every present
// handle by (sx, sy) and moves the path to newOrigin. Handles scale
// exactly with their anchors, so no curve re-approximation is needed;
// this is a pure linear transform.
func ScalePath(p path.Path, sx, sy float64, newOrigin geom.Pt) path.Path {
	out := p.Clone()
	out.Origin = newOrigin
	for i := range out.Anchors {
		a := &out.Anchors[i]
		a.Pt = geom.Pt{X: a.Pt.X * sx, Y: a.Pt.Y * sy}
		if a.In != nil {
			*a.In = geom.Pt{X: a.In.X * sx, Y: a.In.Y * sy}
		}
		if a.Out != nil {
			*a.Out = geom.Pt{X: a.Out.X * sx, Y: a.Out.Y * sy}
		}
	}
	return out
}

// Resize applies a drag of delta on the given bounding-box handle of a
// path element and returns the whole-path replacement batch. uniform
// locks both axes to the same scale factor. Dimensions never drop below
// MinResize.
func Resize(el board.Element, h ResizeHandle, delta geom.Pt, uniform bool) (board.Batch, error) {
	if el.Kind != board.VectorPath {
		return board.Batch{}, fmt.Errorf("element %s is not a resizable path", el.ID)
	}
	old := el.Path.Bounds()
	if old.IsEmpty() {
		return board.Batch{}, fmt.Errorf("element %s has no extent to resize", el.ID)
	}
	newRect := dragRect(old, h, delta)
	if newRect.W < MinResize {
		newRect.W = MinResize
		if movesLeftEdge(h) {
			newRect.X = old.X + old.W - MinResize
		}
	}
	if newRect.H < MinResize {
		newRect.H = MinResize
		if movesTopEdge(h) {
			newRect.Y = old.Y + old.H - MinResize
		}
	}
	sx := newRect.W / old.W
	sy := newRect.H / old.H
	if uniform {
		s := sx
		switch h {
		case North, South:
			s = sy
		case East, West:
			s = sx
		default:
			s = math.Max(sx, sy)
		}
		sx, sy = s, s
		newRect.W = old.W * s
		newRect.H = old.H * s
		if movesLeftEdge(h) {
			newRect.X = old.X + old.W - newRect.W
		}
		if movesTopEdge(h) {
			newRect.Y = old.Y + old.H - newRect.H
		}
	}

	scaled := ScalePath(el.Path, sx, sy, newRect.Min())
	out := board.Element{ID: el.ID, Kind: board.VectorPath, Path: scaled}
	return board.Batch{
		Changes: []board.Change{{Op: board.Replace, ID: el.ID, Element: out}},
		Select:  []string{el.ID},
	}, nil
}

func movesLeftEdge(h ResizeHandle) bool {
	return h == West || h == NorthWest || h == SouthWest
}

func movesTopEdge(h ResizeHandle) bool {
	return h == North || h == NorthWest || h == NorthEast
}

// dragRect moves the edges owned by the handle by delta.
func dragRect(r geom.Rect, h ResizeHandle, d geom.Pt) geom.Rect {
	out := r
	switch h {
	case East, NorthEast, SouthEast:
		out.W += d.X
	case West, NorthWest, SouthWest:
		out.X += d.X
		out.W -= d.X
	}
	switch h {
	case South, SouthEast, SouthWest:
		out.H += d.Y
	case North, NorthEast, NorthWest:
		out.Y += d.Y
		out.H -= d.Y
	}
	return out
}
