/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render builds renderable descriptions for the host: the path
// draw commands themselves and the editing overlay (anchor and handle
// markers, handle connectors, alignment guides, live authoring preview).
// Nothing here draws; the host owns all rendering.
package render

import (
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

// MarkerKind distinguishes overlay markers.
type MarkerKind uint8

const (
	AnchorMarker MarkerKind = iota
	HandleMarker
)

// Marker is one overlay dot. Index identifies the anchor it belongs to;
// for handle markers Incoming tells which side.
type Marker struct {
	Kind     MarkerKind
	At       geom.Pt
	Index    int
	Type     path.AnchorType
	Incoming bool
}

// Line is a plain overlay line (handle connectors, live preview tail).
type Line struct {
	From, To geom.Pt
	Dashed   bool
}

// Orientation of a guide line.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// Guide is an alignment guide produced while snapping: a vertical guide
// at x=Position or a horizontal one at y=Position, with extents for
// drawing.
type Guide struct {
	Orientation Orientation
	Position    float64
	From, To    geom.Pt
}

// VerticalGuide builds a guide through x spanning the two points' rows.
func VerticalGuide(x float64, a, b geom.Pt) Guide {
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Guide{Orientation: Vertical, Position: x, From: geom.P(x, minY), To: geom.P(x, maxY)}
}

// HorizontalGuide builds a guide through y spanning the two points' columns.
func HorizontalGuide(y float64, a, b geom.Pt) Guide {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	return Guide{Orientation: Horizontal, Position: y, From: geom.P(minX, y), To: geom.P(maxX, y)}
}

// Overlay is the full editing-overlay description for one path or one
// in-progress authoring session.
type Overlay struct {
	Markers    []Marker
	Connectors []Line
	Guides     []Guide
	Preview    []path.Cmd
	Tail       *Line // dashed line from the last anchor to the live pointer
}

// PathDescription returns the renderable draw commands for a path.
func PathDescription(p path.Path) []path.Cmd {
	return path.DrawCommands(p.ToAbsolute(), p.Closed, p.CornerRadius)
}

// EditingOverlay describes the anchor/handle markers and connector lines
// for a selected path being edited. Anchors are absolute.
func EditingOverlay(abs []path.Anchor) Overlay {
	var o Overlay
	for i, a := range abs {
		if !a.Pt.IsFinite() {
			continue
		}
		o.Markers = append(o.Markers, Marker{Kind: AnchorMarker, At: a.Pt, Index: i, Type: a.Type})
		if a.In != nil && a.In.IsFinite() {
			o.Markers = append(o.Markers, Marker{Kind: HandleMarker, At: *a.In, Index: i, Type: a.Type, Incoming: true})
			o.Connectors = append(o.Connectors, Line{From: a.Pt, To: *a.In})
		}
		if a.Out != nil && a.Out.IsFinite() {
			o.Markers = append(o.Markers, Marker{Kind: HandleMarker, At: *a.Out, Index: i, Type: a.Type})
			o.Connectors = append(o.Connectors, Line{From: a.Pt, To: *a.Out})
		}
	}
	return o
}

// AuthoringOverlay describes the live preview during path creation: the
// committed segments, a dashed tail to the live pointer, markers for the
// placed anchors and any active alignment guides.
func AuthoringOverlay(abs []path.Anchor, live geom.Pt, guides []Guide) Overlay {
	o := EditingOverlay(abs)
	o.Guides = guides
	if len(abs) >= 2 {
		o.Preview = path.DrawCommands(abs, false, 0)
	}
	if len(abs) > 0 && live.IsFinite() {
		o.Tail = &Line{From: abs[len(abs)-1].Pt, To: live, Dashed: true}
	}
	return o
}
