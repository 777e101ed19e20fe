/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package path holds the anchor/handle data model of user-drawn bezier
// paths and the conversions other components build on: relative/absolute
// coordinate frames, bounding boxes, draw-command generation, distance and
// polygon sampling.
//
// Anchors are stored relative to the path's Origin (its bounding-box
// top-left) so that moving a whole path only updates the origin. Every
// function documents which frame it expects.
package path

import (
	"gowhiteboard/internal/geom"
)

// AnchorType governs how an anchor's two handles relate to each other.
type AnchorType uint8

const (
	// Corner anchors have independent handles; without handles the
	// adjacent segments are straight lines.
	Corner AnchorType = iota
	// Smooth anchors keep both handles collinear through the anchor;
	// lengths may differ.
	Smooth
	// Symmetric anchors keep handles collinear and equal length.
	Symmetric
)

func (t AnchorType) String() string {
	switch t {
	case Smooth:
		return "smooth"
	case Symmetric:
		return "symmetric"
	default:
		return "corner"
	}
}

// Next cycles corner -> smooth -> symmetric -> corner.
func (t AnchorType) Next() AnchorType {
	switch t {
	case Corner:
		return Smooth
	case Smooth:
		return Symmetric
	default:
		return Corner
	}
}

// ParseAnchorType maps a settings string to an AnchorType; unknown values
// fall back to corner.
func ParseAnchorType(s string) AnchorType {
	switch s {
	case "smooth":
		return Smooth
	case "symmetric":
		return Symmetric
	default:
		return Corner
	}
}

// Anchor is a point on a path with optional inbound and outbound handles.
// The coordinate frame (relative or absolute) is determined by context.
type Anchor struct {
	Pt   geom.Pt
	Type AnchorType
	In   *geom.Pt
	Out  *geom.Pt
}

// Clone deep-copies the anchor including its handles.
func (a Anchor) Clone() Anchor {
	c := Anchor{Pt: a.Pt, Type: a.Type}
	if a.In != nil {
		in := *a.In
		c.In = &in
	}
	if a.Out != nil {
		out := *a.Out
		c.Out = &out
	}
	return c
}

// Translate moves the anchor and both handles by d.
func (a Anchor) Translate(d geom.Pt) Anchor {
	c := a.Clone()
	c.Pt = c.Pt.Add(d)
	if c.In != nil {
		*c.In = c.In.Add(d)
	}
	if c.Out != nil {
		*c.Out = c.Out.Add(d)
	}
	return c
}

// LineStyle is the stroke dash style.
type LineStyle uint8

const (
	Solid LineStyle = iota
	Dashed
	Dotted
)

func (s LineStyle) String() string {
	switch s {
	case Dashed:
		return "dashed"
	case Dotted:
		return "dotted"
	default:
		return "solid"
	}
}

// Style carries the stroke/fill attributes a path inherits from the tool
// settings at creation time. Colors are opaque host values.
type Style struct {
	StrokeColor string
	StrokeWidth float64
	StrokeStyle LineStyle
	FillColor   string
}

// Path is an ordered anchor sequence with a closed flag. Anchors are in
// relative coordinates (offset from Origin). A path with fewer than 2
// anchors has no visible geometry; a closed path with at least 3 anchors
// defines a fillable region.
type Path struct {
	Origin       geom.Pt
	Anchors      []Anchor
	Closed       bool
	Style        Style
	CornerRadius float64 // 0-100, relative to the shorter adjacent edge
}

// Clone deep-copies the path.
func (p Path) Clone() Path {
	c := p
	c.Anchors = cloneAnchors(p.Anchors)
	return c
}

func cloneAnchors(as []Anchor) []Anchor {
	out := make([]Anchor, len(as))
	for i, a := range as {
		out[i] = a.Clone()
	}
	return out
}

// ToAbsolute converts the path's relative anchors into absolute canvas
// coordinates.
func (p Path) ToAbsolute() []Anchor {
	out := make([]Anchor, len(p.Anchors))
	for i, a := range p.Anchors {
		out[i] = a.Translate(p.Origin)
	}
	return out
}

// ToRelative re-expresses absolute anchors relative to origin. It is the
// exact inverse of ToAbsolute for the same origin.
func ToRelative(abs []Anchor, origin geom.Pt) []Anchor {
	out := make([]Anchor, len(abs))
	neg := geom.Pt{X: -origin.X, Y: -origin.Y}
	for i, a := range abs {
		out[i] = a.Translate(neg)
	}
	return out
}

// BoundingBox returns the bounds over every anchor point and every present
// handle, padded by pad on all sides. Anchors are absolute. Non-finite
// points are skipped; an empty list yields a zero-size box.
func BoundingBox(abs []Anchor, pad float64) geom.Rect {
	pts := make([]geom.Pt, 0, len(abs)*3)
	for _, a := range abs {
		pts = append(pts, a.Pt)
		if a.In != nil {
			pts = append(pts, *a.In)
		}
		if a.Out != nil {
			pts = append(pts, *a.Out)
		}
	}
	r := geom.BoundsOf(pts)
	if pad != 0 && !(r == geom.Rect{}) {
		r = r.Pad(pad)
	}
	return r
}

// FromAbsolute builds a path from absolute anchors: the origin becomes the
// bounding-box top-left and anchors are stored relative to it. This is the
// single constructor used for whole-path replacements, so repeated edits
// cannot accumulate coordinate drift.
func FromAbsolute(abs []Anchor, closed bool, style Style, cornerRadius float64) Path {
	bb := BoundingBox(abs, 0)
	return Path{
		Origin:       bb.Min(),
		Anchors:      ToRelative(abs, bb.Min()),
		Closed:       closed,
		Style:        style,
		CornerRadius: cornerRadius,
	}
}

// Bounds returns the absolute bounding box of the path.
func (p Path) Bounds() geom.Rect { return BoundingBox(p.ToAbsolute(), 0) }

// finiteAnchors filters out anchors whose point is not finite. Handles
// that are non-finite are dropped individually. Malformed data degrades
// gracefully instead of crashing the editor.
func finiteAnchors(abs []Anchor) []Anchor {
	out := make([]Anchor, 0, len(abs))
	for _, a := range abs {
		if !a.Pt.IsFinite() {
			continue
		}
		c := a.Clone()
		if c.In != nil && !c.In.IsFinite() {
			c.In = nil
		}
		if c.Out != nil && !c.Out.IsFinite() {
			c.Out = nil
		}
		out = append(out, c)
	}
	return out
}
