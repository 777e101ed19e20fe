/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package board defines the host-side element contract the geometry core
// operates against, plus an in-memory reference implementation with
// transactional batch mutation, selection and snapshot undo/redo. The
// engines never mutate elements in place: they emit whole-path
// replacements through Batch.
package board

import (
	"fmt"

	"github.com/google/uuid"

	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/shape"
)

// ElementKind is a closed tagged union over what the geometry core can
// see on a board. Everything the engines cannot process is Unsupported
// with a named reason, so the UI can explain why an element was skipped.
type ElementKind uint8

const (
	VectorPath ElementKind = iota
	ParametricShape
	Unsupported
)

// UnsupportedKind names why an element cannot join geometry operations.
type UnsupportedKind string

const (
	UnsupportedImage      UnsupportedKind = "image"
	UnsupportedText       UnsupportedKind = "text"
	UnsupportedLine       UnsupportedKind = "line"
	UnsupportedArrow      UnsupportedKind = "arrow"
	UnsupportedVectorLine UnsupportedKind = "vector-line"
	UnsupportedFreehand   UnsupportedKind = "freehand"
	// unsupportedOpenPath is produced for pen paths that were never closed.
	unsupportedOpenPath UnsupportedKind = "open-path"
)

// UnsupportedError reports, with a distinct named reason, that an element
// cannot be converted to a polygon. Callers may fall back to whole-element
// treatment (e.g. deletion by the eraser).
type UnsupportedError struct {
	ID     string
	Reason UnsupportedKind
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("element %s: unsupported for geometry operations (%s)", e.ID, e.Reason)
}

// Element is one entry of the host's ordered collection. Exactly one of
// Path/Shape is meaningful depending on Kind; unsupported kinds carry only
// their host-provided bounds.
type Element struct {
	ID    string
	Kind  ElementKind
	Path  path.Path
	Shape shape.Shape
	Note  UnsupportedKind
	Box   geom.Rect
}

// NewID returns a fresh element identifier.
func NewID() string { return uuid.NewString() }

// NewPathElement wraps a path as a board element.
func NewPathElement(p path.Path) Element {
	return Element{ID: NewID(), Kind: VectorPath, Path: p}
}

// NewShapeElement wraps a parametric shape as a board element.
func NewShapeElement(s shape.Shape) Element {
	return Element{ID: NewID(), Kind: ParametricShape, Shape: s}
}

// NewUnsupportedElement records a host element the core cannot process.
func NewUnsupportedElement(kind UnsupportedKind, box geom.Rect) Element {
	return Element{ID: NewID(), Kind: Unsupported, Note: kind, Box: box}
}

// Clone deep-copies the element.
func (e Element) Clone() Element {
	c := e
	if e.Kind == VectorPath {
		c.Path = e.Path.Clone()
	}
	return c
}

// Bounds returns the element's bounding rect in canvas coordinates.
func (e Element) Bounds() geom.Rect {
	switch e.Kind {
	case VectorPath:
		return e.Path.Bounds()
	case ParametricShape:
		return e.Shape.Rect
	default:
		return e.Box
	}
}

// Hit reports whether p hits the element, for host hit-test dispatch.
func (e Element) Hit(p geom.Pt) bool {
	switch e.Kind {
	case VectorPath:
		return e.Path.Hit(p)
	case ParametricShape:
		return shape.Polygonize(e.Shape).Contains(p)
	default:
		return e.Box.Contains(p)
	}
}

// Polygonize converts the element into boolean/erase input. Open paths and
// unsupported kinds return an UnsupportedError naming the reason; they are
// never silently approximated.
func (e Element) Polygonize() (geom.Polygon, error) {
	switch e.Kind {
	case VectorPath:
		if !e.Path.Closed || len(e.Path.Anchors) < 3 {
			return nil, &UnsupportedError{ID: e.ID, Reason: unsupportedOpenPath}
		}
		return path.SampleToPolygon(e.Path.ToAbsolute(), true, path.SamplesPerCurvedSegment), nil
	case ParametricShape:
		return shape.Polygonize(e.Shape), nil
	default:
		return nil, &UnsupportedError{ID: e.ID, Reason: e.Note}
	}
}
