/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package edit provides post-creation editing of a path's anchors and
// handles, and the bounding-box resize transform. Edits accumulate on a
// working copy in absolute coordinates and land as one whole-path
// replacement, so repeated drags cannot drift the stored coordinates.
package edit

import (
	"fmt"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/render"
)

const (
	// AnchorHitRadius is the pointer pick distance for anchors.
	AnchorHitRadius = 10
	// HandleHitRadius is the pick distance for handles; handles are
	// checked before anchors since they sit nearer the anchor at small
	// path scale.
	HandleHitRadius = 10
)

// target identifies what a pointer-down grabbed.
type targetKind uint8

const (
	targetNone targetKind = iota
	targetAnchor
	targetHandle
)

type target struct {
	kind     targetKind
	index    int
	incoming bool
}

// Editor edits one selected path element. Create one per drag session or
// keep it alive while the selection is stable.
type Editor struct {
	id   string
	p    path.Path
	abs  []path.Anchor
	grab target
}

// NewEditor starts editing the given element, which must be a vector path.
func NewEditor(el board.Element) (*Editor, error) {
	if el.Kind != board.VectorPath {
		return nil, fmt.Errorf("element %s is not an editable path", el.ID)
	}
	p := el.Path.Clone()
	return &Editor{id: el.ID, p: p, abs: p.ToAbsolute()}, nil
}

// Overlay returns the anchor/handle markers for the current working state.
func (e *Editor) Overlay() render.Overlay { return render.EditingOverlay(e.abs) }

// PointerDown tries to grab a handle first, then an anchor. It reports
// whether a drag started.
func (e *Editor) PointerDown(p geom.Pt) bool {
	e.grab = target{}
	// handles take precedence
	for i, a := range e.abs {
		if a.In != nil && geom.Dist(p, *a.In) <= HandleHitRadius {
			e.grab = target{kind: targetHandle, index: i, incoming: true}
			return true
		}
		if a.Out != nil && geom.Dist(p, *a.Out) <= HandleHitRadius {
			e.grab = target{kind: targetHandle, index: i}
			return true
		}
	}
	for i, a := range e.abs {
		if geom.Dist(p, a.Pt) <= AnchorHitRadius {
			e.grab = target{kind: targetAnchor, index: i}
			return true
		}
	}
	return false
}

// PointerMove applies the drag step to the working copy.
func (e *Editor) PointerMove(p geom.Pt) {
	if !p.IsFinite() {
		return
	}
	switch e.grab.kind {
	case targetAnchor:
		a := e.abs[e.grab.index]
		e.abs[e.grab.index] = a.Translate(p.Sub(a.Pt))
	case targetHandle:
		e.dragHandle(p)
	}
}

// dragHandle moves the grabbed handle and mirrors the opposite one
// according to the anchor type.
func (e *Editor) dragHandle(p geom.Pt) {
	a := &e.abs[e.grab.index]
	dragged, opposite := &a.Out, &a.In
	if e.grab.incoming {
		dragged, opposite = &a.In, &a.Out
	}
	moved := p
	*dragged = &moved
	switch a.Type {
	case path.Corner:
		// independent handles; nothing else moves
	case path.Smooth:
		if *opposite != nil {
			length := geom.Dist(a.Pt, **opposite)
			opp := geom.ScaleTo(a.Pt, geom.Mirror(p, a.Pt), length)
			*opposite = &opp
		}
	case path.Symmetric:
		opp := geom.Mirror(p, a.Pt)
		*opposite = &opp
	}
}

// PointerUp ends the drag and returns the whole-path replacement batch.
// The path is renormalized so its origin is the new bounding-box top-left.
func (e *Editor) PointerUp() board.Batch {
	e.grab = target{}
	return e.replacementBatch()
}

// DoubleClick cycles the type of the anchor under p
// (corner -> smooth -> symmetric -> corner). Switching to corner discards
// both handles; the other switches preserve existing handles. Handles are
// not targets for double-clicks. Returns an empty batch when no anchor
// was hit.
func (e *Editor) DoubleClick(p geom.Pt) board.Batch {
	for i, a := range e.abs {
		if geom.Dist(p, a.Pt) > AnchorHitRadius {
			continue
		}
		next := a.Type.Next()
		e.abs[i].Type = next
		if next == path.Corner {
			e.abs[i].In = nil
			e.abs[i].Out = nil
		}
		return e.replacementBatch()
	}
	return board.Batch{}
}

func (e *Editor) replacementBatch() board.Batch {
	np := path.FromAbsolute(e.abs, e.p.Closed, e.p.Style, e.p.CornerRadius)
	e.p = np
	e.abs = np.ToAbsolute()
	el := board.Element{ID: e.id, Kind: board.VectorPath, Path: np}
	return board.Batch{
		Changes: []board.Change{{Op: board.Replace, ID: e.id, Element: el}},
		Select:  []string{e.id},
	}
}
