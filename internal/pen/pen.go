/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package pen implements the interactive authoring state machine for new
// bezier paths: anchor placement, handle dragging, snapping, closing and
// cancellation. One Tool instance belongs to exactly one canvas; all state
// lives on the struct so independent canvases never share anything.
package pen

import (
	"log/slog"

	applog "gowhiteboard/internal/log"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/render"
)

// State is the authoring machine state.
type State uint8

const (
	Idle State = iota
	Creating
	DraggingHandle
)

func (s State) String() string {
	switch s {
	case Creating:
		return "creating"
	case DraggingHandle:
		return "dragging-handle"
	default:
		return "idle"
	}
}

const (
	// SnapThreshold is the per-axis snapping distance in canvas units.
	SnapThreshold = 8
	// AnchorHitRadius closes the path when clicking the first anchor.
	AnchorHitRadius = 10
	// MinHandleDrag is the drag distance before handles are created.
	MinHandleDrag = 3
)

// Settings are the tool defaults applied to newly committed paths.
type Settings struct {
	Style             path.Style
	DefaultAnchorType path.AnchorType
	CornerRadius      float64
}

// Tool is the per-canvas authoring state machine. Pointer and key events
// mutate it; commits come back as board batches so all host mutation sits
// at the edge of the operation.
type Tool struct {
	settings Settings
	state    State
	anchors  []path.Anchor // absolute, in placement order
	last     geom.Pt
	guides   []render.Guide
	log      *slog.Logger
}

// New creates an idle tool with the given defaults.
func New(settings Settings) *Tool {
	return &Tool{settings: settings, log: applog.WithComponent("pen")}
}

func (t *Tool) State() State { return t.state }

// AnchorCount returns the number of anchors placed so far.
func (t *Tool) AnchorCount() int { return len(t.anchors) }

// Guides returns the alignment guides from the latest snap evaluation.
func (t *Tool) Guides() []render.Guide { return t.guides }

// Overlay returns the live authoring preview for the host to draw.
func (t *Tool) Overlay() render.Overlay {
	return render.AuthoringOverlay(t.anchors, t.last, t.guides)
}

// PointerDown places a new anchor or, when the pointer lands on the first
// anchor of a path with at least 3 anchors, commits the path closed. The
// returned batch is empty unless a commit happened.
func (t *Tool) PointerDown(p geom.Pt) board.Batch {
	if !p.IsFinite() {
		return board.Batch{}
	}
	if t.state == Creating || t.state == DraggingHandle {
		if len(t.anchors) >= 3 && geom.Dist(p, t.anchors[0].Pt) <= AnchorHitRadius {
			return t.commit(true)
		}
	}
	snapped, guides := t.snap(p)
	t.guides = guides
	t.last = snapped
	t.anchors = append(t.anchors, path.Anchor{Pt: snapped, Type: t.settings.DefaultAnchorType})
	t.state = DraggingHandle
	return board.Batch{}
}

// PointerMove updates the drag or the live snap preview.
func (t *Tool) PointerMove(p geom.Pt) {
	if !p.IsFinite() {
		return
	}
	switch t.state {
	case DraggingHandle:
		a := &t.anchors[len(t.anchors)-1]
		if geom.Dist(p, a.Pt) <= MinHandleDrag {
			return
		}
		// corner anchors never grow handles while dragging out
		if a.Type == path.Corner {
			return
		}
		out := p
		in := geom.Mirror(p, a.Pt)
		a.Out = &out
		a.In = &in
		t.last = p
	case Creating:
		snapped, guides := t.snap(p)
		t.last = snapped
		t.guides = guides
	}
}

// PointerUp ends a handle drag; authoring continues.
func (t *Tool) PointerUp() {
	if t.state == DraggingHandle {
		t.state = Creating
	}
}

// KeyEnter commits an open path when at least 2 anchors exist, otherwise
// the in-progress path is discarded silently (an accidental click is not
// worth interrupting the user over).
func (t *Tool) KeyEnter() board.Batch {
	if len(t.anchors) >= 2 {
		return t.commit(false)
	}
	t.reset()
	return board.Batch{}
}

// KeyEscape discards unconditionally.
func (t *Tool) KeyEscape() {
	t.reset()
}

// KeyBackspace removes the last placed anchor; removing the only anchor
// returns the tool to idle.
func (t *Tool) KeyBackspace() {
	if len(t.anchors) == 0 {
		return
	}
	t.anchors = t.anchors[:len(t.anchors)-1]
	if len(t.anchors) == 0 {
		t.reset()
		return
	}
	t.state = Creating
	t.guides = nil
}

// Deactivate auto-commits an open path with at least 2 anchors so tool
// switching never leaves a dangling partial path, and discards otherwise.
func (t *Tool) Deactivate() board.Batch {
	if len(t.anchors) >= 2 {
		return t.commit(false)
	}
	t.reset()
	return board.Batch{}
}

// commit builds the insert batch for the finished path and resets the
// tool. A closed-path commit selects the new path; an open-path commit
// clears the selection so the next stroke can start immediately.
func (t *Tool) commit(closed bool) board.Batch {
	anchors := t.anchors
	t.reset()
	if len(anchors) < 2 {
		return board.Batch{}
	}
	p := path.FromAbsolute(anchors, closed, t.settings.Style, t.settings.CornerRadius)
	el := board.NewPathElement(p)
	applog.WithOperation(t.log, "commit").Info("path committed",
		slog.Int("anchors", len(anchors)),
		slog.Bool("closed", closed),
	)
	b := board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}}
	if closed {
		b.Select = []string{el.ID}
	} else {
		b.ClearSelection = true
	}
	return b
}

func (t *Tool) reset() {
	t.state = Idle
	t.anchors = nil
	t.guides = nil
	t.last = geom.Pt{}
}

// snap locks each axis of p independently to the nearest placed anchor
// coordinate within SnapThreshold. Both axes may lock at once (a diagonal
// lock). The guides name the reference anchors for rendering.
func (t *Tool) snap(p geom.Pt) (geom.Pt, []render.Guide) {
	var guides []render.Guide
	bestDX, bestDY := SnapThreshold + 1.0, SnapThreshold + 1.0
	var refX, refY path.Anchor
	foundX, foundY := false, false
	for _, a := range t.anchors {
		if dx := abs(p.X - a.Pt.X); dx < bestDX {
			bestDX, refX, foundX = dx, a, true
		}
		if dy := abs(p.Y - a.Pt.Y); dy < bestDY {
			bestDY, refY, foundY = dy, a, true
		}
	}
	out := p
	if foundX && bestDX <= SnapThreshold {
		out.X = refX.Pt.X
		guides = append(guides, render.VerticalGuide(out.X, refX.Pt, out))
	}
	if foundY && bestDY <= SnapThreshold {
		out.Y = refY.Pt.Y
		guides = append(guides, render.HorizontalGuide(out.Y, refY.Pt, out))
	}
	return out, guides
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
