/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package pen

import (
	"testing"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

func click(t *Tool, x, y float64) board.Batch {
	b := t.PointerDown(geom.P(x, y))
	t.PointerUp()
	return b
}

func TestClickPlacesAnchorsAndEnterCommitsOpen(t *testing.T) {
	tool := New(Settings{})
	brd := board.New()

	click(tool, 0, 0)
	click(tool, 50, 0)
	click(tool, 50, 50)
	if tool.State() != Creating || tool.AnchorCount() != 3 {
		t.Fatalf("expected creating with 3 anchors, got %v/%d", tool.State(), tool.AnchorCount())
	}

	batch := tool.KeyEnter()
	if err := brd.Apply(batch); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if brd.Len() != 1 {
		t.Fatalf("enter must insert exactly one path")
	}
	el := brd.Elements()[0]
	if el.Path.Closed {
		t.Fatalf("enter commits an open path")
	}
	if len(brd.Selection()) != 0 {
		t.Fatalf("open-path commit must clear the selection")
	}
	if tool.State() != Idle {
		t.Fatalf("tool must reset after commit")
	}
}

func TestClickOnFirstAnchorClosesWithThreeOrMore(t *testing.T) {
	tool := New(Settings{})
	brd := board.New()

	click(tool, 0, 0)
	click(tool, 50, 0)
	// 2 anchors: clicking the first anchor must NOT close, it places an
	// anchor snapped onto the first one instead
	b := click(tool, 2, 0)
	if !b.IsEmpty() || tool.State() == Idle {
		t.Fatalf("closing requires at least 3 anchors")
	}

	// now 3 anchors placed; move away and close on the first
	click(tool, 50, 50)
	batch := click(tool, 1, 1)
	if batch.IsEmpty() {
		t.Fatalf("click within hit radius of the first anchor must close")
	}
	if err := brd.Apply(batch); err != nil {
		t.Fatalf("apply: %v", err)
	}
	el := brd.Elements()[0]
	if !el.Path.Closed {
		t.Fatalf("commit must be closed")
	}
	if sel := brd.Selection(); len(sel) != 1 || sel[0] != el.ID {
		t.Fatalf("closed-path commit must select the new path, got %v", sel)
	}
}

func TestDiscardWithFewerThanTwoAnchors(t *testing.T) {
	tool := New(Settings{})
	brd := board.New()

	click(tool, 10, 10)
	if b := tool.KeyEnter(); !b.IsEmpty() {
		t.Fatalf("enter with one anchor must discard")
	}
	click(tool, 10, 10)
	if b := tool.Deactivate(); !b.IsEmpty() {
		t.Fatalf("tool switch with one anchor must discard")
	}
	if brd.Len() != 0 {
		t.Fatalf("element collection must stay unchanged")
	}
	if tool.State() != Idle {
		t.Fatalf("tool must be idle after discard")
	}
}

func TestDeactivateAutoCommitsOpenPath(t *testing.T) {
	tool := New(Settings{})
	brd := board.New()
	click(tool, 0, 0)
	click(tool, 40, 0)
	batch := tool.Deactivate()
	if batch.IsEmpty() {
		t.Fatalf("deactivation with 2 anchors must auto-commit")
	}
	_ = brd.Apply(batch)
	if brd.Len() != 1 || brd.Elements()[0].Path.Closed {
		t.Fatalf("auto-commit must insert one open path")
	}
}

func TestEscapeDiscardsUnconditionally(t *testing.T) {
	tool := New(Settings{})
	click(tool, 0, 0)
	click(tool, 40, 0)
	click(tool, 40, 40)
	tool.KeyEscape()
	if tool.State() != Idle || tool.AnchorCount() != 0 {
		t.Fatalf("escape must discard everything")
	}
}

func TestBackspaceRemovesLastAnchor(t *testing.T) {
	tool := New(Settings{})
	click(tool, 0, 0)
	click(tool, 40, 0)
	tool.KeyBackspace()
	if tool.AnchorCount() != 1 || tool.State() != Creating {
		t.Fatalf("backspace must drop the last anchor")
	}
	tool.KeyBackspace()
	if tool.State() != Idle {
		t.Fatalf("removing the last anchor must return to idle")
	}
}

func TestSnapLocksAxesIndependently(t *testing.T) {
	tool := New(Settings{})
	click(tool, 100, 100)
	// within 8 horizontally of the first anchor: x locks to 100
	click(tool, 105, 160)
	if got := toolAnchor(tool, 1).Pt; got.X != 100 || got.Y != 160 {
		t.Fatalf("x must snap, y must not: %+v", got)
	}
	if len(tool.Guides()) != 1 {
		t.Fatalf("expected one vertical guide, got %d", len(tool.Guides()))
	}
	// beyond 8 on both axes: no snap
	click(tool, 120, 180)
	if got := toolAnchor(tool, 2).Pt; got.X != 120 || got.Y != 180 {
		t.Fatalf("no snap expected: %+v", got)
	}
	// diagonal lock: both axes within threshold of different anchors
	click(tool, 103, 163)
	got := toolAnchor(tool, 3).Pt
	if got.X != 100 || got.Y != 160 {
		t.Fatalf("diagonal lock expected, got %+v", got)
	}
	if len(tool.Guides()) != 2 {
		t.Fatalf("expected two guides for the diagonal lock")
	}
}

func toolAnchor(t *Tool, i int) path.Anchor {
	o := t.Overlay()
	// markers are emitted in anchor order; recover the anchor position
	count := -1
	for _, m := range o.Markers {
		if m.Kind == 0 { // anchor marker
			count++
			if count == i {
				return path.Anchor{Pt: m.At}
			}
		}
	}
	return path.Anchor{}
}

func TestHandleDragCreatesSymmetricHandles(t *testing.T) {
	tool := New(Settings{DefaultAnchorType: path.Symmetric})
	tool.PointerDown(geom.P(10, 10))
	// below the minimum drag distance nothing happens
	tool.PointerMove(geom.P(11, 11))
	tool.PointerMove(geom.P(20, 10))
	tool.PointerUp()

	o := tool.Overlay()
	var in, out *geom.Pt
	for _, m := range o.Markers {
		if m.Kind == 1 { // handle marker
			p := m.At
			if m.Incoming {
				in = &p
			} else {
				out = &p
			}
		}
	}
	if in == nil || out == nil {
		t.Fatalf("drag must create both handles")
	}
	if *out != geom.P(20, 10) {
		t.Fatalf("out handle follows the pointer, got %+v", *out)
	}
	if *in != geom.P(0, 10) {
		t.Fatalf("in handle is the mirror through the anchor, got %+v", *in)
	}
}

func TestCornerAnchorNeverGrowsHandles(t *testing.T) {
	tool := New(Settings{DefaultAnchorType: path.Corner})
	tool.PointerDown(geom.P(10, 10))
	tool.PointerMove(geom.P(40, 10))
	tool.PointerUp()
	for _, m := range tool.Overlay().Markers {
		if m.Kind == 1 {
			t.Fatalf("corner anchors must not receive handles while dragging")
		}
	}
}
