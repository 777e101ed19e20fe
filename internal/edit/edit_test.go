/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package edit

import (
	"math"
	"testing"

	"gowhiteboard/internal/board"
	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
)

func pathElement(abs []path.Anchor, closed bool) board.Element {
	return board.NewPathElement(path.FromAbsolute(abs, closed, path.Style{}, 0))
}

func appliedAnchors(t *testing.T, brd *board.Board, b board.Batch) []path.Anchor {
	t.Helper()
	if err := brd.Apply(b); err != nil {
		t.Fatalf("apply: %v", err)
	}
	els := brd.Elements()
	if len(els) != 1 {
		t.Fatalf("expected one element, got %d", len(els))
	}
	return els[0].Path.ToAbsolute()
}

func handlePt(in, out geom.Pt) (i, o *geom.Pt) { return &in, &out }

func TestHandleGrabWinsOverAnchor(t *testing.T) {
	out := geom.P(5, 0)
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner, Out: &out},
		{Pt: geom.P(100, 0), Type: path.Corner},
	}, false)
	brd := board.New()
	if err := brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	ed, err := NewEditor(el)
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	// (5,0) is within pick range of both the first anchor and its out
	// handle; the handle must win
	if !ed.PointerDown(geom.P(5, 0)) {
		t.Fatalf("pointer down must grab something")
	}
	ed.PointerMove(geom.P(30, 0))
	abs := appliedAnchors(t, brd, ed.PointerUp())
	if abs[0].Pt != geom.P(0, 0) {
		t.Fatalf("anchor must not move on a handle drag, got %+v", abs[0].Pt)
	}
	if abs[0].Out == nil || *abs[0].Out != geom.P(30, 0) {
		t.Fatalf("out handle must follow the pointer, got %+v", abs[0].Out)
	}
}

func TestAnchorDragIsRigid(t *testing.T) {
	in, out := handlePt(geom.P(30, 40), geom.P(70, 60))
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(50, 50), Type: path.Smooth, In: in, Out: out},
		{Pt: geom.P(100, 0), Type: path.Corner},
	}, false)
	brd := board.New()
	_ = brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}})

	ed, _ := NewEditor(el)
	if !ed.PointerDown(geom.P(50, 50)) {
		t.Fatalf("anchor grab failed")
	}
	ed.PointerMove(geom.P(60, 70))
	abs := appliedAnchors(t, brd, ed.PointerUp())
	a := abs[1]
	if a.Pt != geom.P(60, 70) {
		t.Fatalf("anchor must move to the pointer, got %+v", a.Pt)
	}
	// handles translate with the anchor, curvature is untouched
	if *a.In != geom.P(40, 60) || *a.Out != geom.P(80, 80) {
		t.Fatalf("handles must move rigidly with the anchor, got %+v / %+v", *a.In, *a.Out)
	}
	if abs[0].Pt != geom.P(0, 0) || abs[2].Pt != geom.P(100, 0) {
		t.Fatalf("other anchors must stay put")
	}
}

func TestSmoothDragKeepsOppositeLength(t *testing.T) {
	in, out := handlePt(geom.P(30, 50), geom.P(70, 50))
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(50, 50), Type: path.Smooth, In: in, Out: out},
		{Pt: geom.P(100, 100), Type: path.Corner},
	}, false)
	brd := board.New()
	_ = brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}})

	ed, _ := NewEditor(el)
	if !ed.PointerDown(geom.P(70, 50)) {
		t.Fatalf("out handle grab failed")
	}
	ed.PointerMove(geom.P(50, 80))
	abs := appliedAnchors(t, brd, ed.PointerUp())
	a := abs[1]
	if *a.Out != geom.P(50, 80) {
		t.Fatalf("dragged handle must follow the pointer, got %+v", *a.Out)
	}
	// in handle rotates to stay collinear but keeps its own length 20
	want := geom.P(50, 30)
	if math.Abs(a.In.X-want.X) > 1e-9 || math.Abs(a.In.Y-want.Y) > 1e-9 {
		t.Fatalf("smooth opposite handle: want %+v, got %+v", want, *a.In)
	}
}

func TestSymmetricDragMirrorsOpposite(t *testing.T) {
	in, out := handlePt(geom.P(30, 50), geom.P(70, 50))
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(50, 50), Type: path.Symmetric, In: in, Out: out},
		{Pt: geom.P(100, 100), Type: path.Corner},
	}, false)
	brd := board.New()
	_ = brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}})

	ed, _ := NewEditor(el)
	ed.PointerDown(geom.P(30, 50))
	ed.PointerMove(geom.P(20, 30))
	abs := appliedAnchors(t, brd, ed.PointerUp())
	a := abs[1]
	if *a.In != geom.P(20, 30) {
		t.Fatalf("dragged handle must follow the pointer, got %+v", *a.In)
	}
	if *a.Out != geom.P(80, 70) {
		t.Fatalf("symmetric opposite must be the exact mirror, got %+v", *a.Out)
	}
}

func TestCornerDragLeavesOppositeAlone(t *testing.T) {
	in, out := handlePt(geom.P(30, 50), geom.P(70, 50))
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(50, 50), Type: path.Corner, In: in, Out: out},
		{Pt: geom.P(100, 100), Type: path.Corner},
	}, false)
	brd := board.New()
	_ = brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}})

	ed, _ := NewEditor(el)
	ed.PointerDown(geom.P(70, 50))
	ed.PointerMove(geom.P(90, 90))
	abs := appliedAnchors(t, brd, ed.PointerUp())
	a := abs[1]
	if *a.Out != geom.P(90, 90) {
		t.Fatalf("dragged handle must follow the pointer, got %+v", *a.Out)
	}
	if *a.In != geom.P(30, 50) {
		t.Fatalf("corner opposite handle must not move, got %+v", *a.In)
	}
}

func TestDoubleClickCyclesTypeAndCornerDropsHandles(t *testing.T) {
	in, out := handlePt(geom.P(30, 50), geom.P(70, 50))
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(50, 50), Type: path.Smooth, In: in, Out: out},
		{Pt: geom.P(100, 100), Type: path.Corner},
	}, false)
	brd := board.New()
	_ = brd.Apply(board.Batch{Changes: []board.Change{{Op: board.Insert, Element: el}}})

	ed, _ := NewEditor(el)
	if b := ed.DoubleClick(geom.P(200, 200)); !b.IsEmpty() {
		t.Fatalf("double-click off any anchor must do nothing")
	}

	abs := appliedAnchors(t, brd, ed.DoubleClick(geom.P(50, 50)))
	if abs[1].Type != path.Symmetric {
		t.Fatalf("smooth must cycle to symmetric, got %v", abs[1].Type)
	}
	if abs[1].In == nil || abs[1].Out == nil {
		t.Fatalf("cycling to symmetric must keep the handles")
	}

	abs = appliedAnchors(t, brd, ed.DoubleClick(geom.P(50, 50)))
	if abs[1].Type != path.Corner {
		t.Fatalf("symmetric must cycle to corner, got %v", abs[1].Type)
	}
	if abs[1].In != nil || abs[1].Out != nil {
		t.Fatalf("cycling to corner must discard both handles")
	}
}

func TestResizeRoundTripRestoresCoordinates(t *testing.T) {
	in, out := handlePt(geom.P(70, -30), geom.P(130, 30))
	orig := []path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(100, 0), Type: path.Symmetric, In: in, Out: out},
		{Pt: geom.P(100, 80), Type: path.Corner},
	}
	el := pathElement(orig, true)
	w := el.Path.Bounds().W

	// double the width, then halve it again from the same handle
	b1, err := Resize(el, East, geom.P(w, 0), false)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	grown := b1.Changes[0].Element
	if got := grown.Path.Bounds().W; got != 2*w {
		t.Fatalf("width must double, got %v", got)
	}
	b2, err := Resize(grown, East, geom.P(-w, 0), false)
	if err != nil {
		t.Fatalf("resize back: %v", err)
	}
	back := b2.Changes[0].Element.Path.ToAbsolute()
	for i, a := range orig {
		if back[i].Pt != a.Pt {
			t.Fatalf("anchor %d: want %+v, got %+v", i, a.Pt, back[i].Pt)
		}
		if a.In != nil && *back[i].In != *a.In {
			t.Fatalf("anchor %d in handle: want %+v, got %+v", i, *a.In, *back[i].In)
		}
		if a.Out != nil && *back[i].Out != *a.Out {
			t.Fatalf("anchor %d out handle: want %+v, got %+v", i, *a.Out, *back[i].Out)
		}
	}
}

func TestResizeClampsToMinimumSize(t *testing.T) {
	el := pathElement([]path.Anchor{
		{Pt: geom.P(100, 100), Type: path.Corner},
		{Pt: geom.P(120, 100), Type: path.Corner},
		{Pt: geom.P(120, 140), Type: path.Corner},
	}, true)

	// dragging the west edge far past the east edge must clamp, not flip
	b, err := Resize(el, West, geom.P(50, 0), false)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	r := b.Changes[0].Element.Path.Bounds()
	if r.W != MinResize {
		t.Fatalf("width must clamp to %d, got %v", MinResize, r.W)
	}
	if r.X != 110 {
		t.Fatalf("east edge must stay fixed, got x=%v", r.X)
	}
	if r.H != 40 {
		t.Fatalf("height must be untouched, got %v", r.H)
	}
}

func TestResizeUniformLocksAspect(t *testing.T) {
	el := pathElement([]path.Anchor{
		{Pt: geom.P(0, 0), Type: path.Corner},
		{Pt: geom.P(100, 0), Type: path.Corner},
		{Pt: geom.P(100, 50), Type: path.Corner},
		{Pt: geom.P(0, 50), Type: path.Corner},
	}, true)

	b, err := Resize(el, SouthEast, geom.P(100, 0), true)
	if err != nil {
		t.Fatalf("resize: %v", err)
	}
	r := b.Changes[0].Element.Path.Bounds()
	if r.W != 200 || r.H != 100 {
		t.Fatalf("uniform resize must scale both axes by 2, got %vx%v", r.W, r.H)
	}
	if r.X != 0 || r.Y != 0 {
		t.Fatalf("north-west corner must stay anchored, got (%v,%v)", r.X, r.Y)
	}
}

func TestEditorRejectsNonPathElements(t *testing.T) {
	el := board.NewUnsupportedElement(board.UnsupportedImage, geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	if _, err := NewEditor(el); err == nil {
		t.Fatalf("unsupported elements must not be editable")
	}
	if _, err := Resize(el, East, geom.P(10, 0), false); err == nil {
		t.Fatalf("unsupported elements must not be resizable")
	}
}
