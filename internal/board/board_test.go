/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"errors"
	"testing"

	"gowhiteboard/internal/geom"
	"gowhiteboard/internal/path"
	"gowhiteboard/internal/shape"
)

func closedSquare(x, y, side float64) path.Path {
	abs := []path.Anchor{
		{Pt: geom.P(x, y)}, {Pt: geom.P(x+side, y)},
		{Pt: geom.P(x+side, y+side)}, {Pt: geom.P(x, y+side)},
	}
	return path.FromAbsolute(abs, true, path.Style{}, 0)
}

func TestApplyInsertReplaceDelete(t *testing.T) {
	b := New()
	el := NewPathElement(closedSquare(0, 0, 10))
	if err := b.Apply(Batch{Changes: []Change{{Op: Insert, Element: el}}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected 1 element")
	}

	repl := NewPathElement(closedSquare(5, 5, 20))
	if err := b.Apply(Batch{Changes: []Change{{Op: Replace, ID: el.ID, Element: repl}}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok := b.ByID(el.ID)
	if !ok {
		t.Fatalf("replace must keep the id")
	}
	if got.Path.Origin != geom.P(5, 5) {
		t.Fatalf("replacement did not land: %+v", got.Path.Origin)
	}

	if err := b.Apply(Batch{Changes: []Change{{Op: Delete, ID: el.ID}}}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if b.Len() != 0 {
		t.Fatalf("expected empty board")
	}
}

func TestApplyIsAtomic(t *testing.T) {
	b := New()
	el := NewPathElement(closedSquare(0, 0, 10))
	if err := b.Apply(Batch{Changes: []Change{{Op: Insert, Element: el}}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// second change is invalid; the first must not land either
	bad := Batch{Changes: []Change{
		{Op: Delete, ID: el.ID},
		{Op: Replace, ID: "nope", Element: el},
	}}
	if err := b.Apply(bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if b.Len() != 1 {
		t.Fatalf("failed batch must not change the board")
	}
}

func TestSelectionFollowsBatch(t *testing.T) {
	b := New()
	a := NewPathElement(closedSquare(0, 0, 10))
	c := NewPathElement(closedSquare(20, 0, 10))
	_ = b.Apply(Batch{Changes: []Change{{Op: Insert, Element: a}, {Op: Insert, Element: c}}, Select: []string{a.ID}})
	if sel := b.Selection(); len(sel) != 1 || sel[0] != a.ID {
		t.Fatalf("selection after batch: %v", sel)
	}
	// deleting a selected element drops it from the selection
	_ = b.Apply(Batch{Changes: []Change{{Op: Delete, ID: a.ID}}})
	if sel := b.Selection(); len(sel) != 0 {
		t.Fatalf("stale selection survived delete: %v", sel)
	}
	// explicit clear
	b.SetSelection(c.ID)
	_ = b.Apply(Batch{ClearSelection: true, Changes: []Change{{Op: Delete, ID: c.ID}}})
	if sel := b.Selection(); len(sel) != 0 {
		t.Fatalf("clear selection failed: %v", sel)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	b := New()
	el := NewPathElement(closedSquare(0, 0, 10))
	_ = b.Apply(Batch{Changes: []Change{{Op: Insert, Element: el}}})
	if !b.Undo() {
		t.Fatalf("undo must succeed")
	}
	if b.Len() != 0 {
		t.Fatalf("undo must remove the insert")
	}
	if !b.Redo() {
		t.Fatalf("redo must succeed")
	}
	if b.Len() != 1 {
		t.Fatalf("redo must restore the insert")
	}
	if b.Redo() {
		t.Fatalf("nothing further to redo")
	}
}

func TestPolygonizeDispatch(t *testing.T) {
	closed := NewPathElement(closedSquare(0, 0, 10))
	if pg, err := closed.Polygonize(); err != nil || len(pg) == 0 {
		t.Fatalf("closed path must polygonize: %v", err)
	}

	open := closedSquare(0, 0, 10)
	open.Closed = false
	if _, err := NewPathElement(open).Polygonize(); err == nil {
		t.Fatalf("open path must be unsupported")
	} else {
		var ue *UnsupportedError
		if !errors.As(err, &ue) || ue.Reason != "open-path" {
			t.Fatalf("expected named open-path reason, got %v", err)
		}
	}

	sh := NewShapeElement(shape.Shape{Kind: shape.Ellipse, Rect: geom.R(0, 0, 10, 10)})
	if _, err := sh.Polygonize(); err != nil {
		t.Fatalf("shape must polygonize: %v", err)
	}

	img := NewUnsupportedElement(UnsupportedImage, geom.R(0, 0, 5, 5))
	if _, err := img.Polygonize(); err == nil {
		t.Fatalf("image must be unsupported")
	} else {
		var ue *UnsupportedError
		if !errors.As(err, &ue) || ue.Reason != UnsupportedImage {
			t.Fatalf("expected image reason, got %v", err)
		}
	}
}
