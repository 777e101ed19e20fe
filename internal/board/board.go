/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

import (
	"fmt"
	"sync"
)

// ChangeOp is a single mutation kind within a batch.
type ChangeOp uint8

const (
	Insert ChangeOp = iota
	Replace
	Delete
)

// Change is one mutation. Element is required for Insert and Replace;
// Delete needs only the ID.
type Change struct {
	Op      ChangeOp
	ID      string
	Element Element
}

// Batch is an atomic set of mutations plus the selection to establish
// afterwards. A consumer observing the board never sees a batch half
// applied. ClearSelection empties the selection even when Select is nil.
type Batch struct {
	Changes        []Change
	Select         []string
	ClearSelection bool
}

// IsEmpty reports whether applying the batch would change nothing.
func (b Batch) IsEmpty() bool {
	return len(b.Changes) == 0 && len(b.Select) == 0 && !b.ClearSelection
}

// Board is the in-memory reference implementation of the host element
// collection. Safe for concurrent use; each canvas owns one Board.
type Board struct {
	mu        sync.Mutex
	elems     []Element
	selection []string
	history   *history
}

// New creates an empty board with default history caps.
func New() *Board {
	return &Board{history: newHistory(historyConfig{})}
}

// NewWithHistoryDepth creates an empty board retaining at most depth undo
// snapshots. Non-positive depth selects the default.
func NewWithHistoryDepth(depth int) *Board {
	return &Board{history: newHistory(historyConfig{maxDepth: depth})}
}

// Elements returns an ordered snapshot copy of the collection.
func (b *Board) Elements() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	return cloneElements(b.elems)
}

// Len returns the number of elements.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.elems)
}

// ByID returns a copy of the element with the given id.
func (b *Board) ByID(id string) (Element, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, e := range b.elems {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return Element{}, false
}

// Selection returns the ordered ids of the active selection.
func (b *Board) Selection() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.selection...)
}

// SetSelection replaces the active selection. Unknown ids are dropped.
func (b *Board) SetSelection(ids ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = b.filterKnown(ids)
}

// SelectedElements resolves the selection to element copies in order.
func (b *Board) SelectedElements() []Element {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Element, 0, len(b.selection))
	for _, id := range b.selection {
		for _, e := range b.elems {
			if e.ID == id {
				out = append(out, e.Clone())
				break
			}
		}
	}
	return out
}

// Apply validates and applies the batch atomically: all changes are
// checked against the current state first, and either every change lands
// or none does. The prior state is pushed to the undo history.
func (b *Board) Apply(batch Batch) error {
	if batch.IsEmpty() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	// validation pass against a scratch view of ids
	ids := make(map[string]bool, len(b.elems))
	for _, e := range b.elems {
		ids[e.ID] = true
	}
	for _, c := range batch.Changes {
		switch c.Op {
		case Insert:
			if c.Element.ID == "" {
				return fmt.Errorf("insert with empty id")
			}
			if ids[c.Element.ID] {
				return fmt.Errorf("insert: duplicate element id %s", c.Element.ID)
			}
			ids[c.Element.ID] = true
		case Replace:
			if !ids[c.ID] {
				return fmt.Errorf("replace: unknown element id %s", c.ID)
			}
		case Delete:
			if !ids[c.ID] {
				return fmt.Errorf("delete: unknown element id %s", c.ID)
			}
			delete(ids, c.ID)
		default:
			return fmt.Errorf("unknown change op %d", c.Op)
		}
	}

	b.history.push(snapshot{elements: cloneElements(b.elems), selection: append([]string(nil), b.selection...)})

	for _, c := range batch.Changes {
		switch c.Op {
		case Insert:
			el := c.Element.Clone()
			b.elems = append(b.elems, el)
		case Replace:
			for i := range b.elems {
				if b.elems[i].ID == c.ID {
					el := c.Element.Clone()
					el.ID = c.ID
					b.elems[i] = el
					break
				}
			}
		case Delete:
			for i := range b.elems {
				if b.elems[i].ID == c.ID {
					b.elems = append(b.elems[:i], b.elems[i+1:]...)
					break
				}
			}
		}
	}
	if batch.ClearSelection {
		b.selection = nil
	}
	if len(batch.Select) > 0 {
		b.selection = b.filterKnown(batch.Select)
	} else {
		b.selection = b.filterKnown(b.selection)
	}
	return nil
}

// Undo restores the most recent snapshot. Returns false when there is
// nothing to undo.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.history.undo(snapshot{elements: cloneElements(b.elems), selection: append([]string(nil), b.selection...)})
	if !ok {
		return false
	}
	b.elems = s.elements
	b.selection = s.selection
	return true
}

// Redo re-applies the most recently undone snapshot.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.history.redo(snapshot{elements: cloneElements(b.elems), selection: append([]string(nil), b.selection...)})
	if !ok {
		return false
	}
	b.elems = s.elements
	b.selection = s.selection
	return true
}

func (b *Board) filterKnown(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		for _, e := range b.elems {
			if e.ID == id {
				out = append(out, id)
				break
			}
		}
	}
	return out
}

func cloneElements(es []Element) []Element {
	out := make([]Element, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	return out
}
