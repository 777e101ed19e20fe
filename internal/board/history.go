/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package board

// snapshot is a full reversible board state. Snapshots are deep copies so
// later batches cannot mutate history entries.
type snapshot struct {
	elements  []Element
	selection []string
}

// historyConfig caps the undo stack. Zero values select defaults.
type historyConfig struct {
	// maxDepth limits retained snapshots; older entries are pruned.
	maxDepth int
}

const defaultHistoryDepth = 100

// history is the per-board undo/redo stack. The Board serializes access,
// so no locking happens here.
type history struct {
	cfg    historyConfig
	past   []snapshot
	future []snapshot
}

func newHistory(cfg historyConfig) *history {
	if cfg.maxDepth <= 0 {
		cfg.maxDepth = defaultHistoryDepth
	}
	return &history{cfg: cfg}
}

// push records the state prior to a batch and clears the redo stack.
func (h *history) push(s snapshot) {
	h.past = append(h.past, s)
	if len(h.past) > h.cfg.maxDepth {
		h.past = h.past[len(h.past)-h.cfg.maxDepth:]
	}
	h.future = nil
}

// undo pops the latest snapshot, pushing current onto the redo stack.
func (h *history) undo(current snapshot) (snapshot, bool) {
	if len(h.past) == 0 {
		return snapshot{}, false
	}
	s := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current)
	return s, true
}

// redo pops the latest redo entry, pushing current back onto undo.
func (h *history) redo(current snapshot) (snapshot, bool) {
	if len(h.future) == 0 {
		return snapshot{}, false
	}
	s := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current)
	return s, true
}
