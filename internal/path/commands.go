/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package path

import (
	"math"

	"gowhiteboard/internal/geom"
)

// CmdOp enumerates renderable draw commands.
type CmdOp uint8

const (
	MoveTo CmdOp = iota
	LineTo
	QuadTo  // corner-rounding arc: control, end
	CubicTo // control1, control2, end
	Close
)

// Cmd is a single draw command. P1..P3 are used depending on Op:
// MoveTo/LineTo use P1; QuadTo uses P1 (control) and P2 (end); CubicTo
// uses all three. Close carries no points.
type Cmd struct {
	Op         CmdOp
	P1, P2, P3 geom.Pt
}

// DrawCommands converts absolute anchors into an ordered draw-command
// list. A segment is a straight line only when neither endpoint
// contributes a handle on that side; otherwise it is a cubic using the
// first anchor's outgoing handle and the second anchor's incoming handle,
// falling back to the anchor point itself when one is absent.
//
// When cornerRadius > 0 each anchor (except the endpoints of an open
// path) is replaced by two sub-points offset along its incoming and
// outgoing edge directions, joined by a quadratic rounding arc whose
// control is the anchor itself. Edge direction for handle-bearing anchors
// follows the handle, not the straight chord.
func DrawCommands(abs []Anchor, closed bool, cornerRadius float64) []Cmd {
	abs = finiteAnchors(abs)
	if len(abs) < 2 {
		return nil
	}
	if cornerRadius > 0 {
		return roundedCommands(abs, closed, cornerRadius)
	}
	cmds := make([]Cmd, 0, len(abs)+2)
	cmds = append(cmds, Cmd{Op: MoveTo, P1: abs[0].Pt})
	n := len(abs)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		from := abs[i]
		to := abs[(i+1)%n]
		cmds = append(cmds, segmentCmd(from, to))
	}
	if closed {
		cmds = append(cmds, Cmd{Op: Close})
	}
	return cmds
}

// segmentCmd emits the command for the segment from one anchor to the next.
func segmentCmd(from, to Anchor) Cmd {
	if from.Out == nil && to.In == nil {
		return Cmd{Op: LineTo, P1: to.Pt}
	}
	c1 := from.Pt
	if from.Out != nil {
		c1 = *from.Out
	}
	c2 := to.Pt
	if to.In != nil {
		c2 = *to.In
	}
	return Cmd{Op: CubicTo, P1: c1, P2: c2, P3: to.Pt}
}

// edgeDirs returns the unit directions from anchor i toward its incoming
// and outgoing edges. Handle-bearing sides follow the handle direction.
func edgeDirs(abs []Anchor, i int) (in, out geom.Pt, inLen, outLen float64) {
	n := len(abs)
	prev := abs[(i-1+n)%n]
	next := abs[(i+1)%n]
	a := abs[i]

	inTarget := prev.Pt
	if a.In != nil {
		inTarget = *a.In
	}
	outTarget := next.Pt
	if a.Out != nil {
		outTarget = *a.Out
	}
	inLen = geom.Dist(a.Pt, prev.Pt)
	outLen = geom.Dist(a.Pt, next.Pt)
	in = unit(inTarget.Sub(a.Pt))
	out = unit(outTarget.Sub(a.Pt))
	return in, out, inLen, outLen
}

func unit(v geom.Pt) geom.Pt {
	l := v.Len()
	if l == 0 {
		return geom.Pt{}
	}
	return v.Scale(1 / l)
}

// roundedCommands emits the rounded variant. The offset at each anchor is
// min(radius% of the shorter adjacent edge, half the shorter edge), a
// heuristic reproduced as a tunable default rather than a derived value.
func roundedCommands(abs []Anchor, closed bool, cornerRadius float64) []Cmd {
	n := len(abs)
	type corner struct {
		in, out geom.Pt // sub-points replacing the anchor
		round   bool
		a       Anchor
	}
	corners := make([]corner, n)
	for i := 0; i < n; i++ {
		a := abs[i]
		endpoint := !closed && (i == 0 || i == n-1)
		if endpoint {
			corners[i] = corner{in: a.Pt, out: a.Pt, a: a}
			continue
		}
		inDir, outDir, inLen, outLen := edgeDirs(abs, i)
		shorter := math.Min(inLen, outLen)
		off := math.Min(cornerRadius/100*shorter, shorter/2)
		corners[i] = corner{
			in:    a.Pt.Add(inDir.Scale(off)),
			out:   a.Pt.Add(outDir.Scale(off)),
			round: true,
			a:     a,
		}
	}

	cmds := make([]Cmd, 0, n*2+2)
	cmds = append(cmds, Cmd{Op: MoveTo, P1: corners[0].out})
	segs := n - 1
	if closed {
		segs = n
	}
	for i := 0; i < segs; i++ {
		from := abs[i]
		to := abs[(i+1)%n]
		tc := corners[(i+1)%n]
		// segment from this corner's out sub-point to the next corner's
		// in sub-point, preserving curve commands on handle-bearing sides
		if from.Out == nil && to.In == nil {
			cmds = append(cmds, Cmd{Op: LineTo, P1: tc.in})
		} else {
			c1 := from.Pt
			if from.Out != nil {
				c1 = *from.Out
			}
			c2 := to.Pt
			if to.In != nil {
				c2 = *to.In
			}
			cmds = append(cmds, Cmd{Op: CubicTo, P1: c1, P2: c2, P3: tc.in})
		}
		if tc.round {
			cmds = append(cmds, Cmd{Op: QuadTo, P1: to.Pt, P2: tc.out})
		}
	}
	if closed {
		cmds = append(cmds, Cmd{Op: Close})
	}
	return cmds
}
