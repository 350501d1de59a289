package lineage

import (
	"fmt"
	"math/rand"

	"github.com/cellanneal/cellanneal/cell"
	"github.com/cellanneal/cellanneal/simconfig"
)

// Lineage is the ordered sequence of frames, seeded from an external
// initial colony at frame 0. Frames are appended; never removed.
type Lineage struct {
	nodes  []*CellNode
	frames []*Frame
}

// New creates a Lineage with a single frame 0 populated from initial,
// every cell becoming a root node.
func New(initial []*cell.Bacillus, cfg simconfig.Config) *Lineage {
	l := &Lineage{}
	l.frames = append(l.frames, newFrame(-1, cfg))
	for _, c := range initial {
		l.AddCell(0, c)
	}
	return l
}

// FrameCount returns the number of frames in the lineage.
func (l *Lineage) FrameCount() int {
	return len(l.frames)
}

// Frame returns the frame at index i.
func (l *Lineage) Frame(i int) *Frame {
	return l.frames[i]
}

// Node returns the node with the given arena ID.
func (l *Lineage) Node(id int) *CellNode {
	return l.nodes[id]
}

func (l *Lineage) newNode(c *cell.Bacillus, parent int) *CellNode {
	n := &CellNode{ID: len(l.nodes), Cell: c, Parent: parent}
	l.nodes = append(l.nodes, n)
	return n
}

// AddCell implements the per-frame add_cell operation (spec.md §4.E): if
// c's name already exists in frame frameIdx, its cell is replaced in
// place; otherwise the new node is linked as a child of a matching node
// in the previous frame (same name, persistence; or name-minus-last-
// character, a newly born daughter), or created as a root if neither
// match (only legal for frame 0). It returns the node's arena ID.
func (l *Lineage) AddCell(frameIdx int, c *cell.Bacillus) int {
	f := l.frames[frameIdx]

	if id, ok := f.Nodes[c.Name]; ok {
		l.nodes[id].Cell = c
		return id
	}

	parent := noParent
	if f.PrevIndex >= 0 {
		prev := l.frames[f.PrevIndex]
		if id, ok := prev.Nodes[c.Name]; ok {
			parent = id
		} else if len(c.Name) > 0 {
			if id, ok := prev.Nodes[c.Name[:len(c.Name)-1]]; ok {
				parent = id
			}
		}
	}

	n := l.newNode(c, parent)
	f.Nodes[c.Name] = n.ID
	if parent != noParent {
		l.nodes[parent].Children = append(l.nodes[parent].Children, n.ID)
	}
	return n.ID
}

// RemoveCell detaches name from frame frameIdx's name map. It does not
// remove the node from the arena (nodes are permanent once created,
// per spec.md's lifecycle note); it is used by Split/Combine apply to
// retire a superseded node from the active frame.
func (l *Lineage) RemoveCell(frameIdx int, name string) {
	delete(l.frames[frameIdx].Nodes, name)
}

// DetachChild removes childID from parentID's children list, used when
// Split/Combine re-parents grandchildren onto a different node.
func (l *Lineage) DetachChild(parentID, childID int) {
	parent := l.nodes[parentID]
	for i, id := range parent.Children {
		if id == childID {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return
		}
	}
}

// Reparent sets childID's parent to newParentID and appends it to that
// node's children.
func (l *Lineage) Reparent(childID, newParentID int) {
	l.nodes[childID].Parent = newParentID
	if newParentID != noParent {
		l.nodes[newParentID].Children = append(l.nodes[newParentID].Children, childID)
	}
}

// Forward appends a new empty frame whose previous is the current tail
// and whose simulation config is a copy of the tail's.
func (l *Lineage) Forward() *Frame {
	tail := l.frames[len(l.frames)-1]
	f := newFrame(len(l.frames)-1, tail.SimConfig.Copy())
	l.frames = append(l.frames, f)
	return f
}

// CopyForward calls Forward then re-adds a clone of every cell from the
// previous frame, carrying state forward as the new frame's initial
// estimate.
func (l *Lineage) CopyForward() *Frame {
	prevIdx := len(l.frames) - 1
	prev := l.frames[prevIdx]
	names := make([]string, 0, len(prev.Nodes))
	for name := range prev.Nodes {
		names = append(names, name)
	}

	f := l.Forward()
	newIdx := len(l.frames) - 1
	for _, name := range names {
		id := prev.Nodes[name]
		l.AddCell(newIdx, l.nodes[id].Cell.Clone())
	}
	return f
}

// CountCellsIn returns the total number of cells across frames
// [start, end), clamped to the lineage's actual frame range: start
// below 0 is treated as 0, end beyond the frame count is treated as
// the frame count. This lets the annealing driver's sliding window
// range over window_start values before frame 0 exists yet (spec.md
// §4.H), mirroring original_source/global_optimization.py's
// LineageM.count_cells_in clamping.
func (l *Lineage) CountCellsIn(start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(l.frames) {
		end = len(l.frames)
	}
	count := 0
	for i := start; i < end; i++ {
		count += l.frames[i].CellCount()
	}
	return count
}

// TotalCellCount returns the total number of cells across every frame.
func (l *Lineage) TotalCellCount() int {
	return l.CountCellsIn(0, len(l.frames))
}

// ChooseRandomFrameIndex draws a frame index in [start, end) weighted
// by the number of cells in that frame, using rng for randomness. It
// returns an error if no frame in the range has any cells (spec.md
// §7's InternalInconsistency: weighted selection found nothing to
// pick, implying CountCellsIn disagreed with the draw).
func (l *Lineage) ChooseRandomFrameIndex(rng *rand.Rand, start, end int) (int, error) {
	if start < 0 {
		start = 0
	}
	if end > len(l.frames) {
		end = len(l.frames)
	}

	total := l.CountCellsIn(start, end)
	if total <= 0 {
		return 0, fmt.Errorf("lineage: no cells in frame range [%d, %d)", start, end)
	}
	target := rng.Intn(total)
	for i := start; i < end; i++ {
		c := l.frames[i].CellCount()
		if target < c {
			return i, nil
		}
		target -= c
	}
	return 0, fmt.Errorf("lineage: weighted frame selection exhausted range [%d, %d)", start, end)
}

// ChooseRandomNode draws a uniformly random node from frame frameIdx.
func (l *Lineage) ChooseRandomNode(rng *rand.Rand, frameIdx int) (*CellNode, error) {
	f := l.frames[frameIdx]
	if len(f.Nodes) == 0 {
		return nil, fmt.Errorf("lineage: frame %d has no cells", frameIdx)
	}
	target := rng.Intn(len(f.Nodes))
	i := 0
	for _, id := range f.Nodes {
		if i == target {
			return l.nodes[id], nil
		}
		i++
	}
	panic("unreachable")
}

// ParentNode returns n's parent node, or nil if n is a root.
func (l *Lineage) ParentNode(n *CellNode) *CellNode {
	if !n.HasParent() {
		return nil
	}
	return l.nodes[n.Parent]
}

// ChildNodes returns n's children.
func (l *Lineage) ChildNodes(n *CellNode) []*CellNode {
	children := make([]*CellNode, len(n.Children))
	for i, id := range n.Children {
		children[i] = l.nodes[id]
	}
	return children
}

// LiveCells returns the cells of every node active in frame frameIdx,
// in no particular order.
func (l *Lineage) LiveCells(frameIdx int) []*cell.Bacillus {
	f := l.frames[frameIdx]
	cells := make([]*cell.Bacillus, 0, len(f.Nodes))
	for _, id := range f.Nodes {
		cells = append(cells, l.nodes[id].Cell)
	}
	return cells
}

// GrandChildren flattens the children of each of n's children. A node
// with one child has its grandchildren simply be that child's
// children; a node with two children (a division) has the union of
// both children's children.
func (l *Lineage) GrandChildren(n *CellNode) []*CellNode {
	var out []*CellNode
	for _, id := range n.Children {
		out = append(out, l.ChildNodes(l.nodes[id])...)
	}
	return out
}
