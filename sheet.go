package cellsheet

import "fmt"

// Sheet is a sparse two-dimensional container of Cells addressed by
// Position. Cells referenced by a formula but never explicitly set are
// materialized as Empty cells so that dependency edges can anchor on
// real objects (spec §3).
type Sheet struct {
	cells map[Position]*Cell
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{cells: make(map[Position]*Cell)}
}

// SetCell validates pos, creates a cell there if absent, and delegates
// to the cell's write path. If the write fails, any cell newly
// materialized by this call remains Empty; no further mutation occurs.
func (s *Sheet) SetCell(pos Position, text string) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Input: positionErrorInput(pos)}
	}

	cell, ok := s.cells[pos]
	if !ok {
		cell = newCell(s, pos)
		s.cells[pos] = cell
	}

	return cell.set(text)
}

// GetCell validates pos and returns the cell there, or nil if absent.
func (s *Sheet) GetCell(pos Position) (*Cell, error) {
	if !pos.IsValid() {
		return nil, &InvalidPositionError{Input: positionErrorInput(pos)}
	}
	return s.cells[pos], nil
}

// ClearCell validates pos, then replaces any cell there with Empty. If
// the cell's inbound edge set is empty after clearing, the cell object
// itself is dropped; otherwise its identity is preserved so existing
// formulas referencing it keep reading a live (now empty) value.
func (s *Sheet) ClearCell(pos Position) error {
	if !pos.IsValid() {
		return &InvalidPositionError{Input: positionErrorInput(pos)}
	}

	cell, ok := s.cells[pos]
	if !ok {
		return nil
	}

	// Clearing to Empty never fails: no formula to parse, no cycle to
	// introduce.
	_ = cell.set("")

	if len(cell.inNodes) == 0 {
		delete(s.cells, pos)
	}
	return nil
}

// PrintableSize returns the smallest (rows, cols) such that every
// non-absent cell fits within [0,rows) x [0,cols).
func (s *Sheet) PrintableSize() (rows, cols int) {
	maxRow, maxCol := -1, -1
	for p := range s.cells {
		if p.Row > maxRow {
			maxRow = p.Row
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
	}
	if maxRow < 0 {
		return 0, 0
	}
	return maxRow + 1, maxCol + 1
}

// reaches runs a reachability search from refs over the live out-edge
// graph, returning true if self is reachable. Used by Cell.set to
// reject a candidate formula that would introduce a cycle before any
// graph state is mutated (spec §4.3).
func (s *Sheet) reaches(refs []Position, self *Cell) bool {
	visited := make(map[*Cell]bool)
	var stack []*Cell

	for _, p := range refs {
		cell, ok := s.cells[p]
		if !ok {
			continue
		}
		if cell == self {
			return true
		}
		if !visited[cell] {
			visited[cell] = true
			stack = append(stack, cell)
		}
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for target := range cur.outNodes {
			if target == self {
				return true
			}
			if !visited[target] {
				visited[target] = true
				stack = append(stack, target)
			}
		}
	}

	return false
}

// invalidateDownstream clears the memoized cache of every formula cell
// transitively reachable from changed's inNodes, using an explicit
// worklist so stack depth stays bounded. A cell whose cache is already
// empty is not re-traversed: everything upstream of it was invalidated
// by an earlier pass (spec §4.5).
func (s *Sheet) invalidateDownstream(changed *Cell) {
	visited := make(map[*Cell]bool)
	var worklist []*Cell

	for dep := range changed.inNodes {
		if !visited[dep] {
			visited[dep] = true
			worklist = append(worklist, dep)
		}
	}

	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		if cur.cache == nil {
			continue
		}
		cur.cache = nil

		for dep := range cur.inNodes {
			if !visited[dep] {
				visited[dep] = true
				worklist = append(worklist, dep)
			}
		}
	}
}

// materialize returns the cell at p, creating an Empty one if absent.
func (s *Sheet) materialize(p Position) *Cell {
	if cell, ok := s.cells[p]; ok {
		return cell
	}
	cell := newCell(s, p)
	s.cells[p] = cell
	return cell
}

// lookup is the CellLookup a formula's AST evaluates against: an absent
// position reads as empty text, coercing to 0.0 per §4.2.
func (s *Sheet) lookup(p Position) Value {
	if cell, ok := s.cells[p]; ok {
		return cell.GetValue()
	}
	return TextValue("")
}

// positionErrorInput renders a Position for an InvalidPositionError,
// falling back to its raw coordinates since String() returns "" for
// anything that fails IsValid.
func positionErrorInput(p Position) string {
	if p.IsValid() {
		return p.String()
	}
	return fmt.Sprintf("(row=%d, col=%d)", p.Row, p.Col)
}
