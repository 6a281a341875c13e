package cellsheet

// contentKind tags which branch of a Cell's content variant is active:
// Empty, Text, or Formula (spec §3's Empty ⇄ Text ⇄ Formula state machine).
type contentKind uint8

const (
	contentEmpty contentKind = iota
	contentText
	contentFormula
)

// Cell is the atomic unit of a Sheet's grid. It owns exactly one content
// variant, a memoized formula result, and the two edge multisets that
// make up its slice of the dependency graph: outNodes (cells this
// formula reads) and inNodes (cells that read this one). Edges are
// installed once per distinct referenced position (ReferencedCells is
// deduplicated, so "=A1+A1" contributes one), and a later teardown
// removes exactly the recorded count.
type Cell struct {
	sheet *Sheet
	pos   Position

	kind    contentKind
	text    string
	formula *Formula
	cache   *Value

	outNodes map[*Cell]int
	inNodes  map[*Cell]int
}

func newCell(sheet *Sheet, pos Position) *Cell {
	return &Cell{
		sheet:    sheet,
		pos:      pos,
		outNodes: make(map[*Cell]int),
		inNodes:  make(map[*Cell]int),
	}
}

// set installs new content, following spec §4.3's write path: classify,
// parse (if formula), check acyclicity against the live graph, tear down
// old edges and invalidate downstream, install new edges, then replace
// content. No mutation is visible if parsing or the acyclicity check
// fails.
func (c *Cell) set(text string) error {
	var kind contentKind
	var formula *Formula

	switch {
	case len(text) == 0:
		kind = contentEmpty
	case text[0] == formulaSentinelStr[0] && len(text) > 1:
		f, err := ParseFormula(text)
		if err != nil {
			return err
		}
		kind = contentFormula
		formula = f
	default:
		kind = contentText
	}

	var refs []Position
	if kind == contentFormula {
		refs = formula.ReferencedCells()
		if c.sheet.reaches(refs, c) {
			return &CircularDependencyError{At: c.pos}
		}
	}

	c.uninstallEdges()
	c.sheet.invalidateDownstream(c)

	if kind == contentFormula {
		c.installEdges(refs)
		c.text = formula.Text()
	} else {
		c.text = text
	}

	c.kind = kind
	c.formula = formula
	c.cache = nil

	return nil
}

// uninstallEdges removes self from every current out-neighbour's
// inNodes multiset, balancing occurrence counts, then clears outNodes.
func (c *Cell) uninstallEdges() {
	for target, n := range c.outNodes {
		target.inNodes[c] -= n
		if target.inNodes[c] <= 0 {
			delete(target.inNodes, c)
		}
	}
	c.outNodes = make(map[*Cell]int)
}

// installEdges materializes an Empty cell for every referenced position
// not yet present, then records the self -> target edge both ways.
func (c *Cell) installEdges(refs []Position) {
	for _, p := range refs {
		target := c.sheet.materialize(p)
		c.outNodes[target]++
		target.inNodes[c]++
	}
}

// GetValue dispatches on content: Empty and Text render as themselves,
// Formula evaluates through its AST on a cache miss and memoizes the
// result, including error results.
func (c *Cell) GetValue() Value {
	switch c.kind {
	case contentText:
		return TextValue(c.displayedText())
	case contentFormula:
		if c.cache != nil {
			return *c.cache
		}
		v := c.formula.Eval(c.sheet.lookup)
		c.cache = &v
		return v
	default:
		return TextValue("")
	}
}

// displayedText applies the escape-sentinel rule: a leading "'" is
// stripped from the displayed value but kept in the stored text.
func (c *Cell) displayedText() string {
	if len(c.text) > 0 && c.text[0] == escapeSentinel {
		return c.text[1:]
	}
	return c.text
}

// GetText returns the stored text: "" for Empty, the raw string for
// Text (escape sentinel included), or "=" + canonical(AST) for Formula.
func (c *Cell) GetText() string { return c.text }

// GetReferencedCells returns the formula's referenced positions in
// first-occurrence order, or nil for non-formula content.
func (c *Cell) GetReferencedCells() []Position {
	if c.kind != contentFormula {
		return nil
	}
	return c.formula.ReferencedCells()
}

// IsReferenced reports whether this cell's own formula references any
// other cell, i.e. len(outNodes) > 0. This mirrors the source behavior
// literally rather than the name's more intuitive "am I referenced by
// others" reading (spec §9, open question b).
func (c *Cell) IsReferenced() bool {
	return len(c.outNodes) > 0
}
