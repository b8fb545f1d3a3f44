// Package toc builds a nested table of contents from a flat, ordered stream
// of headings.
package toc

// Record is one heading as it appears in document order.
type Record struct {
	Title string
	Level int // heading level, 1 = <h1>
	Slide int // 1-based slide number
}

// Entry is a node of the table of contents.
type Entry struct {
	Title        string
	Level        int // depth in the tree, 1 for top-level entries
	HeadingLevel int // level of the source heading
	Slide        int
	Children     []Entry
}

// node is an arena slot; children are arena indices.
type node struct {
	record   Record
	children []int
}

// Builder accumulates records and nests them by heading level.
//
// Nodes live in an arena and the open path is a stack of arena indices:
// for each record the stack is popped until its top has a strictly lower
// heading level, then the record becomes a child of the top (or a new root
// when the stack is empty) and is pushed.
type Builder struct {
	arena []node
	roots []int
	stack []int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a heading in document order.
func (b *Builder) Add(title string, level, slide int) {
	rec := Record{Title: title, Level: level, Slide: slide}

	for len(b.stack) > 0 && b.arena[b.stack[len(b.stack)-1]].record.Level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}

	idx := len(b.arena)
	b.arena = append(b.arena, node{record: rec})

	if len(b.stack) == 0 {
		b.roots = append(b.roots, idx)
	} else {
		parent := b.stack[len(b.stack)-1]
		b.arena[parent].children = append(b.arena[parent].children, idx)
	}

	b.stack = append(b.stack, idx)
}

// Len returns the number of headings added so far.
func (b *Builder) Len() int {
	return len(b.arena)
}

// Entries returns the tree built so far. The result does not share memory
// with the Builder.
func (b *Builder) Entries() []Entry {
	out := make([]Entry, 0, len(b.roots))
	for _, idx := range b.roots {
		out = append(out, b.entry(idx, 1))
	}
	return out
}

func (b *Builder) entry(idx, depth int) Entry {
	n := b.arena[idx]
	e := Entry{
		Title:        n.record.Title,
		Level:        depth,
		HeadingLevel: n.record.Level,
		Slide:        n.record.Slide,
	}
	if len(n.children) > 0 {
		e.Children = make([]Entry, 0, len(n.children))
		for _, child := range n.children {
			e.Children = append(e.Children, b.entry(child, depth+1))
		}
	}
	return e
}

// Build nests records in one pass.
func Build(records []Record) []Entry {
	b := NewBuilder()
	for _, r := range records {
		b.Add(r.Title, r.Level, r.Slide)
	}
	return b.Entries()
}
