package gedcom

// assembler rebuilds a record tree from consecutive lines. Nodes live in an
// arena; stack[level] is the arena index of the open node at that level or
// -1 when the slot is held by a continuation line.
type assembler struct {
	nodes   []node
	stack   []int
	dialect Dialect
	decode  func(raw []byte) (string, error)
}

type node struct {
	rec  *Record
	raw  []byte
	done bool
	// pointer is decided on the first line alone; continuations do not
	// change the kind.
	pointer bool
}

const noNode = -1

func newAssembler(dialect Dialect, decode func([]byte) (string, error)) *assembler {
	return &assembler{dialect: dialect, decode: decode}
}

// add places a line into the tree. Nodes at the line level and deeper are
// finalized first because no later continuation can reach them.
func (a *assembler) add(line Line) error {
	level := line.Level
	if err := a.finalizeFrom(level); err != nil {
		return err
	}
	for len(a.stack) <= level {
		a.stack = append(a.stack, noNode)
	}
	a.stack = a.stack[:level+1]

	parent := noNode
	if level > 0 {
		parent = a.stack[level-1]
	}

	if parent != noNode && line.isContinuation() {
		a.stack[level] = noNode
		p := &a.nodes[parent]
		if p.rec.Tag == "BLOB" {
			return nil
		}
		switch {
		case line.Tag == "CONT":
			p.raw = append(append(nonNil(p.raw), '\n'), line.Value...)
		case line.Value != nil:
			p.raw = append(nonNil(p.raw), line.Value...)
		}
		return nil
	}

	a.nodes = append(a.nodes, node{
		rec: &Record{
			Level:   level,
			XRef:    line.XRef,
			Tag:     line.Tag,
			Offset:  line.Offset,
			Dialect: a.dialect,
		},
		raw:     line.Value,
		pointer: isPointerValue(line.Value),
	})
	idx := len(a.nodes) - 1
	if parent != noNode {
		p := a.nodes[parent].rec
		p.Sub = append(p.Sub, a.nodes[idx].rec)
	}
	a.stack[level] = idx
	return nil
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// finalizeFrom decodes and freezes open nodes at level and deeper, deepest
// first.
func (a *assembler) finalizeFrom(level int) error {
	for i := len(a.stack) - 1; i >= level && i >= 0; i-- {
		idx := a.stack[i]
		if idx == noNode || a.nodes[idx].done {
			continue
		}
		if err := a.finalize(idx); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) finalize(idx int) error {
	n := &a.nodes[idx]
	if n.raw != nil {
		value, err := a.decode(n.raw)
		if err != nil {
			return err
		}
		n.rec.Value, n.rec.HasValue = value, true
	}
	n.raw = nil
	n.rec.freeze(n.pointer)
	n.done = true
	return nil
}

// finish finalizes everything still open and returns the node at root
// level, or nil when no line was added.
func (a *assembler) finish(root int) (*Record, error) {
	if err := a.finalizeFrom(root); err != nil {
		return nil, err
	}
	if root < 0 || root >= len(a.stack) || a.stack[root] == noNode {
		return nil, nil
	}
	return a.nodes[a.stack[root]].rec, nil
}
