package gedcom

// Resolver dereferences pointer records through a Reader and memoizes the
// results, including misses. A nil *Resolver is valid and never follows
// pointers. Like Reader, it is not safe for concurrent use.
type Resolver struct {
	reader  *Reader
	cache   map[string]*Record
	parents map[*Record][2]*Record
	err     error
}

// NewResolver returns an empty resolver for reader.
func NewResolver(reader *Reader) *Resolver {
	return &Resolver{
		reader:  reader,
		cache:   make(map[string]*Record),
		parents: make(map[*Record][2]*Record),
	}
}

// Resolve returns the level-0 record with the given xref, or nil when no
// such record exists.
func (res *Resolver) Resolve(ref string) (*Record, error) {
	if rec, ok := res.cache[ref]; ok {
		return rec, nil
	}
	rec, err := res.reader.Resolve(ref)
	if err != nil {
		return nil, err
	}
	res.cache[ref] = rec
	return rec, nil
}

// Err returns the first read error hit while following pointers during
// navigation. Navigation treats such failures as absent records.
func (res *Resolver) Err() error {
	if res == nil {
		return nil
	}
	return res.err
}

// follow returns the record a pointer references, rec itself for other
// kinds, or nil for a dangling pointer.
func (res *Resolver) follow(rec *Record) *Record {
	if res == nil || rec.Kind != KindPointer {
		return rec
	}
	target, err := res.Resolve(rec.Value)
	if err != nil {
		if res.err == nil {
			res.err = err
		}
		return nil
	}
	return target
}
