package gedcom

import (
	"strings"
)

// SubTag returns the first sub-record matching a slash-separated tag path
// such as "BIRT/DATE". With a non-nil resolver, pointer records along the
// path are replaced by the records they reference and dangling pointers are
// skipped. It returns nil when nothing matches.
func (r *Record) SubTag(path string, res *Resolver) *Record {
	if r == nil {
		return nil
	}
	head, tail, nested := strings.Cut(path, "/")
	for _, sub := range r.Sub {
		if sub.Tag != head {
			continue
		}
		target := res.follow(sub)
		if target == nil {
			continue
		}
		if !nested {
			return target
		}
		if found := target.SubTag(tail, res); found != nil {
			return found
		}
	}
	return nil
}

// SubTagValue returns the value of the record SubTag finds.
func (r *Record) SubTagValue(path string, res *Resolver) (string, bool) {
	sub := r.SubTag(path, res)
	if sub == nil {
		return "", false
	}
	return sub.Value, true
}

// SubTags returns every sub-record matching any of the tag paths, in file
// order, searching nested levels for multi-part paths. Without paths it
// returns the direct sub-records. Pointers are followed as in SubTag.
func (r *Record) SubTags(res *Resolver, paths ...string) []*Record {
	if r == nil {
		return nil
	}

	var out []*Record
	if len(paths) == 0 {
		for _, sub := range r.Sub {
			if target := res.follow(sub); target != nil {
				out = append(out, target)
			}
		}
		return out
	}

	matches := make([][]string, 0, len(paths))
	for _, p := range paths {
		if p != "" {
			matches = append(matches, strings.Split(p, "/"))
		}
	}
	return collectSubTags(r, matches, nil, res, out)
}

func collectSubTags(r *Record, matches [][]string, prefix []string, res *Resolver, out []*Record) []*Record {
	for _, sub := range r.Sub {
		path := append(append([]string(nil), prefix...), sub.Tag)
		for _, m := range matches {
			if !hasPathPrefix(m, path) {
				continue
			}
			target := res.follow(sub)
			if target != nil {
				if len(path) == len(m) {
					out = append(out, target)
				} else {
					out = collectSubTags(target, matches, path, res, out)
				}
			}
			break
		}
	}
	return out
}

func hasPathPrefix(full, prefix []string) bool {
	if len(prefix) > len(full) {
		return false
	}
	for i := range prefix {
		if full[i] != prefix[i] {
			return false
		}
	}
	return true
}
