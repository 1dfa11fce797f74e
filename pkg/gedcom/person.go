package gedcom

// PersonName summarizes the NAME records of an INDI record.
func (r *Record) PersonName() Name {
	return NewName(r.SubTags(nil, "NAME"), r.Dialect)
}

// Sex returns the SEX value, or "U" when it is missing.
func (r *Record) Sex() string {
	if sex, ok := r.SubTagValue("SEX", nil); ok && sex != "" {
		return sex
	}
	return "U"
}

// Mother returns the wife of the first family the person is a child in.
func (res *Resolver) Mother(person *Record) *Record {
	return res.lookupParents(person)[0]
}

// Father returns the husband of the first family the person is a child in.
func (res *Resolver) Father(person *Record) *Record {
	return res.lookupParents(person)[1]
}

func (res *Resolver) lookupParents(person *Record) [2]*Record {
	if res == nil || person == nil {
		return [2]*Record{}
	}
	if parents, ok := res.parents[person]; ok {
		return parents
	}

	var parents [2]*Record
	for i, path := range []string{"FAMC/WIFE", "FAMC/HUSB"} {
		if rec := person.SubTag(path, res); rec != nil && rec.Kind == KindPerson {
			parents[i] = rec
		}
	}
	res.parents[person] = parents
	return parents
}
