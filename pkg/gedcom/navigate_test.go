package gedcom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/gedcom"
)

const navigateData = "0 HEAD\n" +
	"1 CHAR UTF-8\n" +
	"0 @I1@ INDI\n" +
	"1 NAME Main\n" +
	"1 EVEN A\n" +
	"2 TYPE event\n" +
	"2 DATE 1 JAN 1900\n" +
	"1 EVEN B\n" +
	"2 DATE 2 FEB 1901\n" +
	"1 NOTE @N1@\n" +
	"1 NOTE inline\n" +
	"0 @N1@ NOTE shared\n" +
	"1 SOUR origin\n" +
	"0 TRLR\n"

func readPerson(t *testing.T, reader *gedcom.Reader, ref string) *gedcom.Record {
	t.Helper()

	rec, err := reader.Resolve(ref)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec
}

func TestSubTag(t *testing.T) {
	t.Parallel()

	reader := openString(t, navigateData)
	person := readPerson(t, reader, "@I1@")
	res := gedcom.NewResolver(reader)

	t.Run("direct", func(t *testing.T) {
		t.Parallel()

		even := person.SubTag("EVEN", nil)
		require.NotNil(t, even)
		assert.Equal(t, "A", even.Value)
	})

	t.Run("nested path", func(t *testing.T) {
		t.Parallel()

		date := person.SubTag("EVEN/DATE", nil)
		require.NotNil(t, date)
		assert.Equal(t, gedcom.KindDate, date.Kind)
		assert.Equal(t, "1 JAN 1900", date.Value)
	})

	t.Run("nested path searches later siblings", func(t *testing.T) {
		t.Parallel()

		typ, ok := person.SubTagValue("EVEN/TYPE", nil)
		require.True(t, ok)
		assert.Equal(t, "event", typ)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, person.SubTag("BIRT", nil))
		assert.Nil(t, person.SubTag("EVEN/PLAC", nil))
		_, ok := person.SubTagValue("BIRT/DATE", nil)
		assert.False(t, ok)
	})

	t.Run("pointer without resolver", func(t *testing.T) {
		t.Parallel()

		note := person.SubTag("NOTE", nil)
		require.NotNil(t, note)
		assert.Equal(t, gedcom.KindPointer, note.Kind)
		assert.Equal(t, "@N1@", note.Value)
		assert.Nil(t, person.SubTag("NOTE/SOUR", nil))
	})

	t.Run("pointer with resolver", func(t *testing.T) {
		t.Parallel()

		note := person.SubTag("NOTE", res)
		require.NotNil(t, note)
		assert.Equal(t, gedcom.KindGeneric, note.Kind)
		assert.Equal(t, "@N1@", note.XRef)
		assert.Equal(t, "shared", note.Value)

		source, ok := person.SubTagValue("NOTE/SOUR", res)
		require.True(t, ok)
		assert.Equal(t, "origin", source)
	})

	t.Run("nil record", func(t *testing.T) {
		t.Parallel()

		var rec *gedcom.Record
		assert.Nil(t, rec.SubTag("NAME", nil))
		assert.Nil(t, rec.SubTags(nil, "NAME"))
	})
}

func TestSubTags(t *testing.T) {
	t.Parallel()

	reader := openString(t, navigateData)
	person := readPerson(t, reader, "@I1@")

	values := func(recs []*gedcom.Record) []string {
		out := make([]string, 0, len(recs))
		for _, rec := range recs {
			out = append(out, rec.Value)
		}
		return out
	}

	assert.Equal(t, []string{"A", "B"}, values(person.SubTags(nil, "EVEN")))
	assert.Equal(t, []string{"1 JAN 1900", "2 FEB 1901"}, values(person.SubTags(nil, "EVEN/DATE")))
	assert.Equal(t, []string{"event", "1 JAN 1900", "2 FEB 1901"}, values(person.SubTags(nil, "EVEN/TYPE", "EVEN/DATE")))
	assert.Equal(t, []string{"Main", "@N1@", "inline"}, values(person.SubTags(nil, "NAME", "NOTE")))
	assert.Empty(t, person.SubTags(nil, "BIRT"))
	assert.Len(t, person.SubTags(nil), 5)

	res := gedcom.NewResolver(reader)
	assert.Equal(t, []string{"shared", "inline"}, values(person.SubTags(res, "NOTE")))
	assert.Equal(t, []string{"origin"}, values(person.SubTags(res, "NOTE/SOUR")))
}

func TestResolver(t *testing.T) {
	t.Parallel()

	reader := openString(t, familyData)
	res := gedcom.NewResolver(reader)

	first, err := res.Resolve("@I2@")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := res.Resolve("@I2@")
	require.NoError(t, err)
	assert.Same(t, first, second)

	missing, err := res.Resolve("@X9@")
	require.NoError(t, err)
	assert.Nil(t, missing)
	assert.NoError(t, res.Err())
}

func TestParents(t *testing.T) {
	t.Parallel()

	reader := openString(t, familyData)
	res := gedcom.NewResolver(reader)

	child := readPerson(t, reader, "@I1@")
	mother := res.Mother(child)
	father := res.Father(child)
	require.NotNil(t, mother)
	require.NotNil(t, father)
	assert.Equal(t, "@I2@", mother.XRef)
	assert.Equal(t, "@I3@", father.XRef)
	assert.Equal(t, "F", mother.Sex())
	assert.Equal(t, "M", father.Sex())
	assert.Same(t, mother, res.Mother(child))

	// Parents of parents are unknown.
	assert.Nil(t, res.Mother(mother))
	assert.Nil(t, res.Father(father))

	orphan := readPerson(t, reader, "@I4@")
	assert.Nil(t, res.Mother(orphan))
	assert.Nil(t, res.Father(orphan))
	assert.Equal(t, "U", orphan.Sex())
	assert.NoError(t, res.Err())

	var none *gedcom.Resolver
	assert.Nil(t, none.Mother(child))
}

func TestPersonName(t *testing.T) {
	t.Parallel()

	reader := openString(t, familyData)
	person := readPerson(t, reader, "@I1@")

	name := person.PersonName()
	assert.Equal(t, "John", name.Given())
	assert.Equal(t, "Smith", name.Surname())
	assert.Equal(t, "John Smith", name.Format())
}
