package family_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gedkit/pkg/family"
	"github.com/yaklabco/gedkit/pkg/gedcom"
)

const smithData = "0 HEAD\n" +
	"1 SOUR TEST\n" +
	"1 CHAR UTF-8\n" +
	"0 @I1@ INDI\n" +
	"1 NAME John /Smith/\n" +
	"1 SEX M\n" +
	"1 BIRT\n" +
	"2 DATE 2 FEB 1920\n" +
	"2 PLAC Springfield\n" +
	"1 DEAT\n" +
	"2 DATE BET 1980 AND 1985\n" +
	"1 FAMC @F1@\n" +
	"0 @I2@ INDI\n" +
	"1 NAME Mary /Jones/\n" +
	"1 SEX F\n" +
	"1 BIRT\n" +
	"2 DATE ABT 1890\n" +
	"1 FAMS @F1@\n" +
	"0 @I3@ INDI\n" +
	"1 NAME Robert /Smith/\n" +
	"1 SEX M\n" +
	"1 OCCU Farmer\n" +
	"1 FAMS @F1@\n" +
	"0 @F1@ FAM\n" +
	"1 HUSB @I3@\n" +
	"1 WIFE @I2@\n" +
	"1 CHIL @I1@\n" +
	"1 CHIL @I9@\n" +
	"1 MARR\n" +
	"2 DATE 12 JUN 1915\n" +
	"2 PLAC Shelbyville\n" +
	"0 TRLR\n"

func load(t *testing.T, data string) *family.Tree {
	t.Helper()

	reader, err := gedcom.NewReader(bytes.NewReader([]byte(data)), gedcom.Options{Logger: log.New(bytes.NewBuffer(nil))})
	require.NoError(t, err)
	tree, err := family.Load(context.Background(), reader)
	require.NoError(t, err)
	return tree
}

func TestLoadIndividuals(t *testing.T) {
	t.Parallel()

	tree := load(t, smithData)
	require.Len(t, tree.Individuals, 3)

	john := tree.Individuals[0]
	assert.Equal(t, "@I1@", john.XRef)
	assert.Equal(t, "John Smith", john.Name)
	assert.Equal(t, "John", john.Given)
	assert.Equal(t, "Smith", john.Surname)
	assert.Equal(t, "M", john.Sex)
	require.NotNil(t, john.Birth)
	assert.Equal(t, "2 FEB 1920", john.Birth.Text)
	assert.Equal(t, "SIMPLE", john.Birth.Kind)
	assert.InDelta(t, 2422356.5, john.Birth.JD, 0.01)
	assert.Equal(t, "Springfield", john.BirthPlace)
	require.NotNil(t, john.Death)
	assert.Equal(t, "BETWEEN 1980 AND 1985", john.Death.String())
	assert.Equal(t, &family.PersonRef{XRef: "@I3@", Name: "Robert Smith"}, john.Father)
	assert.Equal(t, &family.PersonRef{XRef: "@I2@", Name: "Mary Jones"}, john.Mother)

	robert := tree.Individuals[2]
	assert.Nil(t, robert.Birth)
	assert.Nil(t, robert.Father)
	assert.Empty(t, robert.Birth.String())
}

func TestLoadFamilies(t *testing.T) {
	t.Parallel()

	tree := load(t, smithData)
	require.Len(t, tree.Families, 1)

	fam := tree.Families[0]
	assert.Equal(t, "@F1@", fam.XRef)
	assert.Equal(t, "Robert Smith & Mary Jones", fam.Label())
	assert.Equal(t, "12 JUN 1915", fam.Marriage.Text)
	assert.Equal(t, "Shelbyville", fam.MarriagePlace)
	require.Len(t, fam.Children, 1, "dangling child pointer is skipped")
	assert.Equal(t, "John Smith", fam.Children[0].Name)
	assert.Equal(t, "2 FEB 1920", fam.Children[0].Birth.Text)
}

func TestLoadEvents(t *testing.T) {
	t.Parallel()

	tree := load(t, smithData)

	var tags []string
	for _, ev := range tree.Events {
		tags = append(tags, ev.Owner.XRef+":"+ev.Tag)
	}
	assert.Equal(t, []string{"@I1@:BIRT", "@I1@:DEAT", "@I2@:BIRT", "@I3@:OCCU", "@F1@:MARR"}, tags)

	marr := tree.Events[4]
	assert.Equal(t, "FAM", marr.OwnerTag)
	assert.Equal(t, "Marriage", marr.Label)
	assert.Equal(t, "Robert Smith & Mary Jones", marr.Owner.Name)
	assert.Nil(t, tree.Events[3].Date)
}

func TestFamilyLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fam  family.Family
		want string
	}{
		{family.Family{XRef: "@F2@"}, "@F2@"},
		{family.Family{Wife: &family.PersonRef{Name: "Ann"}}, "Ann"},
		{family.Family{Husband: &family.PersonRef{Name: "Bob"}}, "Bob"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.fam.Label())
	}
}

func TestSortIndividuals(t *testing.T) {
	t.Parallel()

	xrefs := func(people []family.Individual) []string {
		out := make([]string, len(people))
		for i, p := range people {
			out[i] = p.XRef
		}
		return out
	}

	tree := load(t, smithData)

	people := tree.Individuals
	family.SortIndividuals(people, family.SortName, gedcom.SurnameGiven)
	assert.Equal(t, []string{"@I2@", "@I1@", "@I3@"}, xrefs(people))

	family.SortIndividuals(people, family.SortName, gedcom.GivenSurname)
	assert.Equal(t, []string{"@I1@", "@I2@", "@I3@"}, xrefs(people))

	family.SortIndividuals(people, family.SortBirth, gedcom.SurnameGiven)
	assert.Equal(t, []string{"@I2@", "@I1@", "@I3@"}, xrefs(people), "missing birth sorts last")
}

func TestSortEventsAndFamilies(t *testing.T) {
	t.Parallel()

	tree := load(t, smithData)

	family.SortEvents(tree.Events, family.SortBirth)
	var order []string
	for _, ev := range tree.Events {
		order = append(order, ev.Tag)
	}
	assert.Equal(t, []string{"BIRT", "MARR", "BIRT", "DEAT", "OCCU"}, order)

	family.SortEvents(tree.Events, family.SortName)
	assert.Equal(t, "John Smith", tree.Events[0].Owner.Name)

	family.SortFamilies(tree.Families, family.SortName)
	family.SortFamilies(tree.Families, family.SortBirth)
	assert.Len(t, tree.Families, 1)
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	for input, want := range map[string]family.SortKey{
		"":      family.SortFile,
		"file":  family.SortFile,
		"NAME":  family.SortName,
		"birth": family.SortBirth,
	} {
		got, err := family.ParseSortKey(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := family.ParseSortKey("age")
	require.Error(t, err)
}

func TestLoadCancelled(t *testing.T) {
	t.Parallel()

	reader, err := gedcom.NewReader(bytes.NewReader([]byte(smithData)), gedcom.Options{Logger: log.New(bytes.NewBuffer(nil))})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = family.Load(ctx, reader)
	require.ErrorIs(t, err, context.Canceled)
}
