package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/core"
)

func seededStore(t *testing.T) (*core.NoteStore, *RecordingReporter, core.Note, core.Note) {
	t.Helper()
	ctx := context.Background()
	store, rep := newLoadedStore(t, NewMockStorage())
	shopping := store.Create(ctx, core.Input{Title: "Shopping List", Content: "eggs, milk", Tags: []string{"home"}})
	plan := store.Create(ctx, core.Input{Title: "Project Plan", Content: "Ship the beta before the deadline Friday", Tags: []string{"work"}})
	rep.Events = nil
	return store, rep, shopping, plan
}

func TestNoteStore_Search(t *testing.T) {
	store, rep, shopping, plan := seededStore(t)

	tests := []struct {
		name  string
		query string
		want  []core.Note
	}{
		{"Content Match Ignores Case", "friday", []core.Note{plan}},
		{"Tag Match", "home", []core.Note{shopping}},
		{"Title Match", "LIST", []core.Note{shopping}},
		{"Tag Substring", "wor", []core.Note{plan}},
		{"Matches Keep Order", "p", []core.Note{plan, shopping}},
		{"No Match", "zzz", []core.Note{}},
		{"Empty Query Returns All", "", []core.Note{plan, shopping}},
		{"Blank Query Returns All", "  \t", []core.Note{plan, shopping}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Search(tt.query))
		})
	}

	rep.Events = nil
	store.Search("milk")
	require.Len(t, rep.Events, 1)
	assert.Equal(t, "notes_searched", rep.Events[0].Name)
	assert.Equal(t, 1, rep.Events[0].Props["results_count"])

	rep.Events = nil
	store.Search("")
	assert.Empty(t, rep.Events, "blank queries are not tracked")
}

func TestNoteStore_SearchIsPure(t *testing.T) {
	store, _, _, _ := seededStore(t)
	before := store.Notes()

	first := store.Search("e")
	second := store.Search("e")
	assert.Equal(t, first, second)
	assert.Equal(t, before, store.Notes())

	for _, n := range first {
		_, ok := store.GetByID(n.ID)
		assert.True(t, ok, "search results must be a subset of the collection")
	}
}

func TestNoteStore_FilterByTag(t *testing.T) {
	ctx := context.Background()
	store, _ := newLoadedStore(t, NewMockStorage())
	a := store.Create(ctx, core.Input{Title: "A", Tags: []string{"work/reports"}})
	b := store.Create(ctx, core.Input{Title: "B", Tags: []string{"work/reports/q1", "urgent"}})
	c := store.Create(ctx, core.Input{Title: "C", Tags: []string{"home"}})

	got, err := store.FilterByTag("work/**")
	require.NoError(t, err)
	assert.Equal(t, []core.Note{b, a}, got)

	got, err = store.FilterByTag("work/*")
	require.NoError(t, err)
	assert.Equal(t, []core.Note{a}, got)

	got, err = store.FilterByTag("h?me")
	require.NoError(t, err)
	assert.Equal(t, []core.Note{c}, got)

	got, err = store.FilterByTag("nothing")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = store.FilterByTag("[unclosed")
	assert.ErrorIs(t, err, core.ErrBadPattern)
}

func TestMatches(t *testing.T) {
	n := core.Note{Title: "Weekly Sync", Content: "Agenda", Tags: []string{"Team"}}
	assert.True(t, core.Matches(n, "sync"))
	assert.True(t, core.Matches(n, "AGENDA"))
	assert.True(t, core.Matches(n, "tea"))
	assert.False(t, core.Matches(n, "monthly"))
}
