package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSeededSearchService(t *testing.T) *SearchService {
	t.Helper()
	db := newTestDB(t)
	notes := NewNoteService(db, nil, nil, nil)
	ctx := context.Background()

	for _, in := range []NoteInput{
		{Title: "Login outage", Content: "URGENT: Fix login bug!"},
		{Title: "Roadmap", Content: "Review the LOGIN flow\nPlan Q3"},
		{Title: "Lunch", Content: "Order pizza!"},
	} {
		_, err := notes.CreateNote(ctx, in)
		require.NoError(t, err)
	}
	return NewSearchService(db, nil, nil)
}

func TestSearchService_SearchAll(t *testing.T) {
	svc := newSeededSearchService(t)
	ctx := context.Background()

	res, err := svc.SearchAll(ctx, "login", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NotesCount)
	assert.Equal(t, 2, res.ActionItemsCount)
	assert.Equal(t, 4, res.TotalCount)

	res, err = svc.SearchAll(ctx, "login", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NotesCount)
	assert.Equal(t, 1, res.ActionItemsCount)

	res, err = svc.SearchAll(ctx, "nothing-matches", 10)
	require.NoError(t, err)
	assert.Zero(t, res.TotalCount)
	assert.NotNil(t, res.Notes)
	assert.NotNil(t, res.ActionItems)
}

func TestSearchService_ValidatesQuery(t *testing.T) {
	svc := newSeededSearchService(t)
	ctx := context.Background()

	for _, q := range []string{"", "   ", strings.Repeat("q", 101)} {
		_, err := svc.SearchAll(ctx, q, 10)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.SearchNotes(ctx, q, 10, true, true)
		assert.ErrorIs(t, err, ErrValidation)
		_, err = svc.SearchActionItems(ctx, q, 10, nil)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestSearchService_SearchNotes(t *testing.T) {
	svc := newSeededSearchService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		inTitle   bool
		inContent bool
		want      []string
	}{
		{name: "title only", inTitle: true, want: []string{"Login outage"}},
		{name: "content only", inContent: true, want: []string{"Login outage", "Roadmap"}},
		{name: "neither", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := svc.SearchNotes(ctx, "LOGIN", 50, tt.inTitle, tt.inContent)
			require.NoError(t, err)
			titles := []string{}
			for _, n := range notes {
				titles = append(titles, n.Title)
			}
			assert.ElementsMatch(t, tt.want, titles)
		})
	}
}

func TestSearchService_SearchActionItems(t *testing.T) {
	svc := newSeededSearchService(t)
	ctx := context.Background()

	items, err := svc.SearchActionItems(ctx, "pizza", 10, nil)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.db.Model(&items[0]).Update("completed", true).Error)

	open, err := svc.SearchActionItems(ctx, "pizza", 10, boolPtr(false))
	require.NoError(t, err)
	assert.Empty(t, open)

	done, err := svc.SearchActionItems(ctx, "pizza", 10, boolPtr(true))
	require.NoError(t, err)
	assert.Len(t, done, 1)
}
