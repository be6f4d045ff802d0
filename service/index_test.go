package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Itish41/ActionScribe/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNoteIndex_Nil(t *testing.T) {
	index, err := NewNoteIndex("", zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, index)

	assert.NotPanics(t, func() {
		index.Put(context.Background(), models.Note{ID: "n1"})
		index.Remove(context.Background(), "n1")
	})
	_, err = index.Search(context.Background(), "q", []string{"title"}, 10)
	assert.Error(t, err)
}

func TestSearchService_FallsBackWhenIndexUnreachable(t *testing.T) {
	index, err := NewNoteIndex("http://127.0.0.1:1", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, index)

	db := newTestDB(t)
	notes := NewNoteService(db, index, nil, nil)
	ctx := context.Background()

	_, err = notes.CreateNote(ctx, NoteInput{Title: "Release plan", Content: "Deploy on Friday"})
	require.NoError(t, err, "indexing failures do not fail the write")

	svc := NewSearchService(db, index, nil)
	found, err := svc.SearchNotes(ctx, "release", 10, true, true)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Release plan", found[0].Title)
}

func TestNoteSearchBody(t *testing.T) {
	body, err := json.Marshal(noteSearchBody("proj", []string{"title", "content"}, 20))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"size": 20,
		"query": {"multi_match": {"query": "proj", "type": "phrase_prefix", "fields": ["title", "content"]}}
	}`, string(body))
}

func TestNoteDocument_UsesSearchContent(t *testing.T) {
	db := newTestDB(t)
	notes := NewNoteService(db, nil, nil, nil)
	ctx := context.Background()

	created, err := notes.CreateNote(ctx, NoteInput{Title: "Release plan", Content: "Deploy on Friday"})
	require.NoError(t, err)
	assert.Equal(t, "Release plan Deploy on Friday", noteDocument(*created)["search_content"])

	loaded, err := notes.GetNote(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Release plan Deploy on Friday", noteDocument(*loaded)["search_content"])

	patched, err := notes.PatchNote(ctx, created.ID, NotePatch{Title: strPtr("Launch plan")})
	require.NoError(t, err)
	assert.Equal(t, "Launch plan Deploy on Friday", noteDocument(*patched)["search_content"])
}
