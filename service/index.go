package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Itish41/ActionScribe/models"
	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

const notesIndex = "notes"

// NoteIndex keeps notes searchable in Elasticsearch. A nil *NoteIndex (no
// ELASTICSEARCH_URL) indexes nothing and every search falls back to the DB.
type NoteIndex struct {
	client *elasticsearch.Client
	logger *zap.Logger
}

// NewNoteIndex returns nil when url is empty.
func NewNoteIndex(url string, logger *zap.Logger) (*NoteIndex, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if url == "" {
		logger.Info("[NewNoteIndex] ELASTICSEARCH_URL not set, search uses the database only")
		return nil, nil
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return &NoteIndex{client: client, logger: logger}, nil
}

// Put indexes the note under its ID. Failures are logged and never fail the
// write that triggered them.
func (i *NoteIndex) Put(ctx context.Context, note models.Note) {
	if i == nil {
		return
	}

	body, err := json.Marshal(noteDocument(note))
	if err != nil {
		i.logger.Warn("[Put] Failed to marshal note for indexing", zap.String("note_id", note.ID), zap.Error(err))
		return
	}

	res, err := i.client.Index(
		notesIndex,
		bytes.NewReader(body),
		i.client.Index.WithDocumentID(note.ID),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		i.logger.Warn("[Put] Elasticsearch indexing error", zap.String("note_id", note.ID), zap.Error(err))
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		i.logger.Warn("[Put] Elasticsearch indexing failed", zap.String("note_id", note.ID), zap.String("response", res.String()))
		return
	}
	i.logger.Debug("[Put] Note indexed", zap.String("note_id", note.ID))
}

// noteDocument is the indexed form of a note.
func noteDocument(note models.Note) map[string]interface{} {
	return map[string]interface{}{
		"id":             note.ID,
		"title":          note.Title,
		"content":        note.Content,
		"search_content": note.SearchContent,
		"created_at":     note.CreatedAt.UTC(),
		"updated_at":     note.UpdatedAt.UTC(),
	}
}

// Remove drops the note from the index; a missing document is not an error.
func (i *NoteIndex) Remove(ctx context.Context, id string) {
	if i == nil {
		return
	}

	res, err := i.client.Delete(notesIndex, id, i.client.Delete.WithContext(ctx))
	if err != nil {
		i.logger.Warn("[Remove] Elasticsearch delete error", zap.String("note_id", id), zap.Error(err))
		return
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		i.logger.Warn("[Remove] Elasticsearch delete failed", zap.String("note_id", id), zap.String("response", res.String()))
	}
}

// noteSearchBody matches query as a phrase whose last word may be a prefix,
// so "proj" finds "project" the way the database LIKE search does.
func noteSearchBody(query string, fields []string, limit int) map[string]interface{} {
	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"type":   "phrase_prefix",
				"fields": fields,
			},
		},
	}
}

// Search returns the IDs of matching notes, best match first.
func (i *NoteIndex) Search(ctx context.Context, query string, fields []string, limit int) ([]string, error) {
	if i == nil {
		return nil, fmt.Errorf("elasticsearch client is not initialized")
	}

	body, err := json.Marshal(noteSearchBody(query, fields, limit))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(notesIndex),
		i.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		if hit.ID != "" {
			ids = append(ids, hit.ID)
		}
	}
	return ids, nil
}
