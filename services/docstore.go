package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/spinkerton88/tiny-tastes-tracker-v2-sub001/models"
)

// Document is one stored JSON object.
type Document map[string]any

// DocChangeFunc receives the latest snapshot after each committed write.
// exists is false when the document has not been created yet.
type DocChangeFunc func(doc Document, exists bool)

// DocumentStore is a key-value document store addressed by (collection, id).
// Writes are merges: a patch overlays only the fields it carries.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, id string) (Document, bool, error)
	MergeWrite(ctx context.Context, collection, id string, patch Document) error
	Subscribe(collection, id string, fn DocChangeFunc) (cancel func(), err error)
}

// mergeDocuments overlays patch onto existing without touching either input.
func mergeDocuments(existing, patch Document) Document {
	merged := make(Document, len(existing)+len(patch))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// watcherRegistry fans document change events out to subscribers, keyed by
// collection/id. Same registry discipline as the realtime hub.
type watcherRegistry struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]DocChangeFunc
}

func (r *watcherRegistry) add(key string, fn DocChangeFunc) func() {
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[string]map[uint64]DocChangeFunc)
	}
	if r.subs[key] == nil {
		r.subs[key] = make(map[uint64]DocChangeFunc)
	}
	r.next++
	id := r.next
	r.subs[key][id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		if set := r.subs[key]; set != nil {
			delete(set, id)
			if len(set) == 0 {
				delete(r.subs, key)
			}
		}
		r.mu.Unlock()
	}
}

func (r *watcherRegistry) notify(key string, doc Document, exists bool) {
	r.mu.RLock()
	fns := make([]DocChangeFunc, 0, len(r.subs[key]))
	for _, fn := range r.subs[key] {
		fns = append(fns, fn)
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn(cloneDocument(doc), exists)
	}
}

// GormDocumentStore keeps one row per document and notifies in-process
// subscribers after each committed merge.
type GormDocumentStore struct {
	db       *gorm.DB
	watchers watcherRegistry
}

func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

func docKey(collection, id string) string { return collection + "/" + id }

func (s *GormDocumentStore) GetDocument(ctx context.Context, collection, id string) (Document, bool, error) {
	var row models.ProfileDocument
	err := s.db.WithContext(ctx).
		Where("collection = ? AND doc_id = ?", collection, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var doc Document
	if err := json.Unmarshal([]byte(row.Data), &doc); err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

func (s *GormDocumentStore) MergeWrite(ctx context.Context, collection, id string, patch Document) error {
	if len(patch) == 0 {
		return writeFailed(errors.New("empty patch"))
	}

	var merged Document
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.ProfileDocument
		err := tx.Where("collection = ? AND doc_id = ?", collection, id).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// created lazily on first write
			row = models.ProfileDocument{Collection: collection, DocID: id, Data: "{}"}
		} else if err != nil {
			return err
		}

		existing := Document{}
		if err := json.Unmarshal([]byte(row.Data), &existing); err != nil {
			return err
		}

		merged = mergeDocuments(existing, patch)
		body, err := json.Marshal(merged)
		if err != nil {
			return err
		}
		row.Data = string(body)
		row.LastMerged = time.Now()
		return tx.Save(&row).Error
	})
	if err != nil {
		return writeFailed(err)
	}

	s.watchers.notify(docKey(collection, id), merged, true)
	return nil
}

func (s *GormDocumentStore) Subscribe(collection, id string, fn DocChangeFunc) (func(), error) {
	return s.watchers.add(docKey(collection, id), fn), nil
}
