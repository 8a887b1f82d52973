package scans

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/internal/documents"
)

type fakeDocs struct {
	mu   sync.Mutex
	docs map[int64]documents.Document
}

func newFakeDocs(docs ...documents.Document) *fakeDocs {
	f := &fakeDocs{docs: make(map[int64]documents.Document)}
	for _, d := range docs {
		f.docs[d.ID] = d
	}
	return f
}

func (f *fakeDocs) Find(_ context.Context, id int64) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return nil, documents.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDocs) ListAccessible(_ context.Context, user uuid.UUID) ([]documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]documents.Document, 0)
	for _, d := range f.docs {
		if d.AccessibleTo(user) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDocs) remove(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, id)
}

func (f *fakeDocs) setPrivate(id int64, private bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.docs[id]
	d.IsPrivate = private
	f.docs[id] = d
}

type fakeStore struct {
	mu      sync.Mutex
	records []Record
	failFor map[int64]bool
	clock   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		failFor: make(map[int64]bool),
		clock:   time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) Insert(_ context.Context, rec Record) (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[rec.MatchedDocumentID] {
		return nil, errors.New("insert failed")
	}
	f.clock = f.clock.Add(time.Second)
	rec.ID = int64(len(f.records) + 1)
	rec.ScanDate = f.clock
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeStore) FindBySource(_ context.Context, sourceID int64) ([]Record, error) {
	return f.filter(sourceID, -1), nil
}

func (f *fakeStore) FindBySourceAboveThreshold(_ context.Context, sourceID int64, threshold float64) ([]Record, error) {
	return f.filter(sourceID, threshold), nil
}

func (f *fakeStore) filter(sourceID int64, threshold float64) []Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Record, 0)
	for _, r := range f.records {
		if r.SourceDocumentID == sourceID && r.SimilarityScore >= threshold {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SimilarityScore > out[j].SimilarityScore })
	return out
}

type failingEmbedder struct {
	mu    sync.Mutex
	calls int
}

func (f *failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return nil, errors.New("provider unavailable")
}

// vectorEmbedder maps known texts to fixed vectors.
type vectorEmbedder map[string][]float64

func (v vectorEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	vec, ok := v[text]
	if !ok {
		return nil, errors.New("unknown text")
	}
	return vec, nil
}
