package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/eslsoft/lexrev/internal/entity"
)

type fakeRecordRepo struct {
	mu      sync.RWMutex
	records map[int64]entity.SRSRecord
	putErr  error
	getErr  error
	puts    int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[int64]entity.SRSRecord)}
}

func (r *fakeRecordRepo) Get(ctx context.Context, itemID int64) (entity.SRSRecord, error) {
	if err := ctx.Err(); err != nil {
		return entity.SRSRecord{}, err
	}
	if r.getErr != nil {
		return entity.SRSRecord{}, r.getErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if rec, ok := r.records[itemID]; ok {
		return rec, nil
	}
	return entity.NewSRSRecord(itemID), nil
}

func (r *fakeRecordRepo) Put(ctx context.Context, rec entity.SRSRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.putErr != nil {
		return r.putErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.ItemID] = rec
	r.puts++
	return nil
}

func (r *fakeRecordRepo) List(ctx context.Context) ([]entity.SRSRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.SRSRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeRecordRepo) ListByItems(ctx context.Context, itemIDs []int64) ([]entity.SRSRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.SRSRecord
	for _, id := range itemIDs {
		if rec, ok := r.records[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRecordRepo) Delete(ctx context.Context, itemID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, itemID)
	return nil
}

type fakeSessionRepo struct {
	mu        sync.RWMutex
	log       []entity.QuizSessionRecord
	appendErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{}
}

func (r *fakeSessionRepo) Append(ctx context.Context, rec *entity.QuizSessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.appendErr != nil {
		return r.appendErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = append(r.log, *rec)
	return nil
}

func (r *fakeSessionRepo) List(ctx context.Context, since *time.Time) ([]entity.QuizSessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.QuizSessionRecord
	for _, rec := range r.log {
		if since != nil && rec.StartedAt.Before(*since) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

type fakeVocabRepo struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]entity.VocabularyItem
	lists map[int64]entity.WordList
}

func newFakeVocabRepo() *fakeVocabRepo {
	return &fakeVocabRepo{
		items: make(map[int64]entity.VocabularyItem),
		lists: make(map[int64]entity.WordList),
	}
}

func (r *fakeVocabRepo) add(listID int64, text, translation string) entity.VocabularyItem {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item := entity.VocabularyItem{ID: r.seq, ListID: listID, Text: text, Translation: translation}
	r.items[item.ID] = item
	return item
}

func (r *fakeVocabRepo) Create(ctx context.Context, item *entity.VocabularyItem) (*entity.VocabularyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	created := r.add(item.ListID, item.Text, item.Translation)
	return &created, nil
}

func (r *fakeVocabRepo) GetByID(ctx context.Context, id int64) (*entity.VocabularyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if item, ok := r.items[id]; ok {
		return &item, nil
	}
	return nil, entity.ErrItemNotFound
}

func (r *fakeVocabRepo) ListByList(ctx context.Context, listID int64) ([]entity.VocabularyItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []entity.VocabularyItem
	for id := int64(1); id <= r.seq; id++ {
		if item, ok := r.items[id]; ok && item.ListID == listID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeVocabRepo) ListItemIDs(ctx context.Context) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []int64
	for id := range r.items {
		out = append(out, id)
	}
	return out, nil
}

func (r *fakeVocabRepo) EnsureList(ctx context.Context, name string) (*entity.WordList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, list := range r.lists {
		if list.Name == name {
			return &list, nil
		}
	}
	r.seq++
	list := entity.WordList{ID: r.seq, Name: name}
	r.lists[list.ID] = list
	return &list, nil
}

func (r *fakeVocabRepo) GetList(ctx context.Context, id int64) (*entity.WordList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if list, ok := r.lists[id]; ok {
		return &list, nil
	}
	return nil, entity.ErrListNotFound
}
