package handlers

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"vendor-hub.backend/internal/domain/entities"
	domainerrors "vendor-hub.backend/internal/domain/errors"
	"vendor-hub.backend/internal/domain/repositories"
	"vendor-hub.backend/internal/infrastructure/notifier"
)

type merchantRepoStub struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*entities.Merchant
}

func newMerchantRepoStub() *merchantRepoStub {
	return &merchantRepoStub{byID: map[uuid.UUID]*entities.Merchant{}}
}

func (s *merchantRepoStub) Create(_ context.Context, m *entities.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	s.byID[m.ID] = m
	return nil
}

func (s *merchantRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (s *merchantRepoStub) GetByEmail(_ context.Context, email string) (*entities.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.byID {
		if m.Email == email {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *merchantRepoStub) GetBySetupToken(_ context.Context, token string) (*entities.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token == "" {
		return nil, domainerrors.ErrNotFound
	}
	for _, m := range s.byID {
		if m.SetupToken == token {
			copied := *m
			return &copied, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *merchantRepoStub) Update(_ context.Context, m *entities.Merchant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[m.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	m.Revision++
	copied := *m
	s.byID[m.ID] = &copied
	return nil
}

func (s *merchantRepoStub) List(_ context.Context, _ repositories.MerchantListFilter) ([]*entities.Merchant, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entities.Merchant, 0, len(s.byID))
	for _, m := range s.byID {
		copied := *m
		out = append(out, &copied)
	}
	return out, int64(len(out)), nil
}

func (s *merchantRepoStub) UpdateRating(_ context.Context, id uuid.UUID, rating float64, reviewCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.byID[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	m.Rating = rating
	m.ReviewCount = reviewCount
	return nil
}

func (s *merchantRepoStub) ClearExpiredSetupTokens(context.Context, int) (int64, error) {
	return 0, nil
}

func (s *merchantRepoStub) SoftDelete(context.Context, uuid.UUID) error { return nil }

type documentRepoStub struct {
	mu   sync.Mutex
	docs []*entities.Document
}

func newDocumentRepoStub() *documentRepoStub {
	return &documentRepoStub{}
}

func (s *documentRepoStub) Create(_ context.Context, d *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	copied := *d
	s.docs = append(s.docs, &copied)
	return nil
}

func (s *documentRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == id {
			copied := *d
			return &copied, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *documentRepoStub) GetActiveByType(_ context.Context, merchantID uuid.UUID, docType entities.DocumentType) (*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.MerchantID == merchantID && d.Type == docType && d.Active {
			copied := *d
			return &copied, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *documentRepoStub) ListForMerchant(_ context.Context, merchantID uuid.UUID) ([]*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Document
	for _, d := range s.docs {
		if d.MerchantID == merchantID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *documentRepoStub) ListActiveForMerchant(_ context.Context, merchantID uuid.UUID) ([]*entities.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Document
	for _, d := range s.docs {
		if d.MerchantID == merchantID && d.Active {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (s *documentRepoStub) Update(_ context.Context, doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.docs {
		if d.ID == doc.ID {
			copied := *doc
			s.docs[i] = &copied
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *documentRepoStub) Deactivate(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == id {
			d.Active = false
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *documentRepoStub) SetStatusForMerchant(_ context.Context, merchantID uuid.UUID, status entities.DocumentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.MerchantID == merchantID && d.Active {
			d.Status = status
		}
	}
	return nil
}

func (s *documentRepoStub) GetStats(context.Context) (*entities.DocumentStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &entities.DocumentStats{
		ByStatus: map[entities.DocumentStatus]int64{},
		ByType:   map[entities.DocumentType]int64{},
	}
	for _, d := range s.docs {
		if !d.Active {
			continue
		}
		stats.Total++
		stats.ByStatus[d.Status]++
		stats.ByType[d.Type]++
	}
	return stats, nil
}

type historyRepoStub struct {
	mu      sync.Mutex
	entries []*entities.VerificationHistoryEntry
}

func (s *historyRepoStub) Append(_ context.Context, e *entities.VerificationHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	copied := *e
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *historyRepoStub) ListForMerchant(_ context.Context, merchantID uuid.UUID) ([]*entities.VerificationHistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.VerificationHistoryEntry
	for _, e := range s.entries {
		if e.MerchantID == merchantID {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

type reviewRepoStub struct {
	mu      sync.Mutex
	reviews []*entities.Review
}

func (s *reviewRepoStub) Create(_ context.Context, r *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	copied := *r
	s.reviews = append(s.reviews, &copied)
	return nil
}

func (s *reviewRepoStub) GetByID(_ context.Context, id uuid.UUID) (*entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *reviewRepoStub) Update(_ context.Context, review *entities.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reviews {
		if r.ID == review.ID {
			copied := *review
			s.reviews[i] = &copied
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *reviewRepoStub) SoftDelete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reviews {
		if r.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *reviewRepoStub) ListForMerchant(_ context.Context, merchantID uuid.UUID, limit, offset int) ([]*entities.Review, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.Review
	for _, r := range s.reviews {
		if r.MerchantID == merchantID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, int64(len(out)), nil
}

func (s *reviewRepoStub) Aggregate(_ context.Context, merchantID uuid.UUID) (float64, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, count := 0, 0
	for _, r := range s.reviews {
		if r.MerchantID == merchantID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type notifierStub struct {
	mu     sync.Mutex
	events []notifier.Event
}

func (s *notifierStub) Send(_ context.Context, e notifier.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

type objectStoreStub struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newObjectStoreStub() *objectStoreStub {
	return &objectStoreStub{objects: map[string][]byte{}}
}

func (s *objectStoreStub) Put(_ context.Context, key string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	locator := "stub://" + key
	s.objects[locator] = data
	return locator, nil
}

func (s *objectStoreStub) Open(_ context.Context, locator string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[locator]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *objectStoreStub) Delete(_ context.Context, locator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, locator)
	return nil
}
