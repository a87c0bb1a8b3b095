// Package promotions keeps the promotion list in the local slot store and
// mirrors changes to the remote media API on a best-effort basis.
package promotions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"admin-console/localstore"
	"admin-console/logger"
	"admin-console/models"
	"admin-console/remote"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	SlotName = "admin_promotions"

	refreshConcurrency = 8
)

var ErrPromotionNotFound = errors.New("promotion not found")

// MediaAPI is the part of the remote media service the store needs.
type MediaAPI interface {
	Create(ctx context.Context, in remote.MediaInput) (*remote.Media, error)
	Get(ctx context.Context, id string) (*remote.Media, error)
	Update(ctx context.Context, id string, in remote.MediaInput) error
	Delete(ctx context.Context, id string) error
}

type Option func(*Store)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the promo_<uuid> id scheme.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the local-first promotion list. The slot is authoritative; the
// media API is a mirror whose failures are logged and reported through
// Result but never returned as errors.
type Store struct {
	slots localstore.Store
	media MediaAPI
	log   *logger.Logger
	now   func() time.Time
	newID func() string

	// mu serializes Load and the mutations, remote calls included.
	mu sync.Mutex

	stateMu sync.RWMutex
	records []models.PromotionRecord
}

// NewStore returns an empty store. Call Load before serving reads. media may
// be nil, in which case every record stays local-only.
func NewStore(slots localstore.Store, media MediaAPI, opts ...Option) *Store {
	s := &Store{
		slots:   slots,
		media:   media,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return "promo_" + uuid.NewString() },
		records: []models.PromotionRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) logger(ctx context.Context) *zap.Logger {
	l := s.log
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return l.WithContext(ctx)
}

// Load reads the slot, refreshes every synced record from the media API and
// writes the merged list back. Remote failures keep the local copy; only a
// failed slot write is returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := s.readSlot(ctx)
	merged := make([]models.PromotionRecord, len(local))
	copy(merged, local)

	if s.media != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(refreshConcurrency)
		for i := range merged {
			if !merged[i].Synced() {
				continue
			}
			i := i
			g.Go(func() error {
				rec := merged[i]
				m, err := s.media.Get(gctx, *rec.MediaID)
				if err != nil {
					s.logger(ctx).Warn("promotion refresh failed, keeping local copy",
						zap.String("promotion_id", rec.ID),
						zap.String("media_id", *rec.MediaID),
						zap.Int("status", remote.StatusCode(err)),
						zap.Error(err))
					return nil
				}
				merged[i] = Overlay(rec, FromMedia(*m))
				return nil
			})
		}
		// Workers never return an error.
		_ = g.Wait()
	}

	if err := s.writeSlot(ctx, merged); err != nil {
		return err
	}
	s.swap(merged)
	return nil
}

// List returns a copy of the current records in insertion order.
func (s *Store) List() []models.PromotionRecord {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	out := make([]models.PromotionRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Get(id string) (models.PromotionRecord, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if i := indexOf(s.records, id); i >= 0 {
		return s.records[i], nil
	}
	return models.PromotionRecord{}, ErrPromotionNotFound
}

// Create stores a new record. A successful remote create makes it synced and
// the remote url replaces the submitted one.
func (s *Store) Create(ctx context.Context, in models.PromotionInput) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := newRecord(s.newID(), in, s.now())
	res := Result{Outcome: OutcomeNotAttempted}

	if s.media != nil {
		m, err := s.media.Create(ctx, ToMediaInput(in))
		if err != nil {
			res.Outcome = OutcomeRemoteFailed
			res.RemoteErr = err
			s.logger(ctx).Warn("media api unavailable, saving promotion locally",
				zap.String("promotion_id", rec.ID),
				zap.Int("status", remote.StatusCode(err)),
				zap.Error(err))
		} else {
			mediaID := m.ID
			rec.MediaID = &mediaID
			if m.URL != "" {
				rec.VideoURL = m.URL
			}
			res.Outcome = OutcomeSynced
		}
	}

	next := append(s.List(), rec)
	if err := s.commit(ctx, next); err != nil {
		if rec.Synced() {
			s.logger(ctx).Error("promotion not saved, remote media left orphaned",
				zap.String("media_id", *rec.MediaID), zap.Error(err))
		}
		return Result{}, err
	}
	res.Record = rec
	return res, nil
}

// Update replaces the editable fields of record id. The remote update is only
// attempted for synced records.
func (s *Store) Update(ctx context.Context, id string, in models.PromotionInput) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.List()
	i := indexOf(next, id)
	if i < 0 {
		return Result{}, ErrPromotionNotFound
	}
	existing := next[i]
	res := s.mirror(ctx, existing, func(mediaID string) error {
		return s.media.Update(ctx, mediaID, ToMediaInput(in))
	})

	updated := applyInput(existing, in)
	stamp := s.now()
	updated.UpdatedAt = &stamp
	next[i] = updated

	if err := s.commit(ctx, next); err != nil {
		return Result{}, err
	}
	res.Record = updated
	return res, nil
}

// Delete removes record id locally whatever the remote delete returns.
func (s *Store) Delete(ctx context.Context, id string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.List()
	i := indexOf(current, id)
	if i < 0 {
		return Result{}, ErrPromotionNotFound
	}
	existing := current[i]
	res := s.mirror(ctx, existing, func(mediaID string) error {
		return s.media.Delete(ctx, mediaID)
	})

	next := make([]models.PromotionRecord, 0, len(current)-1)
	next = append(next, current[:i]...)
	next = append(next, current[i+1:]...)
	if err := s.commit(ctx, next); err != nil {
		return Result{}, err
	}
	res.Record = existing
	return res, nil
}

// mirror runs call against the record's media id when it has one.
func (s *Store) mirror(ctx context.Context, rec models.PromotionRecord, call func(mediaID string) error) Result {
	if s.media == nil || !rec.Synced() {
		return Result{Outcome: OutcomeNotAttempted}
	}
	if err := call(*rec.MediaID); err != nil {
		s.logger(ctx).Warn("media api call failed, applying change locally",
			zap.String("promotion_id", rec.ID),
			zap.String("media_id", *rec.MediaID),
			zap.Int("status", remote.StatusCode(err)),
			zap.Error(err))
		return Result{Outcome: OutcomeRemoteFailed, RemoteErr: err}
	}
	return Result{Outcome: OutcomeSynced}
}

// commit persists next and only then makes it the in-memory list, so the two
// never diverge.
func (s *Store) commit(ctx context.Context, next []models.PromotionRecord) error {
	if err := s.writeSlot(ctx, next); err != nil {
		return err
	}
	s.swap(next)
	return nil
}

func (s *Store) swap(next []models.PromotionRecord) {
	s.stateMu.Lock()
	s.records = next
	s.stateMu.Unlock()
}

func (s *Store) readSlot(ctx context.Context) []models.PromotionRecord {
	raw, err := s.slots.Get(ctx, SlotName)
	if errors.Is(err, localstore.ErrSlotNotFound) {
		return []models.PromotionRecord{}
	}
	if err != nil {
		s.logger(ctx).Warn("promotion slot unreadable, starting empty", zap.Error(err))
		return []models.PromotionRecord{}
	}
	records, err := DecodeRecords(raw)
	if err != nil {
		s.logger(ctx).Warn("promotion slot malformed, starting empty", zap.Error(err))
		return []models.PromotionRecord{}
	}
	return records
}

func (s *Store) writeSlot(ctx context.Context, records []models.PromotionRecord) error {
	raw, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.slots.Put(ctx, SlotName, raw); err != nil {
		return fmt.Errorf("persist promotions: %w", err)
	}
	return nil
}

// EncodeRecords serializes the slot content. A nil list encodes as [].
func EncodeRecords(records []models.PromotionRecord) ([]byte, error) {
	if records == nil {
		records = []models.PromotionRecord{}
	}
	return json.Marshal(records)
}

// DecodeRecords parses slot content. Blank content is an empty list.
func DecodeRecords(raw []byte) ([]models.PromotionRecord, error) {
	records := []models.PromotionRecord{}
	if len(raw) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return []models.PromotionRecord{}, err
	}
	if records == nil {
		records = []models.PromotionRecord{}
	}
	return records, nil
}

func indexOf(records []models.PromotionRecord, id string) int {
	for i := range records {
		if records[i].ID == id {
			return i
		}
	}
	return -1
}
