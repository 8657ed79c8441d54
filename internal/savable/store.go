// Package savable provides the per-task-session memory of validated
// step values: the ordered savable-object store used for auto-fill
// across steps, and the bounded cross-action quick-recall buffer.
//
// Both containers are shared across all wizard sessions within one
// task-execution lifetime. Exactly one mutator at a time is expected
// (the active wizard step), while multiple observers may read
// concurrently; every mutation is applied atomically under the lock so
// readers observe either the pre- or the post-mutation snapshot, never
// a partially truncated state.
package savable

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/a-simacov/synncore/internal/clock"
	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
)

// subscriberBuffer is the channel capacity per subscriber. A slow
// subscriber drops intermediate snapshots rather than blocking the
// mutating wizard step.
const subscriberBuffer = 16

// Store is an append-ordered log of typed savable objects. Later
// entries may depend on earlier ones, so replacing or removing an entry
// truncates everything appended after it.
//
// The store is session-scoped: create one when a task begins execution,
// pass it by reference into the wizard and auto-fill consumers, and
// Clear it when the task session ends.
type Store struct {
	mu      sync.RWMutex
	logger  zerolog.Logger
	clk     clock.Clock
	objects []domain.SavableObject
	subs    map[int]chan []domain.SavableObject
	nextSub int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for entry timestamps.
func WithClock(clk clock.Clock) StoreOption {
	return func(s *Store) {
		s.clk = clk
	}
}

// NewStore creates an empty savable-object store.
func NewStore(logger zerolog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		logger: logger,
		clk:    clock.RealClock{},
		subs:   make(map[int]chan []domain.SavableObject),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddObject converts rawData into the typed variant matching t and
// appends it. It returns false (no-op) when the type/data pairing is
// invalid.
//
// If an object of the same type already exists, the new object replaces
// it and every object appended after the old one is discarded: later
// steps' selections may have depended on the now-stale value.
func (s *Store) AddObject(t constants.ObjectType, rawData any, source string) bool {
	data, ok := domain.NewSavableObjectData(t, rawData)
	if !ok {
		s.logger.Debug().
			Str("type", t.String()).
			Str("source", source).
			Msg("rejecting savable object with mismatched payload")
		return false
	}

	obj := domain.SavableObject{
		ID:        generateObjectID(),
		Type:      t,
		Data:      data,
		Source:    source,
		CreatedAt: s.clk.Now().UTC(),
	}

	s.mu.Lock()
	if idx := s.indexOfTypeLocked(t); idx >= 0 {
		s.objects = append(s.objects[:idx], obj)
	} else {
		s.objects = append(s.objects, obj)
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return true
}

// RemoveObject drops the object with the given id and everything
// appended after it. It returns false when the id is not present.
func (s *Store) RemoveObject(id string) bool {
	s.mu.Lock()
	idx := -1
	for i := range s.objects {
		if s.objects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.objects = s.objects[:idx]
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return true
}

// Clear empties the store unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	s.objects = nil
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// ObjectByType returns the most-recently-appended object with the given
// type tag.
func (s *Store) ObjectByType(t constants.ObjectType) (domain.SavableObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].Type == t {
			return s.objects[i], true
		}
	}
	return domain.SavableObject{}, false
}

// HasObjectOfType reports whether an object with the given type tag is
// present.
func (s *Store) HasObjectOfType(t constants.ObjectType) bool {
	_, ok := s.ObjectByType(t)
	return ok
}

// Objects returns a snapshot of the store in insertion order (oldest
// first).
func (s *Store) Objects() []domain.SavableObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Len returns the number of stored objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Subscribe registers an observer of store snapshots. Every mutation
// publishes the post-mutation snapshot to all subscribers. The returned
// cancel function must be called when the consumer's lifetime ends.
func (s *Store) Subscribe() (<-chan []domain.SavableObject, func()) {
	ch := make(chan []domain.SavableObject, subscriberBuffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// DataByType unwraps the typed payload of the most recent object with
// the given tag. It returns false (not an error) when absent or when
// the payload's runtime type does not match T.
func DataByType[T any](s *Store, t constants.ObjectType) (T, bool) {
	var zero T
	obj, ok := s.ObjectByType(t)
	if !ok {
		return zero, false
	}
	v, ok := obj.Data.Value().(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// snapshotLocked copies the current object slice. Caller holds the lock.
func (s *Store) snapshotLocked() []domain.SavableObject {
	snapshot := make([]domain.SavableObject, len(s.objects))
	copy(snapshot, s.objects)
	return snapshot
}

// indexOfTypeLocked returns the index of the first object with the
// given type tag, or -1. Caller holds the lock.
func (s *Store) indexOfTypeLocked(t constants.ObjectType) int {
	for i := range s.objects {
		if s.objects[i].Type == t {
			return i
		}
	}
	return -1
}

// publish fans the snapshot out to subscribers. Sends are non-blocking;
// a full subscriber channel loses this snapshot but will receive the
// next one.
func (s *Store) publish(snapshot []domain.SavableObject) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// generateObjectID creates a unique savable-object ID.
// Format: obj-{uuid8} (e.g. obj-a1b2c3d4)
func generateObjectID() string {
	return "obj-" + uuid.New().String()[:8]
}
