package savable

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/a-simacov/synncore/internal/clock"
	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
)

// Buffer is the cross-action quick-recall cache: a bounded ordered
// collection of the most recent savable payloads, newest first. Unlike
// the Store it never truncates on duplicates - it only evicts from the
// tail once the capacity is reached.
type Buffer struct {
	mu       sync.RWMutex
	logger   zerolog.Logger
	clk      clock.Clock
	capacity int
	items    []domain.BufferItem
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithBufferClock sets the time source used for entry timestamps.
func WithBufferClock(clk clock.Clock) BufferOption {
	return func(b *Buffer) {
		b.clk = clk
	}
}

// NewBuffer creates a buffer limited to the given capacity. A
// non-positive capacity falls back to constants.BufferCapacity.
func NewBuffer(capacity int, logger zerolog.Logger, opts ...BufferOption) *Buffer {
	if capacity <= 0 {
		capacity = constants.BufferCapacity
	}
	b := &Buffer{
		logger:   logger,
		clk:      clock.RealClock{},
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add converts rawData into the typed variant matching t and inserts it
// at the front, evicting the oldest entry when the buffer is full. It
// returns false when the type/data pairing is invalid.
func (b *Buffer) Add(t constants.ObjectType, rawData any, source string) bool {
	data, ok := domain.NewSavableObjectData(t, rawData)
	if !ok {
		b.logger.Debug().
			Str("type", t.String()).
			Str("source", source).
			Msg("rejecting buffer item with mismatched payload")
		return false
	}

	item := domain.BufferItem{
		ID:        "buf-" + uuid.New().String()[:8],
		Type:      t,
		Data:      data,
		Source:    source,
		CreatedAt: b.clk.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append([]domain.BufferItem{item}, b.items...)
	if len(b.items) > b.capacity {
		b.items = b.items[:b.capacity]
	}
	return true
}

// AddPallet inserts a pallet payload.
func (b *Buffer) AddPallet(p domain.Pallet, source string) bool {
	return b.Add(constants.ObjectTypePallet, p, source)
}

// AddBin inserts a bin payload.
func (b *Buffer) AddBin(bin domain.Bin, source string) bool {
	return b.Add(constants.ObjectTypeBin, bin, source)
}

// AddProduct inserts a classifier product payload.
func (b *Buffer) AddProduct(p domain.Product, source string) bool {
	return b.Add(constants.ObjectTypeClassifierProduct, p, source)
}

// AddTaskProduct inserts a task-bound product payload.
func (b *Buffer) AddTaskProduct(tp domain.TaskProduct, source string) bool {
	return b.Add(constants.ObjectTypeTaskProduct, tp, source)
}

// LastByType returns the most recent item with the given type tag.
func (b *Buffer) LastByType(t constants.ObjectType) (domain.BufferItem, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i := range b.items {
		if b.items[i].Type == t {
			return b.items[i], true
		}
	}
	return domain.BufferItem{}, false
}

// LastForField returns the most recent item matching the object type
// the given step-field captures (storage pallet/bin fields map to the
// pallet/bin types, product fields to their product types).
func (b *Buffer) LastForField(f constants.SearchFieldKind) (domain.BufferItem, bool) {
	t := f.ObjectType()
	if t == "" {
		return domain.BufferItem{}, false
	}
	return b.LastByType(t)
}

// LastPallet returns the most recently added pallet.
func (b *Buffer) LastPallet() (domain.Pallet, bool) {
	item, ok := b.LastByType(constants.ObjectTypePallet)
	if !ok {
		return domain.Pallet{}, false
	}
	p, ok := item.Data.Value().(domain.Pallet)
	return p, ok
}

// LastBin returns the most recently added bin.
func (b *Buffer) LastBin() (domain.Bin, bool) {
	item, ok := b.LastByType(constants.ObjectTypeBin)
	if !ok {
		return domain.Bin{}, false
	}
	v, ok := item.Data.Value().(domain.Bin)
	return v, ok
}

// LastProduct returns the most recently added classifier product.
func (b *Buffer) LastProduct() (domain.Product, bool) {
	item, ok := b.LastByType(constants.ObjectTypeClassifierProduct)
	if !ok {
		return domain.Product{}, false
	}
	v, ok := item.Data.Value().(domain.Product)
	return v, ok
}

// LastTaskProduct returns the most recently added task product.
func (b *Buffer) LastTaskProduct() (domain.TaskProduct, bool) {
	item, ok := b.LastByType(constants.ObjectTypeTaskProduct)
	if !ok {
		return domain.TaskProduct{}, false
	}
	v, ok := item.Data.Value().(domain.TaskProduct)
	return v, ok
}

// Items returns a snapshot of the buffer, newest first.
func (b *Buffer) Items() []domain.BufferItem {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make([]domain.BufferItem, len(b.items))
	copy(snapshot, b.items)
	return snapshot
}

// Len returns the number of buffered items.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.items)
}

// Capacity returns the configured maximum number of items.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
}
