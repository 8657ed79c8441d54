package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/reconcile"
)

func fact(plannedActionID string, quantity float64) *domain.FactAction {
	return &domain.FactAction{ID: "fact-x", PlannedActionID: plannedActionID, Quantity: quantity}
}

func TestCompletedQuantity(t *testing.T) {
	action := &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10}
	facts := []*domain.FactAction{
		fact("pa-1", 3),
		fact("pa-2", 100),
		fact("pa-1", 4.5),
	}

	assert.InDelta(t, 7.5, reconcile.CompletedQuantity(action, facts), 1e-9)
	assert.Zero(t, reconcile.CompletedQuantity(action, nil))
}

func TestCompletionProgress(t *testing.T) {
	tests := []struct {
		name   string
		action *domain.PlannedAction
		facts  []*domain.FactAction
		want   float64
	}{
		{
			name:   "no facts",
			action: &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10},
			want:   0,
		},
		{
			name:   "half done",
			action: &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10},
			facts:  []*domain.FactAction{fact("pa-1", 5)},
			want:   0.5,
		},
		{
			name:   "overshoot clamps to one",
			action: &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10},
			facts:  []*domain.FactAction{fact("pa-1", 15)},
			want:   1,
		},
		{
			name:   "falls back to task product quantity",
			action: &domain.PlannedAction{ID: "pa-1", StorageTaskProduct: &domain.TaskProduct{Quantity: 4}},
			facts:  []*domain.FactAction{fact("pa-1", 2)},
			want:   0.5,
		},
		{
			name:   "zero quantity incomplete is zero",
			action: &domain.PlannedAction{ID: "pa-1"},
			facts:  []*domain.FactAction{fact("pa-1", 3)},
			want:   0,
		},
		{
			name:   "zero quantity completed is one",
			action: &domain.PlannedAction{ID: "pa-1", IsCompleted: true},
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, reconcile.CompletionProgress(tt.action, tt.facts), 1e-9)
		})
	}
}

func TestIsPartiallyCompleted(t *testing.T) {
	action := &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10}

	assert.False(t, reconcile.IsPartiallyCompleted(action, nil))
	assert.True(t, reconcile.IsPartiallyCompleted(action, []*domain.FactAction{fact("pa-1", 3)}))

	completed := &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10, IsCompleted: true}
	assert.False(t, reconcile.IsPartiallyCompleted(completed, []*domain.FactAction{fact("pa-1", 3)}))

	skipped := &domain.PlannedAction{ID: "pa-1", PlannedQuantity: 10, IsSkipped: true}
	assert.False(t, reconcile.IsPartiallyCompleted(skipped, []*domain.FactAction{fact("pa-1", 3)}))
}

func TestIsAvailableForExecution(t *testing.T) {
	assert.True(t, reconcile.IsAvailableForExecution(&domain.PlannedAction{}))
	assert.False(t, reconcile.IsAvailableForExecution(&domain.PlannedAction{IsCompleted: true}))
	assert.False(t, reconcile.IsAvailableForExecution(&domain.PlannedAction{IsSkipped: true}))
}

func TestIsClickable(t *testing.T) {
	assert.True(t, reconcile.IsClickable(&domain.PlannedAction{}))
	assert.False(t, reconcile.IsClickable(&domain.PlannedAction{IsCompleted: true}))
	assert.False(t, reconcile.IsClickable(&domain.PlannedAction{IsSkipped: true}))
}

// TestCompletionProgressProperty checks that progress stays within
// [0, 1] and never decreases as facts accumulate.
func TestCompletionProgressProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		planned := rapid.Float64Range(0, 100).Draw(rt, "planned")
		action := &domain.PlannedAction{ID: "pa-1", PlannedQuantity: planned}

		n := rapid.IntRange(0, 20).Draw(rt, "facts")
		var facts []*domain.FactAction
		prev := reconcile.CompletionProgress(action, facts)

		for i := 0; i < n; i++ {
			q := rapid.Float64Range(0, 25).Draw(rt, "quantity")
			facts = append(facts, fact("pa-1", q))

			progress := reconcile.CompletionProgress(action, facts)
			if progress < 0 || progress > 1 {
				rt.Fatalf("progress out of range: %v", progress)
			}
			if progress < prev {
				rt.Fatalf("progress decreased from %v to %v", prev, progress)
			}
			prev = progress
		}
	})
}
