package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
)

func TestProductMatches(t *testing.T) {
	p := domain.Product{ID: "prod-1", Article: "ART-100", Name: "Bolts"}

	assert.True(t, p.Matches("prod-1"))
	assert.True(t, p.Matches("PROD-1"))
	assert.True(t, p.Matches("art-100"))
	assert.False(t, p.Matches("Bolts"))
	assert.False(t, p.Matches(""))
}

func TestProductEqualIgnoresDisplayFields(t *testing.T) {
	a := domain.Product{ID: "prod-1", Article: "ART-100", Name: "Bolts"}
	b := domain.Product{ID: "prod-1", Article: "ART-100", Name: "Bolts (renamed)"}

	assert.True(t, a.Equal(b))
}

func TestPalletEqualIgnoresClosedFlag(t *testing.T) {
	a := domain.Pallet{Code: "P-01"}
	b := domain.Pallet{Code: "P-01", IsClosed: true}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(domain.Pallet{Code: "P-02"}))
}

func TestNewSavableObjectData(t *testing.T) {
	tests := []struct {
		name string
		t    constants.ObjectType
		raw  any
		ok   bool
	}{
		{"pallet", constants.ObjectTypePallet, domain.Pallet{Code: "P-01"}, true},
		{"bin", constants.ObjectTypeBin, domain.Bin{Code: "A01"}, true},
		{"task product", constants.ObjectTypeTaskProduct, domain.TaskProduct{ID: "tp-1"}, true},
		{"classifier product", constants.ObjectTypeClassifierProduct, domain.Product{ID: "prod-1"}, true},
		{"quantity is not savable", constants.ObjectTypeQuantity, 5.0, false},
		{"mismatched payload", constants.ObjectTypePallet, domain.Bin{Code: "A01"}, false},
		{"nil payload", constants.ObjectTypeBin, nil, false},
		{"string payload", constants.ObjectTypeBin, "A01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ok := domain.NewSavableObjectData(tt.t, tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, data)
				assert.Equal(t, tt.t, data.ObjectType())
				assert.Equal(t, tt.raw, data.Value())
			} else {
				assert.Nil(t, data)
			}
		})
	}
}

func TestObjectsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"same bin", domain.Bin{Code: "A01", Zone: "Z1"}, domain.Bin{Code: "A01"}, true},
		{"different bin", domain.Bin{Code: "A01"}, domain.Bin{Code: "A02"}, false},
		{"bin vs pallet same code", domain.Bin{Code: "A01"}, domain.Pallet{Code: "A01"}, false},
		{"same product different name", domain.Product{ID: "p1", Name: "x"}, domain.Product{ID: "p1", Name: "y"}, true},
		{"same task product", domain.TaskProduct{ID: "tp1", Product: domain.Product{ID: "p1"}}, domain.TaskProduct{ID: "tp1", Product: domain.Product{ID: "p1"}, Quantity: 3}, true},
		{"nil left", nil, domain.Bin{Code: "A01"}, false},
		{"nil right", domain.Bin{Code: "A01"}, nil, false},
		{"unknown types deep equal", "abc", "abc", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ObjectsEqual(tt.a, tt.b))
		})
	}
}

func TestEffectiveQuantity(t *testing.T) {
	tp := &domain.TaskProduct{ID: "tp-1", Quantity: 7}

	tests := []struct {
		name   string
		action domain.PlannedAction
		want   float64
	}{
		{"explicit planned quantity wins", domain.PlannedAction{PlannedQuantity: 12, StorageTaskProduct: tp}, 12},
		{"falls back to task product", domain.PlannedAction{StorageTaskProduct: tp}, 7},
		{"zero without either", domain.PlannedAction{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.EffectiveQuantity())
		})
	}
}

func TestPlanObjects(t *testing.T) {
	product := domain.Product{ID: "prod-1", Article: "ART-100"}
	action := domain.PlannedAction{
		StorageTaskProduct: &domain.TaskProduct{ID: "tp-1", Product: product, Quantity: 5},
		StorageBin:         &domain.Bin{Code: "A01"},
		PlacementBin:       &domain.Bin{Code: "B02"},
		PlacementPallet:    &domain.Pallet{Code: "P-01"},
	}

	storageBins := action.PlanObjects(constants.ActionSideStorage, constants.ObjectTypeBin)
	require.Len(t, storageBins, 1)
	assert.Equal(t, domain.Bin{Code: "A01"}, storageBins[0])

	placementBins := action.PlanObjects(constants.ActionSidePlacement, constants.ObjectTypeBin)
	require.Len(t, placementBins, 1)
	assert.Equal(t, domain.Bin{Code: "B02"}, placementBins[0])

	// The classifier lookup also surfaces the task product's product.
	products := action.PlanObjects(constants.ActionSideStorage, constants.ObjectTypeClassifierProduct)
	require.Len(t, products, 1)
	assert.Equal(t, product, products[0])

	// No storage pallet is planned.
	assert.Empty(t, action.PlanObjects(constants.ActionSideStorage, constants.ObjectTypePallet))
}

func TestTaskTypeTemplateByID(t *testing.T) {
	tt := domain.TaskType{
		Templates: []domain.ActionTemplate{
			{ID: "tpl-a"},
			{ID: "tpl-b"},
		},
	}

	require.NotNil(t, tt.TemplateByID("tpl-b"))
	assert.Equal(t, "tpl-b", tt.TemplateByID("tpl-b").ID)
	assert.Nil(t, tt.TemplateByID("tpl-missing"))
}

func TestActionTemplateClone(t *testing.T) {
	original := &domain.ActionTemplate{
		ID: "tpl-1",
		StorageSteps: []domain.ActionStep{
			{Name: "scan", Rule: domain.ValidationRule{
				Items: []domain.ValidationRuleItem{{Kind: constants.RuleKindNotEmpty, ErrorMessage: "m"}},
			}},
		},
	}

	clone := original.Clone()
	clone.StorageSteps[0].Name = "changed"
	clone.StorageSteps[0].Rule.Items[0].ErrorMessage = "changed"

	assert.Equal(t, "scan", original.StorageSteps[0].Name)
	assert.Equal(t, "m", original.StorageSteps[0].Rule.Items[0].ErrorMessage)
}
