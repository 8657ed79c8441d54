// Package domain provides shared domain types for the synncore
// task-execution core. These types are used across all internal
// packages to ensure consistent data structures.
//
// This package follows strict import rules:
//   - CAN import: internal/constants, internal/errors, standard library
//   - MUST NOT import: any other internal packages
//
// All JSON field names use snake_case.
package domain

import (
	"reflect"
	"strings"

	"github.com/a-simacov/synncore/internal/constants"
)

// Product is a classifier (catalog) product. It is identified by its
// backend id or its article number; either may be scanned.
type Product struct {
	// ID is the backend classifier identifier.
	ID string `json:"id"`

	// Article is the human-facing article number.
	Article string `json:"article,omitempty"`

	// Name is the display name.
	Name string `json:"name,omitempty"`
}

// Equal reports whether two products denote the same classifier entry.
// Identity is carried by id and article only; display fields are
// ignored so that a stale name never breaks plan matching.
func (p Product) Equal(other Product) bool {
	return p.ID == other.ID && p.Article == other.Article
}

// Matches reports whether the given scan value equals the product's id
// or article, case-insensitively.
func (p Product) Matches(value string) bool {
	return strings.EqualFold(p.ID, value) || strings.EqualFold(p.Article, value)
}

// TaskProduct is a product bound to a task's plan with its quantity.
type TaskProduct struct {
	// ID is the task-scoped identifier of this plan line.
	ID string `json:"id"`

	// Product is the underlying classifier product.
	Product Product `json:"product"`

	// Quantity is the planned quantity for this line.
	Quantity float64 `json:"quantity"`
}

// Equal reports whether two task products denote the same plan line.
func (tp TaskProduct) Equal(other TaskProduct) bool {
	return tp.ID == other.ID && tp.Product.Equal(other.Product)
}

// Pallet is a movable carrier identified by its code.
type Pallet struct {
	// Code is the scanned pallet code.
	Code string `json:"code"`

	// IsClosed marks a pallet that accepts no further placements.
	IsClosed bool `json:"is_closed,omitempty"`
}

// Equal reports whether two pallets carry the same code. The closed
// flag is mutable state and intentionally excluded.
func (p Pallet) Equal(other Pallet) bool {
	return p.Code == other.Code
}

// Bin is a fixed storage location identified by its code.
type Bin struct {
	// Code is the scanned bin code.
	Code string `json:"code"`

	// Zone is the warehouse zone the bin belongs to.
	Zone string `json:"zone,omitempty"`
}

// Equal reports whether two bins carry the same code.
func (b Bin) Equal(other Bin) bool {
	return b.Code == other.Code
}

// SavableObjectData is a closed variant over the payload types that can
// be remembered across wizard steps: pallet, bin, task product and
// classifier product. A bare quantity is deliberately not savable.
//
// The interface is sealed; only the four variants in this package
// implement it. Conversion from untyped data goes through
// NewSavableObjectData, which returns false instead of panicking when
// the payload's concrete type does not match the requested tag.
type SavableObjectData interface {
	// ObjectType returns the type tag of the payload.
	ObjectType() constants.ObjectType

	// Value returns the raw payload for submission into a step.
	Value() any

	sealed()
}

// PalletData wraps a pallet payload.
type PalletData struct {
	Pallet Pallet `json:"pallet"`
}

// ObjectType returns ObjectTypePallet.
func (d PalletData) ObjectType() constants.ObjectType { return constants.ObjectTypePallet }

// Value returns the wrapped pallet.
func (d PalletData) Value() any { return d.Pallet }

func (d PalletData) sealed() {}

// BinData wraps a bin payload.
type BinData struct {
	Bin Bin `json:"bin"`
}

// ObjectType returns ObjectTypeBin.
func (d BinData) ObjectType() constants.ObjectType { return constants.ObjectTypeBin }

// Value returns the wrapped bin.
func (d BinData) Value() any { return d.Bin }

func (d BinData) sealed() {}

// TaskProductData wraps a task-bound product payload.
type TaskProductData struct {
	TaskProduct TaskProduct `json:"task_product"`
}

// ObjectType returns ObjectTypeTaskProduct.
func (d TaskProductData) ObjectType() constants.ObjectType { return constants.ObjectTypeTaskProduct }

// Value returns the wrapped task product.
func (d TaskProductData) Value() any { return d.TaskProduct }

func (d TaskProductData) sealed() {}

// ProductData wraps a classifier product payload.
type ProductData struct {
	Product Product `json:"product"`
}

// ObjectType returns ObjectTypeClassifierProduct.
func (d ProductData) ObjectType() constants.ObjectType { return constants.ObjectTypeClassifierProduct }

// Value returns the wrapped product.
func (d ProductData) Value() any { return d.Product }

func (d ProductData) sealed() {}

// NewSavableObjectData converts raw step data into the typed variant
// matching the requested type tag. It returns false when the tag is not
// a savable type (e.g. quantity) or when the payload's concrete type
// does not match what the tag declares. Callers must check the boolean
// rather than rely on panics.
func NewSavableObjectData(t constants.ObjectType, raw any) (SavableObjectData, bool) {
	switch t {
	case constants.ObjectTypePallet:
		if p, ok := raw.(Pallet); ok {
			return PalletData{Pallet: p}, true
		}
	case constants.ObjectTypeBin:
		if b, ok := raw.(Bin); ok {
			return BinData{Bin: b}, true
		}
	case constants.ObjectTypeTaskProduct:
		if tp, ok := raw.(TaskProduct); ok {
			return TaskProductData{TaskProduct: tp}, true
		}
	case constants.ObjectTypeClassifierProduct:
		if p, ok := raw.(Product); ok {
			return ProductData{Product: p}, true
		}
	}
	return nil, false
}

// ObjectsEqual reports whether two candidate objects are the same
// warehouse object. The check requires exact dynamic type identity
// first, guarding against cross-type coincidental equality, and then
// compares identity-bearing fields per variant. Unknown types fall back
// to deep structural equality.
func ObjectsEqual(a, b any) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	switch av := a.(type) {
	case Pallet:
		return av.Equal(b.(Pallet))
	case Bin:
		return av.Equal(b.(Bin))
	case Product:
		return av.Equal(b.(Product))
	case TaskProduct:
		return av.Equal(b.(TaskProduct))
	default:
		return reflect.DeepEqual(a, b)
	}
}
