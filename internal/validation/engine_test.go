package validation_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	synnerrors "github.com/a-simacov/synncore/internal/errors"
	"github.com/a-simacov/synncore/internal/validation"
)

func newTestEngine() *validation.Engine {
	return validation.NewEngine(zerolog.Nop())
}

func planContext(objects ...any) validation.Context {
	return validation.Context{
		constants.ContextKeyPlanObjects: objects,
	}
}

func TestValidate_EmptyRulePasses(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Validate(domain.ValidationRule{Name: "empty"}, "anything", nil)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.ErrorMessage)
}

func TestValidate_ItemsEvaluatedInOrder(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Name: "ordered",
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindNotEmpty, ErrorMessage: "first failed"},
			{Kind: constants.RuleKindMatchesRegex, Parameter: "^A", ErrorMessage: "second failed"},
		},
	}

	// Empty string fails the first item; the second never runs.
	result, err := engine.Validate(rule, "", nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "first failed", result.ErrorMessage)

	// Non-empty string passes the first, fails the second.
	result, err = engine.Validate(rule, "B99", nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "second failed", result.ErrorMessage)

	// Matching value passes both.
	result, err = engine.Validate(rule, "A01", nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestValidate_UnknownRuleKind(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Name: "bad",
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKind("teleport"), ErrorMessage: "nope"},
		},
	}

	_, err := engine.Validate(rule, "x", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, synnerrors.ErrUnknownRuleKind)
}

func TestValidate_FromPlan(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Name: "bin-from-plan",
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindFromPlan, ErrorMessage: "bin is not on the plan"},
		},
	}
	planned := domain.Bin{Code: "A01", Zone: "Z1"}

	tests := []struct {
		name  string
		value any
		vctx  validation.Context
		valid bool
	}{
		{
			name:  "matching bin passes",
			value: domain.Bin{Code: "A01"},
			vctx:  planContext(planned),
			valid: true,
		},
		{
			name:  "wrong code fails",
			value: domain.Bin{Code: "Z99"},
			vctx:  planContext(planned),
			valid: false,
		},
		{
			name:  "nil value fails",
			value: nil,
			vctx:  planContext(planned),
			valid: false,
		},
		{
			name:  "empty plan fails",
			value: domain.Bin{Code: "A01"},
			vctx:  planContext(),
			valid: false,
		},
		{
			// A pallet with the same code must never satisfy a bin plan.
			name:  "cross-type code coincidence fails",
			value: domain.Pallet{Code: "A01"},
			vctx:  planContext(planned),
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Validate(rule, tt.value, tt.vctx)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, "bin is not on the plan", result.ErrorMessage)
			}
		})
	}
}

func TestValidate_FromPlanMissingContextKey(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Name: "needs-plan",
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindFromPlan, ErrorMessage: "not on plan"},
		},
	}

	_, err := engine.Validate(rule, domain.Bin{Code: "A01"}, validation.Context{})

	require.Error(t, err)
	assert.ErrorIs(t, err, synnerrors.ErrMissingContextKey)
}

func TestValidate_FromPlanMistypedContextKey(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindFromPlan, ErrorMessage: "not on plan"},
		},
	}
	vctx := validation.Context{
		constants.ContextKeyPlanObjects: "not a slice",
	}

	_, err := engine.Validate(rule, domain.Bin{Code: "A01"}, vctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, synnerrors.ErrMissingContextKey)
}

func TestValidate_NotEmpty(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindNotEmpty, ErrorMessage: "value required"},
		},
	}

	tests := []struct {
		name  string
		value any
		valid bool
	}{
		{"nil fails", nil, false},
		{"empty string fails", "", false},
		{"blank-ish string passes", " ", true},
		{"non-empty string passes", "A01", true},
		{"empty slice fails", []string{}, false},
		{"non-empty slice passes", []string{"x"}, true},
		{"empty map fails", map[string]int{}, false},
		{"zero number passes", 0, true},
		{"struct passes", domain.Bin{Code: "A01"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := engine.Validate(rule, tt.value, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidate_MatchesRegex(t *testing.T) {
	engine := newTestEngine()

	tests := []struct {
		name    string
		pattern string
		value   any
		valid   bool
	}{
		{"matching string passes", `^[A-Z]\d{2}$`, "A01", true},
		{"non-matching string fails", `^[A-Z]\d{2}$`, "1234", false},
		{"non-string value fails", `^.*$`, 42, false},
		{"blank pattern fails", "", "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := domain.ValidationRule{
				Items: []domain.ValidationRuleItem{
					{Kind: constants.RuleKindMatchesRegex, Parameter: tt.pattern, ErrorMessage: "bad format"},
				},
			}

			result, err := engine.Validate(rule, tt.value, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}

func TestValidate_MatchesRegexMalformedPattern(t *testing.T) {
	engine := newTestEngine()
	rule := domain.ValidationRule{
		Items: []domain.ValidationRuleItem{
			{Kind: constants.RuleKindMatchesRegex, Parameter: "([unclosed", ErrorMessage: "bad format"},
		},
	}

	// A malformed pattern is a validation failure with a diagnostic, not
	// an error and not a panic.
	result, err := engine.Validate(rule, "A01", nil)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.ErrorMessage, "invalid validation pattern")
	assert.Contains(t, result.ErrorMessage, "([unclosed")
}
