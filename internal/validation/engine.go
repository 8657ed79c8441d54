package validation

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	synnerrors "github.com/a-simacov/synncore/internal/errors"
)

// Engine evaluates validation rules against candidate step values.
// It is stateless and safe for concurrent use.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a validation engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Validate evaluates the rule's items in declared order against the
// candidate value. It short-circuits on the first failing item and
// returns that item's error message; later items are not evaluated.
// A rule with zero items passes.
//
// The returned error is non-nil only for contract violations (missing
// context key, unknown rule kind). Expected validation failures are
// reported through the Result.
func (e *Engine) Validate(rule domain.ValidationRule, value any, vctx Context) (Result, error) {
	for i := range rule.Items {
		item := rule.Items[i]

		res, err := e.evaluateItem(item, value, vctx)
		if err != nil {
			return Result{}, synnerrors.Wrapf(err, "rule %q item %d (%s)", rule.Name, i, item.Kind)
		}
		if !res.Valid {
			e.logger.Debug().
				Str("rule", rule.Name).
				Str("kind", item.Kind.String()).
				Str("message", res.ErrorMessage).
				Msg("validation failed")
			return res, nil
		}
	}

	return Success(), nil
}

// evaluateItem dispatches one rule item to its kind-specific check.
func (e *Engine) evaluateItem(item domain.ValidationRuleItem, value any, vctx Context) (Result, error) {
	switch item.Kind {
	case constants.RuleKindFromPlan:
		return e.checkFromPlan(item, value, vctx)
	case constants.RuleKindNotEmpty:
		return e.checkNotEmpty(item, value), nil
	case constants.RuleKindMatchesRegex:
		return e.checkMatchesRegex(item, value), nil
	default:
		return Result{}, fmt.Errorf("%w: %s", synnerrors.ErrUnknownRuleKind, item.Kind)
	}
}

// checkFromPlan succeeds iff the value is non-nil and appears in the
// context's plan objects via structural equality with exact type match.
// The type identity check guards against cross-type coincidental
// equality (a bin and a pallet sharing a code never match).
func (e *Engine) checkFromPlan(item domain.ValidationRuleItem, value any, vctx Context) (Result, error) {
	raw, ok := vctx[constants.ContextKeyPlanObjects]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", synnerrors.ErrMissingContextKey, constants.ContextKeyPlanObjects)
	}
	planObjects, ok := raw.([]any)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s must hold []any", synnerrors.ErrMissingContextKey, constants.ContextKeyPlanObjects)
	}

	if value == nil {
		return Failure(item.ErrorMessage), nil
	}
	for _, obj := range planObjects {
		if domain.ObjectsEqual(value, obj) {
			return Success(), nil
		}
	}
	return Failure(item.ErrorMessage), nil
}

// checkNotEmpty fails for nil, empty strings and empty
// collections/maps/arrays. Any other non-nil value counts as non-empty.
func (e *Engine) checkNotEmpty(item domain.ValidationRuleItem, value any) Result {
	if value == nil {
		return Failure(item.ErrorMessage)
	}

	switch v := value.(type) {
	case string:
		if v == "" {
			return Failure(item.ErrorMessage)
		}
		return Success()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		if rv.Len() == 0 {
			return Failure(item.ErrorMessage)
		}
	}

	return Success()
}

// checkMatchesRegex fails when the value is not a string, when the
// pattern parameter is blank, or when the string does not match. A
// malformed pattern is reported as a validation failure with a
// diagnostic message; it must never escape as a panic or error.
func (e *Engine) checkMatchesRegex(item domain.ValidationRuleItem, value any) Result {
	s, ok := value.(string)
	if !ok {
		return Failure(item.ErrorMessage)
	}
	if item.Parameter == "" {
		return Failure(item.ErrorMessage)
	}

	re, err := regexp.Compile(item.Parameter)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("pattern", item.Parameter).
			Msg("malformed validation pattern")
		return Failure(fmt.Sprintf("invalid validation pattern %q: %v", item.Parameter, err))
	}

	if !re.MatchString(s) {
		return Failure(item.ErrorMessage)
	}
	return Success()
}
