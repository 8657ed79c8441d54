package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/a-simacov/synncore/internal/clock"
	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	synnerrors "github.com/a-simacov/synncore/internal/errors"
	"github.com/a-simacov/synncore/internal/savable"
	"github.com/a-simacov/synncore/internal/validation"
)

// boundStep is a template step together with the action side it
// belongs to. The wizard flattens storage steps followed by placement
// steps into one ordered sequence.
type boundStep struct {
	step domain.ActionStep
	side constants.ActionSide
}

// StepValue is one accumulated selection of the session.
type StepValue struct {
	// Step is the step definition that captured the value.
	Step domain.ActionStep

	// Side is the action side the step belongs to.
	Side constants.ActionSide

	// Value is the validated payload. Nil when Skipped.
	Value any

	// Skipped marks a step the user explicitly skipped.
	Skipped bool
}

// Wizard executes one planned action through its template's ordered
// steps. A wizard instance serves exactly one session and is not safe
// for concurrent use: steps are strictly sequential, and only the
// wizard finalizing an action may flip its completion flags.
type Wizard struct {
	logger    zerolog.Logger
	clk       clock.Clock
	plans     PlanProvider
	facts     FactSaver
	sync      SyncPusher
	validator *validation.Engine
	store     *savable.Store
	buffer    *savable.Buffer

	taskID   string
	actionID string
	action   *domain.PlannedAction
	template *domain.ActionTemplate
	steps    []boundStep

	state           constants.WizardState
	stateBeforeExit constants.WizardState
	stepIndex       int
	startedAt       time.Time
	values          []StepValue
	lastFact        *domain.FactAction
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithSyncPusher enables the best-effort server push on completion for
// templates that require it.
func WithSyncPusher(s SyncPusher) Option {
	return func(w *Wizard) {
		w.sync = s
	}
}

// WithClock sets the time source for session timestamps.
func WithClock(clk clock.Clock) Option {
	return func(w *Wizard) {
		w.clk = clk
	}
}

// New creates a wizard in the Loading state. Call Load to fetch the
// planned action and enter the first step.
func New(plans PlanProvider, facts FactSaver, validator *validation.Engine, store *savable.Store, buffer *savable.Buffer, logger zerolog.Logger, opts ...Option) *Wizard {
	w := &Wizard{
		logger:    logger,
		clk:       clock.RealClock{},
		plans:     plans,
		facts:     facts,
		validator: validator,
		store:     store,
		buffer:    buffer,
		state:     constants.WizardStateLoading,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current wizard state.
func (w *Wizard) State() constants.WizardState {
	return w.state
}

// StepIndex returns the zero-based index of the active step.
func (w *Wizard) StepIndex() int {
	return w.stepIndex
}

// StepCount returns the total number of steps of the session.
func (w *Wizard) StepCount() int {
	return len(w.steps)
}

// Selections returns a snapshot of the accumulated step values.
func (w *Wizard) Selections() []StepValue {
	out := make([]StepValue, len(w.values))
	copy(out, w.values)
	return out
}

// LastFact returns the fact action produced on completion, or nil.
func (w *Wizard) LastFact() *domain.FactAction {
	return w.lastFact
}

// Load fetches the planned action and its template and transitions to
// the first step. On any failure the wizard ends in the LoadFailed
// terminal state and the error is returned.
func (w *Wizard) Load(ctx context.Context, taskID, actionID string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.state != constants.WizardStateLoading {
		return fmt.Errorf("%w: load from %s", synnerrors.ErrInvalidTransition, w.state)
	}

	w.taskID = taskID
	w.actionID = actionID

	action, err := w.plans.PlannedAction(ctx, taskID, actionID)
	if err != nil {
		return w.failLoad(synnerrors.Wrapf(err, "failed to load planned action %s", actionID))
	}
	// A completed or skipped action is never selectable for further
	// execution.
	if action.IsCompleted || action.IsSkipped {
		return w.failLoad(fmt.Errorf("%w: action %s already finalized", synnerrors.ErrActionNotExecutable, actionID))
	}

	taskType, err := w.plans.TaskType(ctx, taskID)
	if err != nil {
		return w.failLoad(synnerrors.Wrapf(err, "failed to load task type for task %s", taskID))
	}

	template := taskType.TemplateByID(action.TemplateID)
	if template == nil {
		return w.failLoad(fmt.Errorf("%w: %s", synnerrors.ErrTemplateNotFound, action.TemplateID))
	}

	steps := flattenSteps(template)
	if len(steps) == 0 {
		return w.failLoad(fmt.Errorf("%w: template %s declares no steps", synnerrors.ErrTemplateInvalid, template.ID))
	}

	w.action = action
	w.template = template
	w.steps = steps
	w.stepIndex = 0
	w.startedAt = w.clk.Now().UTC()

	w.logger.Info().
		Str("task_id", taskID).
		Str("action_id", actionID).
		Str("template_id", template.ID).
		Int("step_count", len(steps)).
		Msg("wizard loaded")

	return w.transition(constants.WizardStateStepActive, "plan loaded")
}

// CurrentStep returns the active step and its side. The boolean is
// false outside StepActive.
func (w *Wizard) CurrentStep() (domain.ActionStep, constants.ActionSide, bool) {
	if w.state != constants.WizardStateStepActive || w.stepIndex >= len(w.steps) {
		return domain.ActionStep{}, "", false
	}
	bound := w.steps[w.stepIndex]
	return bound.step, bound.side, true
}

// PlanObjectsForCurrentStep returns the plan objects the active step's
// from-plan rule would accept. Empty outside StepActive. Hosts use this
// to resolve scanned codes against the plan before submission.
func (w *Wizard) PlanObjectsForCurrentStep() []any {
	step, side, ok := w.CurrentStep()
	if !ok {
		return nil
	}
	return w.action.PlanObjects(side, step.ObjectType)
}

// Prefill returns an auto-fill candidate for the active step: the most
// recent matching object from the savable store, falling back to the
// cross-action buffer. Steps flagged AlwaysPrompt never prefill.
func (w *Wizard) Prefill() (any, bool) {
	step, _, ok := w.CurrentStep()
	if !ok || step.AlwaysPrompt {
		return nil, false
	}

	if obj, found := w.store.ObjectByType(step.ObjectType); found {
		return obj.Data.Value(), true
	}
	if item, found := w.buffer.LastByType(step.ObjectType); found {
		return item.Data.Value(), true
	}
	return nil, false
}

// Submit validates the candidate value for the active step. On
// validation failure the wizard stays on the step and the result
// carries the displayable message. On success the value is recorded,
// optionally persisted into the savable store and buffer, and the
// wizard advances to the next step or to the summary.
//
// The returned error is non-nil only for contract violations or when
// called outside StepActive.
func (w *Wizard) Submit(ctx context.Context, value any) (validation.Result, error) {
	select {
	case <-ctx.Done():
		return validation.Result{}, ctx.Err()
	default:
	}

	step, side, ok := w.CurrentStep()
	if !ok {
		return validation.Result{}, fmt.Errorf("%w: state %s", synnerrors.ErrNoActiveStep, w.state)
	}

	vctx := validation.Context{
		constants.ContextKeyPlanObjects: w.action.PlanObjects(side, step.ObjectType),
	}

	result, err := w.validator.Validate(step.Rule, value, vctx)
	if err != nil {
		return validation.Result{}, synnerrors.Wrapf(err, "step %s validation", step.Name)
	}
	if !result.Valid {
		w.logger.Debug().
			Str("action_id", w.actionID).
			Str("step_name", step.Name).
			Str("message", result.ErrorMessage).
			Msg("step value rejected")
		return result, nil
	}

	w.values = append(w.values, StepValue{Step: step, Side: side, Value: value})

	if step.SaveToStore {
		source := w.actionID + "/" + step.Name
		w.store.AddObject(step.ObjectType, value, source)
		w.buffer.Add(step.ObjectType, value, source)
	}

	return result, w.advance()
}

// Skip advances past the active step without validation and without
// storing a value. Only steps flagged CanSkip may be skipped.
func (w *Wizard) Skip(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	step, side, ok := w.CurrentStep()
	if !ok {
		return fmt.Errorf("%w: state %s", synnerrors.ErrNoActiveStep, w.state)
	}
	if !step.CanSkip {
		return fmt.Errorf("%w: %s", synnerrors.ErrStepNotSkippable, step.Name)
	}

	w.logger.Info().
		Str("action_id", w.actionID).
		Str("step_name", step.Name).
		Msg("step skipped")

	w.values = append(w.values, StepValue{Step: step, Side: side, Skipped: true})
	return w.advance()
}

// RequestExit moves to the exit confirmation, remembering where to
// return if the user cancels.
func (w *Wizard) RequestExit() error {
	if w.state != constants.WizardStateStepActive && w.state != constants.WizardStateSummary {
		return fmt.Errorf("%w: exit from %s", synnerrors.ErrInvalidTransition, w.state)
	}
	w.stateBeforeExit = w.state
	return w.transition(constants.WizardStateExitConfirm, "exit requested")
}

// CancelExit returns to the state the user was in before requesting
// exit.
func (w *Wizard) CancelExit() error {
	if w.state != constants.WizardStateExitConfirm {
		return fmt.Errorf("%w: cancel exit from %s", synnerrors.ErrInvalidTransition, w.state)
	}
	return w.transition(w.stateBeforeExit, "exit canceled")
}

// ConfirmExit aborts the session. No fact action is created. Savable
// store entries added during this run are NOT rolled back: they
// represent real user input and remain available to later actions.
func (w *Wizard) ConfirmExit(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if w.state != constants.WizardStateExitConfirm {
		return fmt.Errorf("%w: abort from %s", synnerrors.ErrInvalidTransition, w.state)
	}

	w.logger.Info().
		Str("task_id", w.taskID).
		Str("action_id", w.actionID).
		Int("step_index", w.stepIndex).
		Msg("wizard aborted")

	return w.transition(constants.WizardStateAborted, "aborted by user")
}

// Confirm finalizes the session from the summary: it builds the fact
// action, persists it durably, marks the planned action completed and,
// for templates that require it, attempts a best-effort server push.
//
// If the durable save fails the wizard stays in Summary with all
// accumulated values intact, and the returned error wraps
// errors.ErrFactSaveFailed so the host can offer a retry. A sync-push
// failure only sets the fact's SendFailed flag.
func (w *Wizard) Confirm(ctx context.Context) (*domain.FactAction, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if w.state != constants.WizardStateSummary {
		return nil, fmt.Errorf("%w: confirm from %s", synnerrors.ErrInvalidTransition, w.state)
	}

	fact := w.buildFact()

	if err := w.facts.SaveFactAction(ctx, fact); err != nil {
		w.logger.Error().
			Err(err).
			Str("fact_id", fact.ID).
			Msg("durable fact save failed, session stays open for retry")
		return nil, fmt.Errorf("%w: %v", synnerrors.ErrFactSaveFailed, err)
	}

	// Single-writer: only the wizard finalizing this action flips its
	// completion flag.
	w.action.IsCompleted = true

	if err := w.transition(constants.WizardStateCompleted, "fact action persisted"); err != nil {
		return nil, err
	}

	w.pushFact(ctx, fact)
	w.lastFact = fact

	w.logger.Info().
		Str("task_id", w.taskID).
		Str("action_id", w.actionID).
		Str("fact_id", fact.ID).
		Bool("send_failed", fact.SendFailed).
		Msg("wizard completed")

	return fact, nil
}

// advance moves to the next step or to the summary.
func (w *Wizard) advance() error {
	if w.stepIndex+1 < len(w.steps) {
		w.stepIndex++
		return w.transition(constants.WizardStateStepActive, "step advanced")
	}
	return w.transition(constants.WizardStateSummary, "all steps done")
}

// failLoad records a load failure and returns the causing error.
func (w *Wizard) failLoad(cause error) error {
	w.logger.Error().
		Err(cause).
		Str("task_id", w.taskID).
		Str("action_id", w.actionID).
		Msg("wizard load failed")

	if err := w.transition(constants.WizardStateLoadFailed, cause.Error()); err != nil {
		return err
	}
	return cause
}

// transition validates and applies a state transition.
func (w *Wizard) transition(to constants.WizardState, reason string) error {
	if !IsValidTransition(w.state, to) {
		return fmt.Errorf("%w: cannot transition from %s to %s",
			synnerrors.ErrInvalidTransition, w.state, to)
	}

	w.logger.Debug().
		Str("from", w.state.String()).
		Str("to", to.String()).
		Str("reason", reason).
		Msg("wizard transition")

	w.state = to
	return nil
}

// buildFact assembles the fact action from the accumulated selections.
// startedAt is the wizard entry time, completedAt is now.
func (w *Wizard) buildFact() *domain.FactAction {
	fact := &domain.FactAction{
		ID:              generateFactID(),
		TaskID:          w.taskID,
		PlannedActionID: w.action.ID,
		TemplateID:      w.template.ID,
		Kind:            w.action.Kind,
		StartedAt:       w.startedAt,
		CompletedAt:     w.clk.Now().UTC(),
	}

	quantitySet := false
	for _, sv := range w.values {
		if sv.Skipped {
			continue
		}
		switch sv.Side {
		case constants.ActionSideStorage:
			switch v := sv.Value.(type) {
			case domain.Pallet:
				fact.StoragePallet = &v
			case domain.Bin:
				fact.StorageBin = &v
			case domain.TaskProduct:
				fact.StorageTaskProduct = &v
				if !quantitySet {
					fact.Quantity = v.Quantity
				}
			case domain.Product:
				fact.StorageProduct = &v
			case float64:
				fact.Quantity = v
				quantitySet = true
			}
		case constants.ActionSidePlacement:
			switch v := sv.Value.(type) {
			case domain.Pallet:
				fact.PlacementPallet = &v
			case domain.Bin:
				fact.PlacementBin = &v
			}
		}
	}

	if fact.Quantity == 0 && !quantitySet {
		fact.Quantity = w.action.EffectiveQuantity()
	}

	return fact
}

// pushFact performs the best-effort server push for templates that
// require synchronization. Failure flags the fact for retry; the
// follow-up save of the flag is itself best-effort.
func (w *Wizard) pushFact(ctx context.Context, fact *domain.FactAction) {
	if !w.template.RequiresSync || w.sync == nil {
		return
	}

	if err := w.sync.PushFactAction(ctx, fact, w.template.SyncEndpoint); err != nil {
		w.logger.Warn().
			Err(err).
			Str("fact_id", fact.ID).
			Str("endpoint", w.template.SyncEndpoint).
			Msg("fact sync push failed, flagged for retry")

		fact.SendFailed = true
		if saveErr := w.facts.SaveFactAction(ctx, fact); saveErr != nil {
			w.logger.Warn().
				Err(saveErr).
				Str("fact_id", fact.ID).
				Msg("failed to record send-failed flag")
		}
	}
}

// flattenSteps orders the template's steps: storage side first, then
// placement side.
func flattenSteps(template *domain.ActionTemplate) []boundStep {
	steps := make([]boundStep, 0, template.StepCount())
	for _, s := range template.StorageSteps {
		steps = append(steps, boundStep{step: s, side: constants.ActionSideStorage})
	}
	for _, s := range template.PlacementSteps {
		steps = append(steps, boundStep{step: s, side: constants.ActionSidePlacement})
	}
	return steps
}

// generateFactID creates a unique fact-action ID.
// Format: fact-{uuid8} (e.g. fact-a1b2c3d4)
func generateFactID() string {
	return "fact-" + uuid.New().String()[:8]
}
