package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	"github.com/a-simacov/synncore/internal/savable"
)

// RemoteSearcher is the external collaborator performing server-side
// lookups. Retry policy is up to the implementation.
type RemoteSearcher interface {
	// Search returns the ids of planned actions matching the value on
	// the given field. A transport/HTTP failure is returned as an error.
	Search(ctx context.Context, taskID, searchValue string, field constants.SearchFieldKind) ([]string, error)
}

// RemoteFailureMode selects how a failing remote descriptor affects the
// overall search.
type RemoteFailureMode string

// Remote failure modes.
const (
	// RemoteFailureIgnore makes a failing remote descriptor contribute
	// zero matches; the search continues. This reproduces the observed
	// reference behavior.
	RemoteFailureIgnore RemoteFailureMode = "ignore"

	// RemoteFailureFail aborts the whole search with an Error result on
	// the first remote failure.
	RemoteFailureFail RemoteFailureMode = "fail"
)

// Engine resolves scan values to planned actions.
type Engine struct {
	remote        RemoteSearcher
	mode          RemoteFailureMode
	remoteTimeout time.Duration
	buffer        *savable.Buffer
	logger        zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithRemoteSearcher sets the remote lookup collaborator. Without one,
// remote descriptors contribute nothing.
func WithRemoteSearcher(r RemoteSearcher) Option {
	return func(e *Engine) {
		e.remote = r
	}
}

// WithRemoteFailureMode sets how remote transport failures are treated.
func WithRemoteFailureMode(mode RemoteFailureMode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithRemoteTimeout bounds the remote fan-out as a whole. Zero means no
// deadline beyond the caller's context.
func WithRemoteTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.remoteTimeout = d
	}
}

// WithBuffer enables caching of locally matched objects into the
// quick-recall buffer for descriptors that request it.
func WithBuffer(b *savable.Buffer) Option {
	return func(e *Engine) {
		e.buffer = b
	}
}

// NewEngine creates a search engine.
func NewEngine(logger zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{
		mode:   RemoteFailureIgnore,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SearchActions resolves searchValue to planned actions of the task.
//
// A blank value and a task type without searchable fields both yield an
// Error result. Local descriptors are scanned against the plan first;
// remote-eligible descriptors with a non-blank endpoint then fan out
// concurrently. Matches are unioned preserving local-before-remote
// order with duplicates collapsed on first occurrence.
func (e *Engine) SearchActions(ctx context.Context, task *domain.Task, searchValue string) Result {
	if strings.TrimSpace(searchValue) == "" {
		return Error("search value is empty")
	}
	if task == nil {
		return Error("no task to search")
	}

	fields := task.Type.SearchFields
	if len(fields) == 0 {
		return Error(fmt.Sprintf("search is not configured for task type %q", task.Type.ID))
	}

	var local, remote []domain.SearchableField
	for _, f := range fields {
		if f.Remote {
			remote = append(remote, f)
		} else {
			local = append(local, f)
		}
	}

	var ids []string
	seen := make(map[string]struct{})
	union := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for _, f := range local {
		for _, matched := range e.searchLocal(task, f, searchValue) {
			union(matched)
		}
	}

	remoteIDs, err := e.searchRemote(ctx, task.ID, remote, searchValue)
	if err != nil {
		return Error(fmt.Sprintf("remote search failed: %v", err))
	}
	for _, id := range remoteIDs {
		union(id)
	}

	switch len(ids) {
	case 0:
		return NotFound(fmt.Sprintf("no actions match %q", searchValue))
	case 1:
		return Single(ids[0])
	default:
		return Multiple(ids)
	}
}

// searchLocal scans the plan for actions whose captured field equals
// the value, case-insensitively. Matched objects are cached into the
// buffer when the descriptor asks for it.
func (e *Engine) searchLocal(task *domain.Task, field domain.SearchableField, value string) []string {
	var matched []string

	for _, action := range task.Actions {
		obj, ok := fieldObject(action, field.Field, value)
		if !ok {
			continue
		}
		matched = append(matched, action.ID)

		if field.CacheToBuffer && e.buffer != nil {
			e.buffer.Add(field.Field.ObjectType(), obj, "search:"+field.Field.String())
		}
	}

	return matched
}

// searchRemote fans out remote-eligible descriptors concurrently and
// returns the unioned ids in descriptor order. Behavior on transport
// failure follows the configured mode. Descriptors with a blank
// endpoint contribute nothing; that is not an error.
func (e *Engine) searchRemote(ctx context.Context, taskID string, fields []domain.SearchableField, value string) ([]string, error) {
	if e.remote == nil {
		return nil, nil
	}

	if e.remoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.remoteTimeout)
		defer cancel()
	}

	type slot struct {
		ids []string
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([]slot, len(fields))
	var mu sync.Mutex

	for i, field := range fields {
		if strings.TrimSpace(field.Endpoint) == "" {
			continue
		}

		g.Go(func() error {
			ids, err := e.remote.Search(gctx, taskID, value, field.Field)
			if err != nil {
				if e.mode == RemoteFailureFail {
					return err
				}
				e.logger.Warn().
					Err(err).
					Str("task_id", taskID).
					Str("field", field.Field.String()).
					Msg("remote search descriptor failed, contributing zero matches")
				return nil
			}

			mu.Lock()
			results[i].ids = ids
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i := range results {
		out = append(out, results[i].ids...)
	}
	return out, nil
}

// fieldObject returns the plan object behind the given field when its
// code/id matches the value case-insensitively.
func fieldObject(action *domain.PlannedAction, field constants.SearchFieldKind, value string) (any, bool) {
	switch field {
	case constants.SearchFieldStorageBin:
		if action.StorageBin != nil && strings.EqualFold(action.StorageBin.Code, value) {
			return *action.StorageBin, true
		}
	case constants.SearchFieldStoragePallet:
		if action.StoragePallet != nil && strings.EqualFold(action.StoragePallet.Code, value) {
			return *action.StoragePallet, true
		}
	case constants.SearchFieldClassifierProduct:
		if action.StorageProduct != nil && action.StorageProduct.Matches(value) {
			return *action.StorageProduct, true
		}
	case constants.SearchFieldTaskProduct:
		if action.StorageTaskProduct != nil && action.StorageTaskProduct.Product.Matches(value) {
			return *action.StorageTaskProduct, true
		}
	case constants.SearchFieldPlacementBin:
		if action.PlacementBin != nil && strings.EqualFold(action.PlacementBin.Code, value) {
			return *action.PlacementBin, true
		}
	case constants.SearchFieldPlacementPallet:
		if action.PlacementPallet != nil && strings.EqualFold(action.PlacementPallet.Code, value) {
			return *action.PlacementPallet, true
		}
	}
	return nil, false
}
