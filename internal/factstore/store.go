// Package factstore provides the durable persistence layer for fact
// actions, backed by an embedded SQLite database. It implements the
// wizard's FactSaver contract and the read models reconciliation
// consumes.
package factstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" driver
	"github.com/rs/zerolog"

	"github.com/a-simacov/synncore/internal/constants"
	"github.com/a-simacov/synncore/internal/domain"
	synnerrors "github.com/a-simacov/synncore/internal/errors"
)

// schema bootstraps the fact_actions table on open.
const schema = `
CREATE TABLE IF NOT EXISTS fact_actions (
	id                TEXT PRIMARY KEY,
	task_id           TEXT NOT NULL,
	planned_action_id TEXT,
	template_id       TEXT,
	kind              TEXT NOT NULL,
	quantity          REAL NOT NULL DEFAULT 0,
	payload           TEXT NOT NULL,
	started_at        TEXT NOT NULL,
	completed_at      TEXT NOT NULL,
	send_failed       INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_fact_actions_task ON fact_actions (task_id);
CREATE INDEX IF NOT EXISTS idx_fact_actions_planned ON fact_actions (task_id, planned_action_id);
`

// Store is a SQLite-backed fact-action store. Safe for concurrent use;
// database/sql serializes access to the underlying connection pool.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

// Open opens (creating if needed) the database at path and bootstraps
// the schema.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, synnerrors.Wrapf(err, "failed to open fact store at %s", path)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, synnerrors.Wrap(err, "failed to bootstrap fact store schema")
	}

	logger.Debug().Str("path", path).Msg("fact store opened")
	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// payload carries the captured object subset of a fact action. Stored
// as one JSON column: the captured objects are read back whole, never
// queried field-by-field.
type payload struct {
	StorageProduct     *domain.Product     `json:"storage_product,omitempty"`
	StorageTaskProduct *domain.TaskProduct `json:"storage_task_product,omitempty"`
	StoragePallet      *domain.Pallet      `json:"storage_pallet,omitempty"`
	StorageBin         *domain.Bin         `json:"storage_bin,omitempty"`
	PlacementPallet    *domain.Pallet      `json:"placement_pallet,omitempty"`
	PlacementBin       *domain.Bin         `json:"placement_bin,omitempty"`
}

// SaveFactAction durably persists the fact action. Saving an existing
// id replaces the stored row, which is how the send-failed flag is
// recorded after a sync failure.
func (s *Store) SaveFactAction(ctx context.Context, fact *domain.FactAction) error {
	body, err := json.Marshal(payload{
		StorageProduct:     fact.StorageProduct,
		StorageTaskProduct: fact.StorageTaskProduct,
		StoragePallet:      fact.StoragePallet,
		StorageBin:         fact.StorageBin,
		PlacementPallet:    fact.PlacementPallet,
		PlacementBin:       fact.PlacementBin,
	})
	if err != nil {
		return synnerrors.Wrap(err, "failed to encode fact payload")
	}

	query := `INSERT OR REPLACE INTO fact_actions
		(id, task_id, planned_action_id, template_id, kind, quantity, payload, started_at, completed_at, send_failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	sendFailed := 0
	if fact.SendFailed {
		sendFailed = 1
	}

	_, err = s.db.ExecContext(ctx, query,
		fact.ID,
		fact.TaskID,
		fact.PlannedActionID,
		fact.TemplateID,
		fact.Kind.String(),
		fact.Quantity,
		string(body),
		fact.StartedAt.UTC().Format(time.RFC3339Nano),
		fact.CompletedAt.UTC().Format(time.RFC3339Nano),
		sendFailed,
	)
	if err != nil {
		return synnerrors.Wrapf(err, "failed to save fact action %s", fact.ID)
	}

	s.logger.Debug().
		Str("fact_id", fact.ID).
		Str("task_id", fact.TaskID).
		Msg("fact action saved")
	return nil
}

// Get retrieves one fact action by id.
// Returns an error wrapping errors.ErrFactNotFound when absent.
func (s *Store) Get(ctx context.Context, id string) (*domain.FactAction, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, task_id, planned_action_id, template_id, kind, quantity, payload, started_at, completed_at, send_failed
		 FROM fact_actions WHERE id = ?`, id)

	fact, err := scanFact(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", synnerrors.ErrFactNotFound, id)
	}
	if err != nil {
		return nil, synnerrors.Wrapf(err, "failed to load fact action %s", id)
	}
	return fact, nil
}

// ListByTask returns all fact actions of a task ordered by completion
// time (oldest first).
func (s *Store) ListByTask(ctx context.Context, taskID string) ([]*domain.FactAction, error) {
	return s.list(ctx,
		`SELECT id, task_id, planned_action_id, template_id, kind, quantity, payload, started_at, completed_at, send_failed
		 FROM fact_actions WHERE task_id = ? ORDER BY completed_at`, taskID)
}

// ListByPlannedAction returns the fact actions fulfilling one planned
// action, ordered by completion time.
func (s *Store) ListByPlannedAction(ctx context.Context, taskID, plannedActionID string) ([]*domain.FactAction, error) {
	return s.list(ctx,
		`SELECT id, task_id, planned_action_id, template_id, kind, quantity, payload, started_at, completed_at, send_failed
		 FROM fact_actions WHERE task_id = ? AND planned_action_id = ? ORDER BY completed_at`,
		taskID, plannedActionID)
}

// ListSendFailed returns facts whose server push is pending retry.
func (s *Store) ListSendFailed(ctx context.Context, taskID string) ([]*domain.FactAction, error) {
	return s.list(ctx,
		`SELECT id, task_id, planned_action_id, template_id, kind, quantity, payload, started_at, completed_at, send_failed
		 FROM fact_actions WHERE task_id = ? AND send_failed = 1 ORDER BY completed_at`, taskID)
}

// MarkSendFailed flags a fact as pending server-push retry.
// Returns an error wrapping errors.ErrFactNotFound when absent.
func (s *Store) MarkSendFailed(ctx context.Context, id string) error {
	return s.setSendFailed(ctx, id, true)
}

// ClearSendFailed removes the pending-retry flag after a successful
// push. Returns an error wrapping errors.ErrFactNotFound when absent.
func (s *Store) ClearSendFailed(ctx context.Context, id string) error {
	return s.setSendFailed(ctx, id, false)
}

func (s *Store) setSendFailed(ctx context.Context, id string, failed bool) error {
	flag := 0
	if failed {
		flag = 1
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE fact_actions SET send_failed = ? WHERE id = ?`, flag, id)
	if err != nil {
		return synnerrors.Wrapf(err, "failed to update send flag for fact %s", id)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", synnerrors.ErrFactNotFound, id)
	}

	s.logger.Debug().
		Str("fact_id", id).
		Bool("send_failed", failed).
		Msg("fact send flag updated")
	return nil
}

// DeleteByTask removes all fact actions of a task. This is the
// task-level cleanup path; individual facts are never deleted.
func (s *Store) DeleteByTask(ctx context.Context, taskID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fact_actions WHERE task_id = ?`, taskID)
	if err != nil {
		return synnerrors.Wrapf(err, "failed to delete facts for task %s", taskID)
	}

	if n, err := res.RowsAffected(); err == nil {
		s.logger.Debug().
			Str("task_id", taskID).
			Int64("deleted", n).
			Msg("task facts deleted")
	}
	return nil
}

// list runs a fact query and scans all rows.
func (s *Store) list(ctx context.Context, query string, args ...any) ([]*domain.FactAction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, synnerrors.Wrap(err, "fact query failed")
	}
	defer func() { _ = rows.Close() }()

	var facts []*domain.FactAction
	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, synnerrors.Wrap(err, "failed to scan fact action")
		}
		facts = append(facts, fact)
	}
	return facts, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFact decodes one fact-action row.
func scanFact(row rowScanner) (*domain.FactAction, error) {
	var (
		fact       domain.FactAction
		kind       string
		body       string
		startedAt  string
		doneAt     string
		sendFailed int
	)

	err := row.Scan(&fact.ID, &fact.TaskID, &fact.PlannedActionID, &fact.TemplateID,
		&kind, &fact.Quantity, &body, &startedAt, &doneAt, &sendFailed)
	if err != nil {
		return nil, err
	}

	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return nil, err
	}
	fact.StorageProduct = p.StorageProduct
	fact.StorageTaskProduct = p.StorageTaskProduct
	fact.StoragePallet = p.StoragePallet
	fact.StorageBin = p.StorageBin
	fact.PlacementPallet = p.PlacementPallet
	fact.PlacementBin = p.PlacementBin

	fact.Kind = constants.ActionKind(kind)
	fact.SendFailed = sendFailed != 0

	if fact.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, err
	}
	if fact.CompletedAt, err = time.Parse(time.RFC3339Nano, doneAt); err != nil {
		return nil, err
	}

	return &fact, nil
}
