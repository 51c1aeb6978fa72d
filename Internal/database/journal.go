package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Kabroda-Trading/KTBB-APP/Internal/types"
	"github.com/Kabroda-Trading/KTBB-APP/Internal/utils/formatting"
)

// MaxRecentRuns caps a single RecentRuns listing.
const MaxRecentRuns = 200

// ErrJournalMissing is returned when the dmr_runs table does not exist.
var ErrJournalMissing = errors.New("dmr_runs table does not exist")

// Run is one journaled review.
type Run struct {
	ID        uuid.UUID          `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Input     types.EngineInput  `json:"input"`
	Output    types.EngineOutput `json:"output"`
}

func NewRun(in types.EngineInput, out types.EngineOutput) Run {
	return Run{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Input:     in,
		Output:    out,
	}
}

// Journal records computed reviews in Postgres. Safe for concurrent use.
type Journal struct {
	db *sql.DB
}

func NewJournal(db *sql.DB) *Journal {
	return &Journal{db: db}
}

const insertRunSQL = `
	INSERT INTO dmr_runs (id, created_at, input, daily_support, daily_resistance, breakout_trigger, breakdown_trigger, output)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const recentRunsSQL = `
	SELECT id, created_at, input, output
	FROM dmr_runs
	ORDER BY created_at DESC
	LIMIT $1`

// insertArgs returns the insert parameters, prices as one-decimal strings.
func insertArgs(run Run) ([]any, error) {
	inputJSON, err := json.Marshal(run.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode input: %w", err)
	}
	outputJSON, err := json.Marshal(run.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}

	return []any{
		run.ID,
		run.CreatedAt,
		inputJSON,
		formatting.PriceDecimal(run.Output.DailySupport).StringFixed(1),
		formatting.PriceDecimal(run.Output.DailyResistance).StringFixed(1),
		formatting.PriceDecimal(run.Output.BreakoutTrigger).StringFixed(1),
		formatting.PriceDecimal(run.Output.BreakdownTrigger).StringFixed(1),
		outputJSON,
	}, nil
}

func (j *Journal) LogRun(ctx context.Context, run Run) error {
	if j == nil || j.db == nil {
		return fmt.Errorf("journal not initialized")
	}

	args, err := insertArgs(run)
	if err != nil {
		return err
	}

	if _, err := j.db.ExecContext(ctx, insertRunSQL, args...); err != nil {
		return fmt.Errorf("failed to log run %s: %w", run.ID, classify(err))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		inputJSON  []byte
		outputJSON []byte
	)
	if err := row.Scan(&run.ID, &run.CreatedAt, &inputJSON, &outputJSON); err != nil {
		return Run{}, err
	}
	if err := json.Unmarshal(inputJSON, &run.Input); err != nil {
		return Run{}, fmt.Errorf("run %s: bad input json: %w", run.ID, err)
	}
	if err := json.Unmarshal(outputJSON, &run.Output); err != nil {
		return Run{}, fmt.Errorf("run %s: bad output json: %w", run.ID, err)
	}
	return run, nil
}

// ClampLimit bounds a listing size to [1, MaxRecentRuns], using def for
// non-positive values.
func ClampLimit(limit, def int) int {
	if limit <= 0 {
		limit = def
	}
	if limit <= 0 {
		limit = 1
	}
	if limit > MaxRecentRuns {
		limit = MaxRecentRuns
	}
	return limit
}

// RecentRuns lists runs newest first.
func (j *Journal) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if j == nil || j.db == nil {
		return nil, fmt.Errorf("journal not initialized")
	}

	rows, err := j.db.QueryContext(ctx, recentRunsSQL, ClampLimit(limit, MaxRecentRuns))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", classify(err))
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to read run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	return runs, nil
}

// Ping backs the API health check.
func (j *Journal) Ping(ctx context.Context) error {
	if j == nil {
		return HealthCheck(ctx, nil)
	}
	return HealthCheck(ctx, j.db)
}

func (j *Journal) Close() error {
	if j != nil && j.db != nil {
		return j.db.Close()
	}
	return nil
}

// classify maps Postgres errors callers care about onto sentinels.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ErrJournalMissing, pqErr.Message)
	}
	return err
}
