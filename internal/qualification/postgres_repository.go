package qualification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores qualification results in the relational
// database. Signals, scores, and actions go into JSONB columns.
type PostgresRepository struct {
	pool dbtx
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("qualification: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithDB(db dbtx) *PostgresRepository {
	return &PostgresRepository{pool: db}
}

// Save inserts one result row.
func (r *PostgresRepository) Save(ctx context.Context, res Result) error {
	signalsJSON, err := json.Marshal(res.BehavioralSignals)
	if err != nil {
		return fmt.Errorf("qualification: marshal signals: %w", err)
	}
	scoresJSON, err := json.Marshal(res.Scores)
	if err != nil {
		return fmt.Errorf("qualification: marshal scores: %w", err)
	}
	actionsJSON, err := json.Marshal(res.Actions)
	if err != nil {
		return fmt.Errorf("qualification: marshal actions: %w", err)
	}

	query := `
		INSERT INTO qualification_results
			(id, contact_id, location_id, success, lead_type, temperature,
			 is_qualified, stage, behavioral_signals, scores, actions, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	if _, err := r.pool.Exec(ctx, query,
		res.ID,
		res.ContactID,
		res.LocationID,
		res.Success,
		string(res.LeadType),
		string(res.Temperature),
		res.IsQualified,
		string(res.QualificationStage),
		signalsJSON,
		scoresJSON,
		actionsJSON,
		res.Error,
		res.CreatedAt,
	); err != nil {
		return fmt.Errorf("qualification: insert failed: %w", err)
	}
	return nil
}

// LatestByContact fetches the newest result for the contact within the
// location.
func (r *PostgresRepository) LatestByContact(ctx context.Context, locationID, contactID string) (*Result, error) {
	query := `
		SELECT id, contact_id, location_id, success, lead_type, temperature,
		       is_qualified, stage, behavioral_signals, scores, actions, error, created_at
		FROM qualification_results
		WHERE location_id = $1 AND contact_id = $2
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.pool.QueryRow(ctx, query, locationID, contactID)

	var (
		res         Result
		leadType    string
		temperature string
		stage       string
		signalsJSON []byte
		scoresJSON  []byte
		actionsJSON []byte
	)
	if err := row.Scan(
		&res.ID,
		&res.ContactID,
		&res.LocationID,
		&res.Success,
		&leadType,
		&temperature,
		&res.IsQualified,
		&stage,
		&signalsJSON,
		&scoresJSON,
		&actionsJSON,
		&res.Error,
		&res.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("qualification: select failed: %w", err)
	}

	res.LeadType = LeadType(leadType)
	res.Temperature = Temperature(temperature)
	res.QualificationStage = Stage(stage)
	if err := json.Unmarshal(signalsJSON, &res.BehavioralSignals); err != nil {
		return nil, fmt.Errorf("qualification: unmarshal signals: %w", err)
	}
	if err := json.Unmarshal(scoresJSON, &res.Scores); err != nil {
		return nil, fmt.Errorf("qualification: unmarshal scores: %w", err)
	}
	if len(actionsJSON) > 0 {
		if err := json.Unmarshal(actionsJSON, &res.Actions); err != nil {
			return nil, fmt.Errorf("qualification: unmarshal actions: %w", err)
		}
	}
	return &res, nil
}
