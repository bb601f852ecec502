package audit

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("submission not found")

type Record struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	Producer      string    `json:"producer"`
	Flow          string    `json:"flow"`
	CorrelationID string    `json:"correlation_id"`
	Status        string    `json:"status"`
	Message       string    `json:"message"`
	ErrorKind     string    `json:"error_kind,omitempty"`
	ErrorDetail   string    `json:"error_detail,omitempty"`
	HTTPStatus    int       `json:"http_status,omitempty"`
	DurationMS    int64     `json:"duration_ms"`
	OccurredAt    time.Time `json:"occurred_at"`
	RecordedAt    time.Time `json:"recorded_at"`
}

type Repo struct{ DB *pgxpool.Pool }

// Insert is idempotent on event_id. inserted=false berarti event sudah pernah dicatat.
func (r *Repo) Insert(ctx context.Context, rec Record) (inserted bool, err error) {
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO submission_audit(event_id, event_type, producer, flow, correlation_id,
			status, message, error_kind, error_detail, http_status, duration_ms, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (event_id) DO NOTHING`,
		rec.EventID, rec.EventType, rec.Producer, rec.Flow, rec.CorrelationID,
		rec.Status, rec.Message, rec.ErrorKind, rec.ErrorDetail, rec.HTTPStatus, rec.DurationMS, rec.OccurredAt,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() == 1, nil
}

const selectCols = `event_id, event_type, producer, flow, correlation_id, status, message,
	error_kind, error_detail, http_status, duration_ms, occurred_at, recorded_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.EventID, &rec.EventType, &rec.Producer, &rec.Flow, &rec.CorrelationID,
		&rec.Status, &rec.Message, &rec.ErrorKind, &rec.ErrorDetail, &rec.HTTPStatus,
		&rec.DurationMS, &rec.OccurredAt, &rec.RecordedAt)
	return rec, err
}

func (r *Repo) Get(ctx context.Context, eventID string) (Record, error) {
	rec, err := scanRecord(r.DB.QueryRow(ctx, `SELECT `+selectCols+` FROM submission_audit WHERE event_id=$1`, eventID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx, `SELECT `+selectCols+` FROM submission_audit
		ORDER BY occurred_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
