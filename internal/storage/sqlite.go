// Package storage persists predictions and user feedback in SQLite. The
// feedback rows feed the learning loop, so the store is the system of record
// for coefficient updates across restarts.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ARUNKUMAR069/RescueX/internal/domain"
)

// ErrPredictionNotFound is returned when feedback references a prediction id
// that does not exist.
var ErrPredictionNotFound = errors.New("prediction not found")

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	location    TEXT NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	weather_data TEXT NOT NULL,
	predictions TEXT NOT NULL,
	accuracy    REAL
);

CREATE TABLE IF NOT EXISTS prediction_feedback (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	prediction_id INTEGER NOT NULL REFERENCES predictions(id),
	feedback_type TEXT NOT NULL,
	comments      TEXT,
	accuracy      REAL,
	created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
`

// Store wraps the SQLite connection. A single *sql.DB is safe for concurrent
// use; SQLite serializes writers internally.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// modernc sqlite handles one writer at a time; extra connections only
	// contend on the file lock.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// StoredPrediction is a persisted prediction as served by the history API.
type StoredPrediction struct {
	ID        int64                  `json:"id"`
	Location  string                 `json:"location"`
	CreatedAt time.Time              `json:"created_at"`
	Findings  []domain.HazardFinding `json:"predictions"`
	Accuracy  *float64               `json:"accuracy,omitempty"`
}

// SavePrediction persists one prediction and returns its row id, which
// clients reference when submitting feedback.
func (s *Store) SavePrediction(ctx context.Context, location string, obs domain.Observation, findings []domain.HazardFinding) (int64, error) {
	weatherJSON, err := json.Marshal(obs)
	if err != nil {
		return 0, fmt.Errorf("marshal observation: %w", err)
	}
	findingsJSON, err := json.Marshal(findings)
	if err != nil {
		return 0, fmt.Errorf("marshal findings: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (location, weather_data, predictions) VALUES (?, ?, ?)`,
		location, string(weatherJSON), string(findingsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert prediction: %w", err)
	}
	return res.LastInsertId()
}

// RecentPredictions returns the newest predictions as feedback records for
// the learning loop. Rows without accuracy are included; the coefficient
// update skips them but they count toward nothing.
func (s *Store) RecentPredictions(ctx context.Context, limit int) ([]domain.FeedbackRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT predictions, accuracy FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent predictions: %w", err)
	}
	defer rows.Close()

	var records []domain.FeedbackRecord
	for rows.Next() {
		var findingsJSON string
		var accuracy sql.NullFloat64
		if err := rows.Scan(&findingsJSON, &accuracy); err != nil {
			return nil, fmt.Errorf("scan prediction row: %w", err)
		}

		var record domain.FeedbackRecord
		if err := json.Unmarshal([]byte(findingsJSON), &record.Predictions); err != nil {
			// A malformed row must not poison the whole learning pass.
			s.logger.Warn("skipping unreadable prediction row", "error", err)
			continue
		}
		if accuracy.Valid {
			v := accuracy.Float64
			record.Accuracy = &v
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// History returns the newest stored predictions for the history endpoint.
func (s *Store) History(ctx context.Context, limit int) ([]StoredPrediction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location, created_at, predictions, accuracy
		 FROM predictions ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	history := make([]StoredPrediction, 0, limit)
	for rows.Next() {
		var p StoredPrediction
		var findingsJSON string
		var accuracy sql.NullFloat64
		if err := rows.Scan(&p.ID, &p.Location, &p.CreatedAt, &findingsJSON, &accuracy); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if err := json.Unmarshal([]byte(findingsJSON), &p.Findings); err != nil {
			s.logger.Warn("skipping unreadable prediction row", "id", p.ID, "error", err)
			continue
		}
		if accuracy.Valid {
			v := accuracy.Float64
			p.Accuracy = &v
		}
		history = append(history, p)
	}
	return history, rows.Err()
}

// Feedback is a user's assessment of a stored prediction.
type Feedback struct {
	PredictionID int64    `json:"prediction_id"`
	Type         string   `json:"feedback_type"`
	Comments     string   `json:"comments,omitempty"`
	Accuracy     *float64 `json:"accuracy,omitempty"`
}

// SaveFeedback records feedback and, when it carries an accuracy score,
// copies that score onto the prediction row so the learning loop sees it.
func (s *Store) SaveFeedback(ctx context.Context, fb Feedback) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin feedback tx: %w", err)
	}
	defer tx.Rollback()

	var accuracy any
	if fb.Accuracy != nil {
		accuracy = *fb.Accuracy
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO prediction_feedback (prediction_id, feedback_type, comments, accuracy) VALUES (?, ?, ?, ?)`,
		fb.PredictionID, fb.Type, fb.Comments, accuracy,
	); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}

	if fb.Accuracy != nil {
		res, err := tx.ExecContext(ctx,
			`UPDATE predictions SET accuracy = ? WHERE id = ?`,
			*fb.Accuracy, fb.PredictionID,
		)
		if err != nil {
			return fmt.Errorf("update prediction accuracy: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("prediction %d: %w", fb.PredictionID, ErrPredictionNotFound)
		}
	}

	return tx.Commit()
}

// Ping reports whether the database is reachable, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
