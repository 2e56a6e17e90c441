package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/travelmate/internal/domain"
)

func SeedTrip(t *testing.T, db *sql.DB, title string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(
		`INSERT INTO trips (id, title, start_date) VALUES ($1, $2, $3)`,
		id, title, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("seed trip: %v", err)
	}
	return id
}

// SeedParticipant creates (or reuses) the user called name and adds it to
// the trip.
func SeedParticipant(t *testing.T, db *sql.DB, tripID uuid.UUID, name string) domain.ParticipantID {
	t.Helper()

	var id domain.ParticipantID
	err := db.QueryRow(
		`INSERT INTO users (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}

	_, err = db.Exec(
		`INSERT INTO trip_participants (trip_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		tripID, id,
	)
	if err != nil {
		t.Fatalf("seed membership %s: %v", name, err)
	}
	return id
}

func CountRows(t *testing.T, db *sql.DB, table string, where string, args ...any) int {
	t.Helper()

	query := `SELECT COUNT(*) FROM ` + table
	if where != "" {
		query += ` WHERE ` + where
	}

	var n int
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func ShareAmounts(t *testing.T, db *sql.DB, expenseID uuid.UUID) map[domain.ParticipantID]decimal.Decimal {
	t.Helper()

	rows, err := db.Query(
		`SELECT user_id, share_amount FROM expense_shares WHERE expense_id = $1`, expenseID,
	)
	if err != nil {
		t.Fatalf("query shares: %v", err)
	}
	defer rows.Close()

	shares := make(map[domain.ParticipantID]decimal.Decimal)
	for rows.Next() {
		var (
			id     domain.ParticipantID
			amount decimal.Decimal
		)
		if err := rows.Scan(&id, &amount); err != nil {
			t.Fatalf("scan share: %v", err)
		}
		shares[id] = amount
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("shares rows: %v", err)
	}
	return shares
}
