//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by *pgxpool.Pool and pgx.Tx, so fixtures can run
// inside a test transaction as well as against the shared pool.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	// bcrypt of "password123"
	passwordHash := "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."
	tag, err := db.Exec(ctx, `INSERT INTO users (id, email, password_hash, first_name, last_name, role)
		VALUES ($1, $2, $3, 'Test', 'User', $4) ON CONFLICT (email) DO NOTHING`,
		userID, email, passwordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestRoom(t *testing.T, db DBLike, name string, available bool) int {
	t.Helper()

	var roomID int
	err := db.QueryRow(context.Background(),
		`INSERT INTO rooms (name, is_available) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET is_available = EXCLUDED.is_available
		RETURNING id`, name, available).Scan(&roomID)
	require.NoError(t, err)

	return roomID
}

// CreateTestBooking inserts an occupied slot directly, bypassing checkout.
func CreateTestBooking(t *testing.T, db DBLike, userID uuid.UUID, roomID int, date, slot, status, paymentRef string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	_, err := db.Exec(context.Background(),
		`INSERT INTO bookings (id, user_id, room_id, booking_date, time_slot, booking_type, status, total_price_cents, payment_reference)
		VALUES ($1, $2, $3, $4::date, $5, 'daily', $6, 30000, $7)`,
		bookingID, userID, roomID, date, slot, status, paymentRef)
	require.NoError(t, err)

	return bookingID
}

func CountBookings(t *testing.T, db DBLike, roomID int, date, status string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND booking_date = $2::date AND status = $3",
		roomID, date, status).Scan(&n)
	require.NoError(t, err)

	return n
}
