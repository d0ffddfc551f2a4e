package postgres

import (
	"context"

	"devevents/internal/domain"
)

type bookingRepository struct {
	db DatabaseProvider
}

func NewBookingRepository(db DatabaseProvider) domain.BookingRepository {
	return &bookingRepository{
		db: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bookings (event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = db.QueryRowContext(ctx, query, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	if err != nil {
		switch pqCode(err) {
		case codeUniqueViolation:
			return domain.ErrAlreadyBooked
		case codeForeignKeyViolation, codeInvalidTextRepr:
			return domain.ErrEventReference
		}
		return err
	}
	return nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int64, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id::text = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}
