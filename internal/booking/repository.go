package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/stay-booking-backend/internal/pkg/calendar"
)

type Repository interface {
	// Create inserts the booking after re-checking, under the unit row
	// lock, that no date in the stay is blocked or already booked.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = `b.id, b.unit_id, u.name, u.property_id, p.name,
	b.user_id, us.email, b.check_in, b.check_out, b.total_price, b.status,
	b.created_at, b.updated_at`

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Lock the unit row so concurrent bookings of the same unit
	// serialize and the checks below see committed state only.
	query, args, err := psql.Select("id").
		From("public.units").
		Where(squirrel.Eq{"id": b.UnitID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock unit query failed: %w", err)
	}
	var unitID string
	if err := tx.QueryRow(ctx, query, args...).Scan(&unitID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("lock unit failed: %w", err)
	}

	blocked, err := blockedDates(ctx, tx, b.UnitID, calendar.Range{Start: b.CheckIn, End: b.CheckOut})
	if err != nil {
		return err
	}
	if len(blocked) > 0 {
		return &DatesUnavailableError{BlockedDates: blocked}
	}

	overlap, err := hasBookingOverlap(ctx, tx, b.UnitID, b.CheckIn, b.CheckOut)
	if err != nil {
		return err
	}
	if overlap {
		return ErrDateConflict
	}

	query, args, err = psql.Insert("public.bookings").
		Columns("unit_id", "user_id", "check_in", "check_out", "total_price", "status").
		Values(b.UnitID, b.UserID, b.CheckIn.Time(), b.CheckOut.Time(), b.TotalPrice, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.units u ON b.unit_id = u.id").
		Join("public.properties p ON u.property_id = p.id").
		Join("public.users us ON b.user_id = us.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...), nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.units u ON b.unit_id = u.id").
		Join("public.properties p ON u.property_id = p.id").
		Join("public.users us ON b.user_id = us.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.UnitID != "" {
		query = query.Where(squirrel.Eq{"b.unit_id": filter.UnitID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}

	query = query.OrderBy("b.created_at DESC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	return r.GetByID(ctx, id)
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// blockedDates returns every explicitly blocked date inside [start, end).
func blockedDates(ctx context.Context, q queryer, unitID string, r calendar.Range) ([]calendar.Date, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("date").
		From("public.availability_overrides").
		Where(squirrel.Eq{"unit_id": unitID, "is_available": false}).
		Where(squirrel.GtOrEq{"date": r.Start.Time()}).
		Where(squirrel.Lt{"date": r.End.Time()}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build blocked dates query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocked dates failed: %w", err)
	}
	defer rows.Close()

	var blocked []calendar.Date
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan blocked date failed: %w", err)
		}
		blocked = append(blocked, calendar.FromTime(d))
	}
	return blocked, nil
}

// hasBookingOverlap reports whether any non-cancelled booking intersects
// the half-open stay [checkIn, checkOut).
func hasBookingOverlap(ctx context.Context, q queryer, unitID string, checkIn, checkOut calendar.Date) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"check_in": checkOut.Time()}).
		Where(squirrel.Gt{"check_out": checkIn.Time()}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build booking overlap query failed: %w", err)
	}

	var one int
	if err := q.QueryRow(ctx, query, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check booking overlap failed: %w", err)
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, total *int) (*Booking, error) {
	var (
		b                 Booking
		checkIn, checkOut time.Time
	)
	dest := []any{
		&b.ID, &b.UnitID, &b.UnitName, &b.PropertyID, &b.PropertyName,
		&b.UserID, &b.UserEmail, &checkIn, &checkOut, &b.TotalPrice, &b.Status,
		&b.CreatedAt, &b.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.CheckIn = calendar.FromTime(checkIn)
	b.CheckOut = calendar.FromTime(checkOut)
	return &b, nil
}
