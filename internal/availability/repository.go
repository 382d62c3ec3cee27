package availability

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

// Repository loads availability snapshots and commits override writes.
// Writes hold the unit row lock so concurrent batches serialize and the
// stored index stays minimal (available dates are deleted, not stored).
type Repository interface {
	GetIndex(ctx context.Context, unitID string, r calendar.Range) (Index, error)
	Write(ctx context.Context, unitID string, writes []Override) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) GetIndex(ctx context.Context, unitID string, rng calendar.Range) (Index, error) {
	if err := checkUnitExists(ctx, r.pool, unitID, false); err != nil {
		return nil, err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("date", "is_available").
		From("public.availability_overrides").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.GtOrEq{"date": rng.Start.Time()}).
		Where(squirrel.Lt{"date": rng.End.Time()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list overrides query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list overrides failed: %w", err)
	}
	defer rows.Close()

	idx := Index{}
	for rows.Next() {
		var (
			d    time.Time
			open bool
		)
		if err := rows.Scan(&d, &open); err != nil {
			return nil, fmt.Errorf("scan override failed: %w", err)
		}
		idx[calendar.FromTime(d)] = open
	}

	return idx, nil
}

func (r *pgxRepository) Write(ctx context.Context, unitID string, writes []Override) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin write overrides tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := checkUnitExists(ctx, tx, unitID, true); err != nil {
		return err
	}

	// Collapse the batch so duplicate dates resolve last-write-wins
	// before touching storage.
	collapsed := Apply(Index{}, writes)
	opened := make([]time.Time, 0, len(writes))
	for _, w := range writes {
		if _, blocked := collapsed[w.Date]; !blocked {
			opened = append(opened, w.Date.Time())
		}
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	if len(opened) > 0 {
		query, args, err := psql.Delete("public.availability_overrides").
			Where(squirrel.Eq{"unit_id": unitID}).
			Where(squirrel.Eq{"date": opened}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build delete overrides query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("delete overrides failed: %w", err)
		}
	}

	if len(collapsed) > 0 {
		insert := psql.Insert("public.availability_overrides").
			Columns("unit_id", "date", "is_available")
		for d := range collapsed {
			insert = insert.Values(unitID, d.Time(), false)
		}
		query, args, err := insert.
			Suffix("ON CONFLICT (unit_id, date) DO UPDATE SET is_available = EXCLUDED.is_available, updated_at = now()").
			ToSql()
		if err != nil {
			return fmt.Errorf("build upsert overrides query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert overrides failed: %w", err)
		}
	}

	return tx.Commit(ctx)
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func checkUnitExists(ctx context.Context, q queryer, unitID string, forUpdate bool) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id").
		From("public.units").
		Where(squirrel.Eq{"id": unitID})
	if forUpdate {
		query = query.Suffix("FOR UPDATE")
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build unit exists query failed: %w", err)
	}

	var id string
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnitNotFound
		}
		return fmt.Errorf("check unit exists failed: %w", err)
	}
	return nil
}
