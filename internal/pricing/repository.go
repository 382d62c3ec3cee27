package pricing

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

// Repository loads pricing snapshots and commits rule mutations.
// Mutations re-validate against the latest committed rule set while
// holding the unit row lock, so two concurrent writes against
// disjoint-looking stale snapshots cannot together produce an overlap.
type Repository interface {
	GetRuleSet(ctx context.Context, unitID string) (*RuleSet, error)
	GetRate(ctx context.Context, rateID string) (*PeakRate, error)
	CreateRate(ctx context.Context, rate *PeakRate) error
	UpdateRate(ctx context.Context, rateID string, patch RatePatch) (*PeakRate, error)
	DeleteRate(ctx context.Context, rateID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// queryer abstracts pool and transaction so snapshot loads run in both.
type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *pgxRepository) GetRuleSet(ctx context.Context, unitID string) (*RuleSet, error) {
	return loadRuleSet(ctx, r.pool, unitID, false)
}

func (r *pgxRepository) GetRate(ctx context.Context, rateID string) (*PeakRate, error) {
	return getRate(ctx, r.pool, rateID)
}

func (r *pgxRepository) CreateRate(ctx context.Context, rate *PeakRate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create rate tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	rs, err := loadRuleSet(ctx, tx, rate.UnitID, true)
	if err != nil {
		return err
	}

	// Overlap and value invariants against the committed state.
	if _, err := CreateRate(*rs, *rate); err != nil {
		return err
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.peak_rates").
		Columns("unit_id", "start_date", "end_date", "rate_type", "value", "description").
		Values(rate.UnitID, rate.Range.Start.Time(), rate.Range.End.Time(), rate.Type, rate.Value, rate.Description).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rate query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).
		Scan(&rate.ID, &rate.CreatedAt, &rate.UpdatedAt); err != nil {
		return fmt.Errorf("create rate failed: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *pgxRepository) UpdateRate(ctx context.Context, rateID string, patch RatePatch) (*PeakRate, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update rate tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := getRate(ctx, tx, rateID)
	if err != nil {
		return nil, err
	}

	rs, err := loadRuleSet(ctx, tx, existing.UnitID, true)
	if err != nil {
		return nil, err
	}

	next, err := UpdateRate(*rs, rateID, patch)
	if err != nil {
		return nil, err
	}

	var updated *PeakRate
	for i := range next.Rates {
		if next.Rates[i].ID == rateID {
			updated = &next.Rates[i]
			break
		}
	}
	if updated == nil {
		return nil, ErrRateNotFound
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.peak_rates").
		Set("start_date", updated.Range.Start.Time()).
		Set("end_date", updated.Range.End.Time()).
		Set("rate_type", updated.Type).
		Set("value", updated.Value).
		Set("description", updated.Description).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rateID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update rate query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&updated.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRateNotFound
		}
		return nil, fmt.Errorf("update rate failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *pgxRepository) DeleteRate(ctx context.Context, rateID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.peak_rates").
		Where(squirrel.Eq{"id": rateID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rate query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rate failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRateNotFound
	}
	return nil
}

// loadRuleSet reads a unit's base price and peak rates. With forUpdate
// the unit row is locked until the surrounding transaction ends, which
// serializes rule writes per unit.
func loadRuleSet(ctx context.Context, q queryer, unitID string, forUpdate bool) (*RuleSet, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	unitQuery := psql.Select("id", "base_price").
		From("public.units").
		Where(squirrel.Eq{"id": unitID})
	if forUpdate {
		unitQuery = unitQuery.Suffix("FOR UPDATE")
	}

	sql, args, err := unitQuery.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build unit query failed: %w", err)
	}

	rs := &RuleSet{}
	if err := q.QueryRow(ctx, sql, args...).Scan(&rs.UnitID, &rs.BasePrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("get unit base price failed: %w", err)
	}

	sql, args, err = psql.Select(
		"id", "unit_id", "start_date", "end_date", "rate_type", "value",
		"description", "created_at", "updated_at",
	).
		From("public.peak_rates").
		Where(squirrel.Eq{"unit_id": unitID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rates query failed: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list rates failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rs.Rates = append(rs.Rates, *rate)
	}

	return rs, nil
}

func getRate(ctx context.Context, q queryer, rateID string) (*PeakRate, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(
		"id", "unit_id", "start_date", "end_date", "rate_type", "value",
		"description", "created_at", "updated_at",
	).
		From("public.peak_rates").
		Where(squirrel.Eq{"id": rateID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rate query failed: %w", err)
	}

	rate, err := scanRate(q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}
	return rate, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRate reads one peak_rates row, converting DATE columns through
// the canonical date normalization.
func scanRate(row rowScanner) (*PeakRate, error) {
	var (
		rate       PeakRate
		start, end time.Time
	)
	if err := row.Scan(
		&rate.ID, &rate.UnitID, &start, &end, &rate.Type, &rate.Value,
		&rate.Description, &rate.CreatedAt, &rate.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rate.Range = calendar.Range{
		Start: calendar.FromTime(start),
		End:   calendar.FromTime(end),
	}
	return &rate, nil
}
