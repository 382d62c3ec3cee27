package unit

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, u *Unit) error
	GetByID(ctx context.Context, id string) (*Unit, error)
	List(ctx context.Context, filter Filter) ([]*Unit, int, error)
	Update(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, u *Unit) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.units").
		Columns("property_id", "name", "capacity", "base_price").
		Values(u.PropertyID, u.Name, u.Capacity, u.BasePrice).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create unit query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Unit, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"u.id", "u.property_id", "p.name", "u.name", "u.capacity", "u.base_price",
		"u.created_at", "u.updated_at",
	).
		From("public.units u").
		Join("public.properties p ON u.property_id = p.id").
		Where(squirrel.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get unit query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var u Unit
	if err := row.Scan(
		&u.ID, &u.PropertyID, &u.PropertyName, &u.Name, &u.Capacity, &u.BasePrice,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get unit failed: %w", err)
	}
	return &u, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Unit, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"u.id", "u.property_id", "p.name", "u.name", "u.capacity", "u.base_price",
		"u.created_at", "u.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.units u").
		Join("public.properties p ON u.property_id = p.id")

	if filter.PropertyID != "" {
		query = query.Where(squirrel.Eq{"u.property_id": filter.PropertyID})
	}

	query = query.OrderBy("u.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list units query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list units failed: %w", err)
	}
	defer rows.Close()

	var units []*Unit
	var total int

	for rows.Next() {
		var u Unit
		if err := rows.Scan(
			&u.ID, &u.PropertyID, &u.PropertyName, &u.Name, &u.Capacity, &u.BasePrice,
			&u.CreatedAt, &u.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan unit failed: %w", err)
		}
		units = append(units, &u)
	}

	return units, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, u *Unit) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.units").
		Set("name", u.Name).
		Set("capacity", u.Capacity).
		Set("base_price", u.BasePrice).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update unit query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update unit failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.units").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete unit query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete unit failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
