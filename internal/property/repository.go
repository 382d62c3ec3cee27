package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, int, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Property) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.properties").
		Columns("owner_id", "name", "address", "description", "timezone").
		Values(p.OwnerID, p.Name, p.Address, p.Description, p.Timezone).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create property query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "owner_id", "name", "address", "description", "timezone",
		"created_at", "updated_at",
	).
		From("public.properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get property query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var p Property
	if err := row.Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Description, &p.Timezone,
		&p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get property failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "owner_id", "name", "address", "description", "timezone",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.properties")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}

	query = query.OrderBy("created_at DESC")

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
		return nil, 0, fmt.Errorf("build list properties query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties failed: %w", err)
	}
	defer rows.Close()

	var properties []*Property
	var total int

	for rows.Next() {
		var p Property
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Address, &p.Description, &p.Timezone,
			&p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan property failed: %w", err)
		}
		properties = append(properties, &p)
	}

	return properties, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, p *Property) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.properties").
		Set("name", p.Name).
		Set("address", p.Address).
		Set("description", p.Description).
		Set("timezone", p.Timezone).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update property query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update property failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.properties").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete property query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete property failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
