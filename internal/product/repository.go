package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id uint) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id uint, update ProductUpdate) (Product, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description, price, stock, image_url, created_at, updated_at FROM products ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, price, stock, image_url, created_at, updated_at FROM products WHERE id=$1",
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}

	return p, err
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO products (name, description, price, stock, image_url) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at",
		p.Name, p.Description, p.Price, p.Stock, p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Update builds the SET clause from the fields actually provided so a
// partial payload never clobbers the other columns.
func (r *repository) Update(ctx context.Context, id uint, update ProductUpdate) (Product, error) {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 6)

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Stock != nil {
		add("stock", *update.Stock)
	}
	if update.ImageURL != nil {
		add("image_url", *update.ImageURL)
	}
	if len(sets) == 0 {
		return Product{}, ErrNoFields
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id=$%d RETURNING id, name, description, price, stock, image_url, created_at, updated_at",
		strings.Join(sets, ", "), len(args),
	)

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}

	return p, err
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id=$1", id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}

	return nil
}
