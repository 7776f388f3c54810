package product

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "image_url", "created_at", "updated_at"})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, name, description, price, stock, image_url, created_at, updated_at FROM products ORDER BY id")).
		WillReturnRows(productRows().
			AddRow(1, "Wireless Mouse", "2.4GHz", 799.0, 25, "https://img.example.com/mouse.jpg", time.Now(), time.Now()).
			AddRow(2, "Keyboard", "Mechanical", 2499.0, 10, "https://img.example.com/kb.jpg", time.Now(), time.Now()))

	repo := NewRepository(db)
	products, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Wireless Mouse", products[0].Name)
	assert.Equal(t, 2499.0, products[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT id, name, description, price, stock, image_url, created_at, updated_at FROM products WHERE id=$1")).
			WithArgs(1).
			WillReturnRows(productRows().
				AddRow(1, "Wireless Mouse", "2.4GHz", 799.0, 25, "https://img.example.com/mouse.jpg", time.Now(), time.Now()))

		repo := NewRepository(db)
		p, err := repo.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, uint(1), p.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			"SELECT id, name, description, price, stock, image_url, created_at, updated_at FROM products WHERE id=$1")).
			WithArgs(99).
			WillReturnRows(productRows())

		repo := NewRepository(db)
		_, err := repo.GetByID(context.Background(), 99)

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO products (name, description, price, stock, image_url) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at")).
		WithArgs("Wireless Mouse", "2.4GHz", 799.0, 25, "https://img.example.com/mouse.jpg").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(3, time.Now(), time.Now()))

	repo := NewRepository(db)
	p, err := repo.Create(context.Background(), Product{
		Name:        "Wireless Mouse",
		Description: "2.4GHz",
		Price:       799,
		Stock:       25,
		ImageURL:    "https://img.example.com/mouse.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("SingleField", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE products SET price=$1, updated_at=NOW() WHERE id=$2 RETURNING id, name, description, price, stock, image_url, created_at, updated_at")).
			WithArgs(649.0, 3).
			WillReturnRows(productRows().
				AddRow(3, "Wireless Mouse", "2.4GHz", 649.0, 25, "https://img.example.com/mouse.jpg", time.Now(), time.Now()))

		repo := NewRepository(db)
		p, err := repo.Update(context.Background(), 3, ProductUpdate{Price: floatPtr(649)})

		require.NoError(t, err)
		assert.Equal(t, 649.0, p.Price)
	})

	t.Run("MultipleFields", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE products SET name=$1, stock=$2, updated_at=NOW() WHERE id=$3 RETURNING id, name, description, price, stock, image_url, created_at, updated_at")).
			WithArgs("Ergo Mouse", 40, 3).
			WillReturnRows(productRows().
				AddRow(3, "Ergo Mouse", "2.4GHz", 649.0, 40, "https://img.example.com/mouse.jpg", time.Now(), time.Now()))

		repo := NewRepository(db)
		p, err := repo.Update(context.Background(), 3, ProductUpdate{Name: strPtr("Ergo Mouse"), Stock: intPtr(40)})

		require.NoError(t, err)
		assert.Equal(t, "Ergo Mouse", p.Name)
		assert.Equal(t, 40, p.Stock)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(
			"UPDATE products SET price=$1, updated_at=NOW() WHERE id=$2 RETURNING id, name, description, price, stock, image_url, created_at, updated_at")).
			WithArgs(649.0, 99).
			WillReturnRows(productRows())

		repo := NewRepository(db)
		_, err := repo.Update(context.Background(), 99, ProductUpdate{Price: floatPtr(649)})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("NoFields", func(t *testing.T) {
		repo := NewRepository(db)
		_, err := repo.Update(context.Background(), 3, ProductUpdate{})
		assert.ErrorIs(t, err, ErrNoFields)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id=$1")).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRepository(db)
		assert.NoError(t, repo.Delete(context.Background(), 3))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id=$1")).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRepository(db)
		assert.ErrorIs(t, repo.Delete(context.Background(), 99), ErrProductNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
