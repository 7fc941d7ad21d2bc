package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/anshmittal0811/Royal-Commerce/internal/catalog/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type RepoInterface interface {
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error)
	DecrementStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	RestoreStock(ctx context.Context, id int64, quantity int) (*domain.Product, error)
	Close() error
	RunMigrations(string) error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, stock, created_at
		FROM products
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p := &domain.Product{}
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

func (r *Repository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, description, price, category, stock, created_at
		FROM products
		WHERE id = ?
	`

	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Stock, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

func (r *Repository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (name, description, price, category, stock, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.Category, p.Stock)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("product insert id: %w", err)
	}

	return r.GetProduct(ctx, id)
}

func (r *Repository) UpdateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET name = ?, description = ?, price = ?, category = ?, stock = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Description, p.Price, p.Category, p.Stock, p.ID)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update product rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetProduct(ctx, p.ID)
}

// DecrementStock atomically takes quantity units off the product's stock.
// The guard in the UPDATE keeps stock from ever going negative, even under
// concurrent callers.
func (r *Repository) DecrementStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	query := `UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`

	res, err := r.db.ExecContext(ctx, query, quantity, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("decrement stock rows affected: %w", err)
	}
	if affected == 0 {
		// The guard rejected the update: either the product does not exist
		// or it has fewer than quantity units left.
		if _, err := r.GetProduct(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}

	return r.GetProduct(ctx, id)
}

// RestoreStock puts quantity units back. Restores are unconditional: they
// release a reservation made earlier by DecrementStock.
func (r *Repository) RestoreStock(ctx context.Context, id int64, quantity int) (*domain.Product, error) {
	query := `UPDATE products SET stock = stock + ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, quantity, id)
	if err != nil {
		return nil, fmt.Errorf("restore stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("restore stock rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetProduct(ctx, id)
}

func (r *Repository) Close() error {
	return r.db.Close()
}
