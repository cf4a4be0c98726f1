package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/modulixo/storefront/internal/domain/errors"
	"github.com/modulixo/storefront/internal/domain/model"
	"github.com/modulixo/storefront/internal/domain/repository"
)

const (
	orderNumberPrefix = "ORD-"
	orderNumberBase   = 100

	// Attempts for the read-then-insert allocation loop. The unique index on
	// orders.number turns a concurrent duplicate into a 23505, which we retry.
	allocateAttempts = 5

	uniqueViolationCode = "23505"
)

// Pool is the subset of pgxpool.Pool the storage relies on. pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type categoryRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type ideaRepository struct {
	storage *Storage
}

type offerRepository struct {
	storage *Storage
}

// newPgxPool is a seam for tests.
var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Categories() repository.CategoryRepository {
	return &categoryRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Ideas() repository.IdeaRepository {
	return &ideaRepository{storage: s}
}

func (s *Storage) Offers() repository.OfferRepository {
	return &offerRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'customer',
            reset_token TEXT,
            reset_expires_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS categories (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            subtitle TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            seo_title TEXT NOT NULL DEFAULT '',
            seo_description TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            category_id BIGINT REFERENCES categories(id),
            content TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_files (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
            name TEXT NOT NULL,
            url TEXT NOT NULL,
            position INT NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS ideas (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            excerpt TEXT NOT NULL DEFAULT '',
            content TEXT NOT NULL DEFAULT '',
            seo_title TEXT NOT NULL DEFAULT '',
            seo_description TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS special_offers (
            id SERIAL PRIMARY KEY,
            title TEXT NOT NULL,
            slug TEXT UNIQUE NOT NULL,
            total_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            discount DOUBLE PRECISION NOT NULL DEFAULT 0,
            discounted_price DOUBLE PRECISION NOT NULL DEFAULT 0,
            subtitle TEXT NOT NULL DEFAULT '',
            excerpt TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS offer_products (
            offer_id BIGINT NOT NULL REFERENCES special_offers(id) ON DELETE CASCADE,
            product_id BIGINT NOT NULL REFERENCES products(id),
            position INT NOT NULL DEFAULT 0,
            PRIMARY KEY (offer_id, product_id)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            number TEXT UNIQUE NOT NULL,
            user_id BIGINT REFERENCES users(id),
            total DOUBLE PRECISION NOT NULL DEFAULT 0,
            status TEXT NOT NULL DEFAULT 'pending',
            payment_method TEXT NOT NULL DEFAULT '',
            order_notes TEXT NOT NULL DEFAULT '',
            billing_address1 TEXT NOT NULL DEFAULT '',
            billing_address2 TEXT NOT NULL DEFAULT '',
            billing_city TEXT NOT NULL DEFAULT '',
            billing_state TEXT NOT NULL DEFAULT '',
            billing_zip TEXT NOT NULL DEFAULT '',
            billing_country TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
            product_id BIGINT REFERENCES products(id),
            quantity INT NOT NULL DEFAULT 1,
            price DOUBLE PRECISION NOT NULL DEFAULT 0,
            file_name TEXT NOT NULL DEFAULT '',
            file_url TEXT NOT NULL DEFAULT '',
            position INT NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id, position)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (email, password_hash, first_name, last_name, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	created := *user
	if created.Role == "" {
		created.Role = model.RoleCustomer
	}
	err := r.storage.pool.QueryRow(ctx, query, created.Email, created.PasswordHash, created.FirstName, created.LastName, created.Role).
		Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, role, created_at
                   FROM users WHERE email=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, email, password_hash, first_name, last_name, role, created_at
                   FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	const query = `UPDATE users SET reset_token=$2, reset_expires_at=$3 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, userID, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, token string, passwordHash string) error {
	const query = `UPDATE users SET password_hash=$2, reset_token=NULL, reset_expires_at=NULL
                   WHERE reset_token=$1 AND reset_expires_at > NOW()`
	tag, err := r.storage.pool.Exec(ctx, query, token, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrInvalidResetToken
	}
	return nil
}

// --- OrderRepository implementation ---

// NextOrderNumber derives the next sequential number from the most recent one.
// An empty or malformed previous number falls back to the base, so the first
// order ever created is ORD-101.
func NextOrderNumber(last string) string {
	n := orderNumberBase
	if trimmed := strings.TrimPrefix(last, orderNumberPrefix); trimmed != "" {
		if parsed, err := strconv.Atoi(trimmed); err == nil && parsed > 0 {
			n = parsed
		}
	}
	return orderNumberPrefix + strconv.Itoa(n+1)
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	for attempt := 0; attempt < allocateAttempts; attempt++ {
		created, err := r.createOnce(ctx, order)
		if err == nil {
			return created, nil
		}
		if isUniqueViolation(err) {
			r.storage.logger.Warn("order number collision, retrying",
				slog.Int("attempt", attempt+1))
			continue
		}
		return nil, err
	}
	return nil, domainErrors.ErrNumberExhausted
}

func (r *orderRepository) createOnce(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	if created.Status == "" {
		created.Status = model.OrderStatusPending
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var last string
		err := tx.QueryRow(ctx, `SELECT number FROM orders ORDER BY created_at DESC LIMIT 1`).Scan(&last)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("read last order number: %w", err)
		}
		created.Number = NextOrderNumber(last)

		const insertOrder = `INSERT INTO orders
                (number, user_id, total, status, payment_method, order_notes,
                 billing_address1, billing_address2, billing_city, billing_state, billing_zip, billing_country)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
                RETURNING id, created_at, updated_at`
		addr := created.BillingAddress
		if err := tx.QueryRow(ctx, insertOrder,
			created.Number, created.UserID, created.Total, created.Status,
			created.PaymentMethod, created.OrderNotes,
			addr.Address1, addr.Address2, addr.City, addr.State, addr.Zip, addr.Country,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items
                (order_id, product_id, quantity, price, file_name, file_url, position)
                VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		for i := range created.Items {
			item := &created.Items[i]
			if err := tx.QueryRow(ctx, insertItem,
				created.ID, item.ProductID, item.Quantity, item.Price,
				item.FileName, item.FileURL, i,
			).Scan(&item.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

const selectOrderColumns = `id, number, user_id, total, status, payment_method, order_notes,
            billing_address1, billing_address2, billing_city, billing_state, billing_zip, billing_country,
            created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.Number, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod, &o.OrderNotes,
		&o.BillingAddress.Address1, &o.BillingAddress.Address2, &o.BillingAddress.City,
		&o.BillingAddress.State, &o.BillingAddress.Zip, &o.BillingAddress.Country,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadOrderItems(ctx context.Context, q querier, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, product_id, quantity, price, file_name, file_url
                   FROM order_items WHERE order_id=$1 ORDER BY position`
	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.Price, &item.FileName, &item.FileURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE number=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, number))
	if err != nil {
		return nil, err
	}
	if order.Items, err = loadOrderItems(ctx, r.storage.pool, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Number, &o.UserID, &o.Total, &o.Status, &o.PaymentMethod, &o.OrderNotes,
			&o.BillingAddress.Address1, &o.BillingAddress.Address2, &o.BillingAddress.City,
			&o.BillingAddress.State, &o.BillingAddress.Zip, &o.BillingAddress.Country,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Items, err = loadOrderItems(ctx, r.storage.pool, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, number string, status model.OrderStatus) (model.OrderStatus, *model.Order, error) {
	var (
		previous model.OrderStatus
		updated  *model.Order
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var orderID int64
		err := tx.QueryRow(ctx, `SELECT id, status FROM orders WHERE number=$1 FOR UPDATE`, number).
			Scan(&orderID, &previous)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if _, err := tx.Exec(ctx, `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`, status, orderID); err != nil {
			return err
		}

		query := `SELECT ` + selectOrderColumns + ` FROM orders WHERE id=$1`
		if updated, err = scanOrder(tx.QueryRow(ctx, query, orderID)); err != nil {
			return err
		}
		updated.Items, err = loadOrderItems(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return previous, updated, nil
}

// --- CategoryRepository implementation ---

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	const query = `INSERT INTO categories (title, slug, subtitle, description, seo_title, seo_description)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	created := *category
	err := r.storage.pool.QueryRow(ctx, query, created.Title, created.Slug, created.Subtitle,
		created.Description, created.SEOTitle, created.SEODescription).Scan(&created.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	const query = `UPDATE categories SET title=$2, slug=$3, subtitle=$4, description=$5, seo_title=$6, seo_description=$7
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, category.ID, category.Title, category.Slug,
		category.Subtitle, category.Description, category.SEOTitle, category.SEODescription)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	updated := *category
	return &updated, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	const query = `SELECT id, title, slug, subtitle, description, seo_title, seo_description
                   FROM categories WHERE slug=$1`
	var c model.Category
	err := r.storage.pool.QueryRow(ctx, query, slug).
		Scan(&c.ID, &c.Title, &c.Slug, &c.Subtitle, &c.Description, &c.SEOTitle, &c.SEODescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	const query = `SELECT id, title, slug, subtitle, description, seo_title, seo_description
                   FROM categories ORDER BY title`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.Subtitle, &c.Description, &c.SEOTitle, &c.SEODescription); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	created := *product
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO products (title, slug, price, category_id, content)
                       VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, query, created.Title, created.Slug, created.Price, created.CategoryID, created.Content).
			Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
			return err
		}
		return insertProductFiles(ctx, tx, created.ID, created.Files)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) (*model.Product, error) {
	updated := *product
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE products SET title=$2, slug=$3, price=$4, category_id=$5, content=$6, updated_at=NOW()
                       WHERE id=$1 RETURNING updated_at`
		err := tx.QueryRow(ctx, query, updated.ID, updated.Title, updated.Slug, updated.Price, updated.CategoryID, updated.Content).
			Scan(&updated.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM product_files WHERE product_id=$1`, updated.ID); err != nil {
			return err
		}
		return insertProductFiles(ctx, tx, updated.ID, updated.Files)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &updated, nil
}

func insertProductFiles(ctx context.Context, tx pgx.Tx, productID int64, files []model.ProductFile) error {
	const query = `INSERT INTO product_files (product_id, name, url, position) VALUES ($1, $2, $3, $4)`
	for i, f := range files {
		if _, err := tx.Exec(ctx, query, productID, f.Name, f.URL, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	const query = `SELECT id, title, slug, price, category_id, content, created_at, updated_at
                   FROM products WHERE slug=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, slug).
		Scan(&p.ID, &p.Title, &p.Slug, &p.Price, &p.CategoryID, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if p.Files, err = r.loadFiles(ctx, p.ID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) loadFiles(ctx context.Context, productID int64) ([]model.ProductFile, error) {
	const query = `SELECT name, url FROM product_files WHERE product_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []model.ProductFile
	for rows.Next() {
		var f model.ProductFile
		if err := rows.Scan(&f.Name, &f.URL); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	const query = `SELECT id, title, slug, price, category_id, content, created_at, updated_at
                   FROM products ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Price, &p.CategoryID, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		if result[i].Files, err = r.loadFiles(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// --- IdeaRepository implementation ---

func (r *ideaRepository) Create(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	const query = `INSERT INTO ideas (title, slug, excerpt, content, seo_title, seo_description)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	created := *idea
	err := r.storage.pool.QueryRow(ctx, query, created.Title, created.Slug, created.Excerpt,
		created.Content, created.SEOTitle, created.SEODescription).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *ideaRepository) Update(ctx context.Context, idea *model.Idea) (*model.Idea, error) {
	const query = `UPDATE ideas SET title=$2, slug=$3, excerpt=$4, content=$5, seo_title=$6, seo_description=$7
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, idea.ID, idea.Title, idea.Slug, idea.Excerpt,
		idea.Content, idea.SEOTitle, idea.SEODescription)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domainErrors.ErrNotFound
	}
	updated := *idea
	return &updated, nil
}

func (r *ideaRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM ideas WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *ideaRepository) GetBySlug(ctx context.Context, slug string) (*model.Idea, error) {
	const query = `SELECT id, title, slug, excerpt, content, seo_title, seo_description, created_at
                   FROM ideas WHERE slug=$1`
	var i model.Idea
	err := r.storage.pool.QueryRow(ctx, query, slug).
		Scan(&i.ID, &i.Title, &i.Slug, &i.Excerpt, &i.Content, &i.SEOTitle, &i.SEODescription, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

func (r *ideaRepository) List(ctx context.Context) ([]model.Idea, error) {
	const query = `SELECT id, title, slug, excerpt, content, seo_title, seo_description, created_at
                   FROM ideas ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Idea
	for rows.Next() {
		var i model.Idea
		if err := rows.Scan(&i.ID, &i.Title, &i.Slug, &i.Excerpt, &i.Content, &i.SEOTitle, &i.SEODescription, &i.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OfferRepository implementation ---

func (r *offerRepository) Create(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	created := *offer
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO special_offers (title, slug, total_price, discount, discounted_price, subtitle, excerpt)
                       VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
		if err := tx.QueryRow(ctx, query, created.Title, created.Slug, created.TotalPrice,
			created.Discount, created.DiscountedPrice, created.Subtitle, created.Excerpt).Scan(&created.ID); err != nil {
			return err
		}
		return insertOfferProducts(ctx, tx, created.ID, created.ProductIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *offerRepository) Update(ctx context.Context, offer *model.SpecialOffer) (*model.SpecialOffer, error) {
	updated := *offer
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE special_offers SET title=$2, slug=$3, total_price=$4, discount=$5, discounted_price=$6, subtitle=$7, excerpt=$8
                       WHERE id=$1`
		tag, err := tx.Exec(ctx, query, updated.ID, updated.Title, updated.Slug, updated.TotalPrice,
			updated.Discount, updated.DiscountedPrice, updated.Subtitle, updated.Excerpt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM offer_products WHERE offer_id=$1`, updated.ID); err != nil {
			return err
		}
		return insertOfferProducts(ctx, tx, updated.ID, updated.ProductIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &updated, nil
}

func insertOfferProducts(ctx context.Context, tx pgx.Tx, offerID int64, productIDs []int64) error {
	const query = `INSERT INTO offer_products (offer_id, product_id, position) VALUES ($1, $2, $3)`
	for i, id := range productIDs {
		if _, err := tx.Exec(ctx, query, offerID, id, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *offerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM special_offers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *offerRepository) GetBySlug(ctx context.Context, slug string) (*model.SpecialOffer, error) {
	const query = `SELECT id, title, slug, total_price, discount, discounted_price, subtitle, excerpt
                   FROM special_offers WHERE slug=$1`
	var o model.SpecialOffer
	err := r.storage.pool.QueryRow(ctx, query, slug).
		Scan(&o.ID, &o.Title, &o.Slug, &o.TotalPrice, &o.Discount, &o.DiscountedPrice, &o.Subtitle, &o.Excerpt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if o.ProductIDs, err = r.loadProducts(ctx, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *offerRepository) loadProducts(ctx context.Context, offerID int64) ([]int64, error) {
	const query = `SELECT product_id FROM offer_products WHERE offer_id=$1 ORDER BY position`
	rows, err := r.storage.pool.Query(ctx, query, offerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *offerRepository) List(ctx context.Context) ([]model.SpecialOffer, error) {
	const query = `SELECT id, title, slug, total_price, discount, discounted_price, subtitle, excerpt
                   FROM special_offers ORDER BY title`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SpecialOffer
	for rows.Next() {
		var o model.SpecialOffer
		if err := rows.Scan(&o.ID, &o.Title, &o.Slug, &o.TotalPrice, &o.Discount, &o.DiscountedPrice, &o.Subtitle, &o.Excerpt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		var err error
		if result[i].ProductIDs, err = r.loadProducts(ctx, result[i].ID); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// --- shared helpers ---

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
