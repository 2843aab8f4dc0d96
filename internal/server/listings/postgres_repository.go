package listings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tradeboard/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, display_name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.Key, &c.DisplayName); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) HasCategory(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE key = $1)`, key).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) requireCategory(ctx context.Context, key string) error {
	ok, err := r.HasCategory(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCategory
	}
	return nil
}

func (r *PostgresRepository) Count(ctx context.Context, category string) (int, error) {
	if err := r.requireCategory(ctx, category); err != nil {
		return 0, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM listings WHERE category = $1`, category).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) Create(ctx context.Context, l *Listing) (*Listing, error) {
	if err := r.requireCategory(ctx, l.Category); err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO listings (category, title, description, price, location, contact_email, contact_phone,
		                       user_id, created_at, last_edited_at, deleted_by_moderation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`

	c := *l
	err := r.db.QueryRowContext(ctx, query,
		c.Category, c.Title, c.Description, c.Price, c.Location, c.ContactEmail, c.ContactPhone,
		c.UserID, c.CreatedAt, c.LastEditedAt, c.DeletedByModeration).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &c, nil
}

const selectListing = `SELECT id, category, title, description, price, location, contact_email, contact_phone,
       user_id, created_at, last_edited_at, deleted_by_moderation
  FROM listings`

func scanListing(row interface{ Scan(...any) error }) (*Listing, error) {
	l := &Listing{}
	var edited sql.NullTime
	err := row.Scan(&l.ID, &l.Category, &l.Title, &l.Description, &l.Price, &l.Location,
		&l.ContactEmail, &l.ContactPhone, &l.UserID, &l.CreatedAt, &edited, &l.DeletedByModeration)
	if err != nil {
		return nil, err
	}
	if edited.Valid {
		t := edited.Time
		l.LastEditedAt = &t
	}
	return l, nil
}

func (r *PostgresRepository) Get(ctx context.Context, category string, id int64) (*Listing, error) {
	if err := r.requireCategory(ctx, category); err != nil {
		return nil, err
	}
	l, err := scanListing(r.db.QueryRowContext(ctx, selectListing+` WHERE category = $1 AND id = $2`, category, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) query(ctx context.Context, q string, args ...any) ([]*Listing, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

// List returns the category's listings, newest first.
func (r *PostgresRepository) List(ctx context.Context, category string) ([]*Listing, error) {
	if err := r.requireCategory(ctx, category); err != nil {
		return nil, err
	}
	out, err := r.query(ctx, selectListing+` WHERE category = $1 ORDER BY created_at DESC, id DESC`, category)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []*Listing{}
	}
	return out, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Listing, error) {
	return r.query(ctx, selectListing+` WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, l *Listing) error {
	if err := r.requireCategory(ctx, l.Category); err != nil {
		return err
	}

	query :=
		`UPDATE listings
		    SET title = $1, description = $2, price = $3, location = $4, contact_email = $5,
		        contact_phone = $6, last_edited_at = $7, deleted_by_moderation = $8
		  WHERE category = $9 AND id = $10`

	res, err := r.db.ExecContext(ctx, query,
		l.Title, l.Description, l.Price, l.Location, l.ContactEmail,
		l.ContactPhone, l.LastEditedAt, l.DeletedByModeration, l.Category, l.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, category string, id int64) error {
	if err := r.requireCategory(ctx, category); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE category = $1 AND id = $2`, category, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
