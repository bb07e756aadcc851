package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Experience mirrors the 'experiences' table.
type Experience struct {
	ID           uint64
	Title        string
	Description  sql.NullString
	Category     sql.NullString
	PricePerHour sql.NullInt64
	SellerID     uint64
	CreatedAt    time.Time
}

// SellerInfo is the public projection of the owning seller, nested into
// experience listings.
type SellerInfo struct {
	ID       uint64
	Nickname string
}

// ExperienceWithSeller pairs an experience with its seller projection for
// the public list and detail endpoints.
type ExperienceWithSeller struct {
	Experience
	Seller SellerInfo
}

type ExperienceRepo struct{ DB *sql.DB }

func NewExperienceRepo(db *sql.DB) *ExperienceRepo { return &ExperienceRepo{DB: db} }

// Create inserts an experience for the given seller and returns the stored row.
func (r *ExperienceRepo) Create(ctx context.Context, title, description, category string, pricePerHour *int64, sellerID uint64) (Experience, error) {
	var desc, cat sql.NullString
	if description != "" {
		desc = sql.NullString{String: description, Valid: true}
	}
	if category != "" {
		cat = sql.NullString{String: category, Valid: true}
	}
	var price sql.NullInt64
	if pricePerHour != nil {
		price = sql.NullInt64{Int64: *pricePerHour, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO experiences (title, description, category, price_per_hour, seller_id) VALUES (?,?,?,?,?)",
		title, desc, cat, price, sellerID)
	if err != nil {
		return Experience{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Experience{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches an experience by id.
func (r *ExperienceRepo) GetByID(ctx context.Context, id uint64) (Experience, error) {
	var e Experience
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,description,category,price_per_hour,seller_id,created_at FROM experiences WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.PricePerHour, &e.SellerID, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return Experience{}, ErrExperienceNotFound
	}
	return e, err
}

// GetWithSeller fetches an experience together with its seller projection.
func (r *ExperienceRepo) GetWithSeller(ctx context.Context, id uint64) (ExperienceWithSeller, error) {
	var e ExperienceWithSeller
	err := r.DB.QueryRowContext(ctx,
		`SELECT e.id,e.title,e.description,e.category,e.price_per_hour,e.seller_id,e.created_at,u.id,u.nickname
		 FROM experiences e JOIN users u ON u.id = e.seller_id
		 WHERE e.id=? LIMIT 1`,
		id).Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.PricePerHour, &e.SellerID, &e.CreatedAt,
		&e.Seller.ID, &e.Seller.Nickname)
	if err == sql.ErrNoRows {
		return ExperienceWithSeller{}, ErrExperienceNotFound
	}
	return e, err
}

// ListWithSeller returns all experiences with their seller projections,
// newest first.
func (r *ExperienceRepo) ListWithSeller(ctx context.Context) ([]ExperienceWithSeller, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT e.id,e.title,e.description,e.category,e.price_per_hour,e.seller_id,e.created_at,u.id,u.nickname
		 FROM experiences e JOIN users u ON u.id = e.seller_id
		 ORDER BY e.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ExperienceWithSeller, 0)
	for rows.Next() {
		var e ExperienceWithSeller
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.PricePerHour, &e.SellerID, &e.CreatedAt,
			&e.Seller.ID, &e.Seller.Nickname); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListBySeller returns all experiences owned by the given seller.
func (r *ExperienceRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]Experience, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,description,category,price_per_hour,seller_id,created_at FROM experiences WHERE seller_id=? ORDER BY id DESC",
		sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Experience, 0)
	for rows.Next() {
		var e Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &e.PricePerHour, &e.SellerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// placeholders builds a "?,?,?" fragment for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
