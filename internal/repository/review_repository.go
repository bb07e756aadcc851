package repository

import (
	"context"
	"database/sql"
	"time"
)

// Review mirrors the 'reviews' table.
type Review struct {
	ID           uint64
	ExperienceID uint64
	UserID       uint64
	Rating       int
	Comment      sql.NullString
	CreatedAt    time.Time
}

// ReviewWithExperience pairs a review with the reviewed experience for the
// author's own listing.
type ReviewWithExperience struct {
	Review
	Experience Experience
}

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Create inserts a review. The rating is stored as given; range policy is
// the client's concern. A duplicate-key violation on the (experience, user)
// unique index is translated into ErrDuplicateReview, which covers the race
// where two requests pass the handler pre-check concurrently.
func (r *ReviewRepo) Create(ctx context.Context, experienceID, userID uint64, rating int, comment string) (Review, error) {
	var cm sql.NullString
	if comment != "" {
		cm = sql.NullString{String: comment, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (experience_id, user_id, rating, comment) VALUES (?,?,?,?)",
		experienceID, userID, rating, cm)
	if err != nil {
		if isDupKey(err, "") {
			return Review{}, ErrDuplicateReview
		}
		return Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Review{}, err
	}
	var out Review
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,experience_id,user_id,rating,comment,created_at FROM reviews WHERE id=? LIMIT 1",
		uint64(id)).Scan(&out.ID, &out.ExperienceID, &out.UserID, &out.Rating, &out.Comment, &out.CreatedAt)
	return out, err
}

// ExistsForUser reports whether the user already reviewed the experience.
func (r *ReviewRepo) ExistsForUser(ctx context.Context, experienceID, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reviews WHERE experience_id=? AND user_id=? LIMIT 1",
		experienceID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's reviews with the experience nested, newest
// first.
func (r *ReviewRepo) ListByUser(ctx context.Context, userID uint64) ([]ReviewWithExperience, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT rv.id,rv.experience_id,rv.user_id,rv.rating,rv.comment,rv.created_at,
		        e.id,e.title,e.description,e.category,e.price_per_hour,e.seller_id,e.created_at
		 FROM reviews rv JOIN experiences e ON e.id = rv.experience_id
		 WHERE rv.user_id=? ORDER BY rv.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewWithExperience, 0)
	for rows.Next() {
		var rc ReviewWithExperience
		if err := rows.Scan(&rc.ID, &rc.ExperienceID, &rc.UserID, &rc.Rating, &rc.Comment, &rc.CreatedAt,
			&rc.Experience.ID, &rc.Experience.Title, &rc.Experience.Description, &rc.Experience.Category,
			&rc.Experience.PricePerHour, &rc.Experience.SellerID, &rc.Experience.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// ListForExperiences returns all reviews belonging to the given set of
// experiences, oldest first, for nesting into experience listings.
func (r *ReviewRepo) ListForExperiences(ctx context.Context, experienceIDs []uint64) ([]Review, error) {
	if len(experienceIDs) == 0 {
		return []Review{}, nil
	}
	args := make([]interface{}, len(experienceIDs))
	for i, id := range experienceIDs {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,experience_id,user_id,rating,comment,created_at FROM reviews WHERE experience_id IN ("+placeholders(len(args))+") ORDER BY id",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ExperienceID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
