package repository

import (
	"context"
	"database/sql"
	"time"
)

// Reservation mirrors the 'reservations' table.
type Reservation struct {
	ID           uint64
	ExperienceID uint64
	UserID       uint64
	CreatedAt    time.Time
}

// ReservationWithExperience pairs a reservation with the reserved
// experience for the buyer's own listing.
type ReservationWithExperience struct {
	Reservation
	Experience Experience
}

// BuyerInfo is the projection of the reserving user nested into the seller
// dashboard listing.
type BuyerInfo struct {
	ID       uint64
	Nickname string
	Name     sql.NullString
}

// SellerReservation is a reservation against one of the caller's own
// experiences, with the experience and buyer nested.
type SellerReservation struct {
	Reservation
	Experience Experience
	Buyer      BuyerInfo
}

type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Create inserts a reservation. There is intentionally no duplicate or
// self-booking restriction: any authenticated user may reserve any existing
// experience any number of times.
func (r *ReservationRepo) Create(ctx context.Context, experienceID, userID uint64) (Reservation, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (experience_id, user_id) VALUES (?,?)",
		experienceID, userID)
	if err != nil {
		return Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Reservation{}, err
	}
	var out Reservation
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,experience_id,user_id,created_at FROM reservations WHERE id=? LIMIT 1",
		uint64(id)).Scan(&out.ID, &out.ExperienceID, &out.UserID, &out.CreatedAt)
	return out, err
}

// ExistsForUser reports whether the user holds any reservation for the
// experience. Any reservation qualifies; there is no completion state.
func (r *ReservationRepo) ExistsForUser(ctx context.Context, experienceID, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM reservations WHERE experience_id=? AND user_id=? LIMIT 1",
		experienceID, userID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the user's reservations with the experience nested,
// newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationWithExperience, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT rv.id,rv.experience_id,rv.user_id,rv.created_at,
		        e.id,e.title,e.description,e.category,e.price_per_hour,e.seller_id,e.created_at
		 FROM reservations rv JOIN experiences e ON e.id = rv.experience_id
		 WHERE rv.user_id=? ORDER BY rv.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReservationWithExperience, 0)
	for rows.Next() {
		var rc ReservationWithExperience
		if err := rows.Scan(&rc.ID, &rc.ExperienceID, &rc.UserID, &rc.CreatedAt,
			&rc.Experience.ID, &rc.Experience.Title, &rc.Experience.Description, &rc.Experience.Category,
			&rc.Experience.PricePerHour, &rc.Experience.SellerID, &rc.Experience.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// ListForSeller returns reservations whose experience is owned by the given
// seller, with the experience and buyer nested.
func (r *ReservationRepo) ListForSeller(ctx context.Context, sellerID uint64) ([]SellerReservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT rv.id,rv.experience_id,rv.user_id,rv.created_at,
		        e.id,e.title,e.description,e.category,e.price_per_hour,e.seller_id,e.created_at,
		        u.id,u.nickname,u.name
		 FROM reservations rv
		 JOIN experiences e ON e.id = rv.experience_id
		 JOIN users u ON u.id = rv.user_id
		 WHERE e.seller_id=? ORDER BY rv.id DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SellerReservation, 0)
	for rows.Next() {
		var sr SellerReservation
		if err := rows.Scan(&sr.ID, &sr.ExperienceID, &sr.UserID, &sr.CreatedAt,
			&sr.Experience.ID, &sr.Experience.Title, &sr.Experience.Description, &sr.Experience.Category,
			&sr.Experience.PricePerHour, &sr.Experience.SellerID, &sr.Experience.CreatedAt,
			&sr.Buyer.ID, &sr.Buyer.Nickname, &sr.Buyer.Name); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// ListForExperiences returns all reservations belonging to the given set of
// experiences, for nesting into the seller dashboard listing.
func (r *ReservationRepo) ListForExperiences(ctx context.Context, experienceIDs []uint64) ([]Reservation, error) {
	if len(experienceIDs) == 0 {
		return []Reservation{}, nil
	}
	args := make([]interface{}, len(experienceIDs))
	for i, id := range experienceIDs {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,experience_id,user_id,created_at FROM reservations WHERE experience_id IN ("+placeholders(len(args))+") ORDER BY id",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Reservation, 0)
	for rows.Next() {
		var rv Reservation
		if err := rows.Scan(&rv.ID, &rv.ExperienceID, &rv.UserID, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
