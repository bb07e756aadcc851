package repository

import (
	"context"
	"database/sql"
	"time"
)

// SellerApplication mirrors the 'seller_applications' table. Applications
// are filed by unauthenticated visitors and are never linked to a user row
// automatically; promotion to seller happens out of band.
type SellerApplication struct {
	ID                    uint64
	Email                 string
	Name                  string
	Phone                 sql.NullString
	KakaoID               sql.NullString
	ExperienceTitle       string
	ExperienceDescription string
	ExperienceCategory    string
	PricePerHour          sql.NullInt64
	Status                string
	CreatedAt             time.Time
}

type SellerApplicationRepo struct{ DB *sql.DB }

func NewSellerApplicationRepo(db *sql.DB) *SellerApplicationRepo {
	return &SellerApplicationRepo{DB: db}
}

// Create inserts a seller application and returns the stored row.
func (r *SellerApplicationRepo) Create(ctx context.Context, app SellerApplication) (SellerApplication, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO seller_applications
		 (email, name, phone, kakao_id, experience_title, experience_description, experience_category, price_per_hour)
		 VALUES (?,?,?,?,?,?,?,?)`,
		app.Email, app.Name, app.Phone, app.KakaoID,
		app.ExperienceTitle, app.ExperienceDescription, app.ExperienceCategory, app.PricePerHour)
	if err != nil {
		return SellerApplication{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return SellerApplication{}, err
	}
	var out SellerApplication
	err = r.DB.QueryRowContext(ctx,
		`SELECT id,email,name,phone,kakao_id,experience_title,experience_description,experience_category,price_per_hour,status,created_at
		 FROM seller_applications WHERE id=? LIMIT 1`, uint64(id)).
		Scan(&out.ID, &out.Email, &out.Name, &out.Phone, &out.KakaoID,
			&out.ExperienceTitle, &out.ExperienceDescription, &out.ExperienceCategory,
			&out.PricePerHour, &out.Status, &out.CreatedAt)
	return out, err
}
