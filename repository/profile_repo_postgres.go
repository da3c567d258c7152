package repository

import (
	"context"
	"database/sql"
	"time"

	"freightflow/models"
)

type PostgresProfileRepo struct {
	DB *sql.DB
}

func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{DB: db}
}

// SaveProfile updates the profile when ID is set, otherwise inserts a new one.
func (r *PostgresProfileRepo) SaveProfile(ctx context.Context, p *models.CompanyProfile) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	mobile, err := jsonb(p.Mobile)
	if err != nil {
		return err
	}

	if p.ID > 0 {
		res, err := r.DB.ExecContext(ctx, `
			UPDATE company_profile
			SET company_name=$1, gstin=$2, address=$3, city=$4, state=$5,
				pincode=$6, mobile=$7, footnote=$8
			WHERE id=$9
		`, p.CompanyName, p.GSTIN, p.Address, p.City, p.State,
			p.Pincode, mobile, p.Footnote, p.ID)
		if err != nil {
			return err
		}
		return expectOneRow(res)
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO company_profile
		(company_name, gstin, address, city, state, pincode, mobile, footnote, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, p.CompanyName, p.GSTIN, p.Address, p.City, p.State,
		p.Pincode, mobile, p.Footnote, p.CreatedAt).Scan(&p.ID)
}

// GetProfile fetches the latest saved profile.
func (r *PostgresProfileRepo) GetProfile(ctx context.Context) (*models.CompanyProfile, error) {
	p := &models.CompanyProfile{}
	var mobile []byte

	err := r.DB.QueryRowContext(ctx, `
		SELECT id, company_name, address, city, state, pincode, gstin, footnote, mobile, created_at
		FROM company_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&p.ID, &p.CompanyName, &p.Address, &p.City, &p.State,
		&p.Pincode, &p.GSTIN, &p.Footnote, &mobile, &p.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}

	if err := fromJSONB(mobile, &p.Mobile); err != nil {
		return nil, err
	}
	return p, nil
}
