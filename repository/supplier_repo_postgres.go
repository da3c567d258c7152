package repository

import (
	"context"
	"database/sql"
	"time"

	"freightflow/models"
)

type PostgresSupplierRepo struct {
	DB *sql.DB
}

func NewPostgresSupplierRepo(db *sql.DB) *PostgresSupplierRepo {
	return &PostgresSupplierRepo{DB: db}
}

const supplierColumns = `id, name, city, address, contact_person, bank_details, gst_number, created_at, updated_at`

func (r *PostgresSupplierRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	contact, bank, err := supplierJSON(s)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO supplier(id, name, city, address, contact_person, bank_details, gst_number, created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8)
	`, s.ID, s.Name, s.City, s.Address, contact, bank, s.GSTNumber, s.CreatedAt)
	return uniqueViolation(err)
}

func (r *PostgresSupplierRepo) UpdateSupplier(ctx context.Context, s *models.Supplier) error {
	contact, bank, err := supplierJSON(s)
	if err != nil {
		return err
	}
	s.UpdatedAt = nowUTC()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE supplier SET
			name=$1, city=$2, address=$3, contact_person=$4, bank_details=$5, gst_number=$6, updated_at=$7
		WHERE id=$8
	`, s.Name, s.City, s.Address, contact, bank, s.GSTNumber, s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PostgresSupplierRepo) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+supplierColumns+` FROM supplier WHERE id=$1`, id)
	s, err := scanSupplier(row)
	if err != nil {
		return nil, notFound(err)
	}
	return s, nil
}

func (r *PostgresSupplierRepo) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+supplierColumns+` FROM supplier ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresSupplierRepo) DeleteSupplier(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM supplier WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func supplierJSON(s *models.Supplier) (contact, bank []byte, err error) {
	if contact, err = jsonb(s.ContactPerson); err != nil {
		return
	}
	bank, err = jsonb(s.BankDetails)
	return
}

func scanSupplier(sc rowScanner) (*models.Supplier, error) {
	var (
		s             models.Supplier
		contact, bank []byte
		updated       sql.NullTime
	)
	err := sc.Scan(&s.ID, &s.Name, &s.City, &s.Address, &contact, &bank, &s.GSTNumber, &s.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if err := fromJSONB(contact, &s.ContactPerson); err != nil {
		return nil, err
	}
	if err := fromJSONB(bank, &s.BankDetails); err != nil {
		return nil, err
	}
	if updated.Valid {
		s.UpdatedAt = &updated.Time
	}
	return &s, nil
}
