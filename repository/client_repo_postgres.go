package repository

import (
	"context"
	"database/sql"
	"time"

	"freightflow/models"
)

type PostgresClientRepo struct {
	DB *sql.DB
}

func NewPostgresClientRepo(db *sql.DB) *PostgresClientRepo {
	return &PostgresClientRepo{DB: db}
}

const clientColumns = `id, name, city, address, address_type, gst_number, pan_number,
	logistics_poc, finance_poc, invoicing_type, sales_rep, created_at, updated_at`

func (r *PostgresClientRepo) CreateClient(ctx context.Context, c *models.Client) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	logistics, finance, rep, err := clientJSON(c)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO client(id, name, city, address, address_type, gst_number, pan_number,
			logistics_poc, finance_poc, invoicing_type, sales_rep, created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`, c.ID, c.Name, c.City, c.Address, c.AddressType, c.GSTNumber, c.PANNumber,
		logistics, finance, c.InvoicingType, rep, c.CreatedAt)
	return uniqueViolation(err)
}

func (r *PostgresClientRepo) UpdateClient(ctx context.Context, c *models.Client) error {
	logistics, finance, rep, err := clientJSON(c)
	if err != nil {
		return err
	}
	c.UpdatedAt = nowUTC()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE client SET
			name=$1, city=$2, address=$3, address_type=$4, gst_number=$5, pan_number=$6,
			logistics_poc=$7, finance_poc=$8, invoicing_type=$9, sales_rep=$10, updated_at=$11
		WHERE id=$12
	`, c.Name, c.City, c.Address, c.AddressType, c.GSTNumber, c.PANNumber,
		logistics, finance, c.InvoicingType, rep, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *PostgresClientRepo) GetClient(ctx context.Context, id string) (*models.Client, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM client WHERE id=$1`, id)
	c, err := scanClient(row)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (r *PostgresClientRepo) ListClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+clientColumns+` FROM client ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresClientRepo) DeleteClient(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM client WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func clientJSON(c *models.Client) (logistics, finance, rep []byte, err error) {
	if logistics, err = jsonb(c.LogisticsPOC); err != nil {
		return
	}
	if finance, err = jsonb(c.FinancePOC); err != nil {
		return
	}
	rep, err = jsonb(c.SalesRep)
	return
}

func scanClient(s rowScanner) (*models.Client, error) {
	var (
		c                       models.Client
		logistics, finance, rep []byte
		updated                 sql.NullTime
	)
	err := s.Scan(&c.ID, &c.Name, &c.City, &c.Address, &c.AddressType, &c.GSTNumber, &c.PANNumber,
		&logistics, &finance, &c.InvoicingType, &rep, &c.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if err := fromJSONB(logistics, &c.LogisticsPOC); err != nil {
		return nil, err
	}
	if err := fromJSONB(finance, &c.FinancePOC); err != nil {
		return nil, err
	}
	if err := fromJSONB(rep, &c.SalesRep); err != nil {
		return nil, err
	}
	if updated.Valid {
		c.UpdatedAt = &updated.Time
	}
	return &c, nil
}
