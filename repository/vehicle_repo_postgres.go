package repository

import (
	"context"
	"database/sql"
	"time"

	"freightflow/models"
)

type PostgresVehicleRepo struct {
	DB *sql.DB
}

func NewPostgresVehicleRepo(db *sql.DB) *PostgresVehicleRepo {
	return &PostgresVehicleRepo{DB: db}
}

const vehicleColumns = `id, registration_number, supplier_id, supplier_name, vehicle_type, vehicle_size,
	vehicle_capacity, axle_type, driver_name, driver_phone, insurance_expiry, documents_uploaded,
	created_at, updated_at`

func (r *PostgresVehicleRepo) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO vehicle(id, registration_number, supplier_id, supplier_name, vehicle_type, vehicle_size,
			vehicle_capacity, axle_type, driver_name, driver_phone, insurance_expiry, documents_uploaded, created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, v.ID, v.RegistrationNumber, v.SupplierID, v.SupplierName, v.VehicleType, v.VehicleSize,
		v.VehicleCapacity, v.AxleType, v.DriverName, v.DriverPhone, nullDate(v.InsuranceExpiry),
		v.DocumentsUploaded, v.CreatedAt)
	return uniqueViolation(err)
}

func (r *PostgresVehicleRepo) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	v.UpdatedAt = nowUTC()
	res, err := r.DB.ExecContext(ctx, `
		UPDATE vehicle SET
			registration_number=$1, supplier_id=$2, supplier_name=$3, vehicle_type=$4, vehicle_size=$5,
			vehicle_capacity=$6, axle_type=$7, driver_name=$8, driver_phone=$9, insurance_expiry=$10,
			documents_uploaded=$11, updated_at=$12
		WHERE id=$13
	`, v.RegistrationNumber, v.SupplierID, v.SupplierName, v.VehicleType, v.VehicleSize,
		v.VehicleCapacity, v.AxleType, v.DriverName, v.DriverPhone, nullDate(v.InsuranceExpiry),
		v.DocumentsUploaded, v.UpdatedAt, v.ID)
	if err != nil {
		return uniqueViolation(err)
	}
	return expectOneRow(res)
}

func (r *PostgresVehicleRepo) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+vehicleColumns+` FROM vehicle WHERE id=$1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *PostgresVehicleRepo) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	return r.list(ctx, `SELECT `+vehicleColumns+` FROM vehicle ORDER BY created_at DESC`)
}

func (r *PostgresVehicleRepo) ListVehiclesBySupplier(ctx context.Context, supplierID string) ([]*models.Vehicle, error) {
	return r.list(ctx, `SELECT `+vehicleColumns+` FROM vehicle WHERE supplier_id=$1 ORDER BY created_at DESC`, supplierID)
}

func (r *PostgresVehicleRepo) list(ctx context.Context, query string, args ...any) ([]*models.Vehicle, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PostgresVehicleRepo) DeleteVehicle(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM vehicle WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func scanVehicle(s rowScanner) (*models.Vehicle, error) {
	var (
		v       models.Vehicle
		expiry  sql.NullTime
		updated sql.NullTime
	)
	err := s.Scan(&v.ID, &v.RegistrationNumber, &v.SupplierID, &v.SupplierName, &v.VehicleType,
		&v.VehicleSize, &v.VehicleCapacity, &v.AxleType, &v.DriverName, &v.DriverPhone,
		&expiry, &v.DocumentsUploaded, &v.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	v.InsuranceExpiry = formatDate(expiry)
	if updated.Valid {
		v.UpdatedAt = &updated.Time
	}
	return &v, nil
}
