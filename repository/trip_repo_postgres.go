package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"freightflow/domain"
	"freightflow/models"
)

type PostgresTripRepo struct {
	DB *sql.DB
}

func NewPostgresTripRepo(db *sql.DB) *PostgresTripRepo {
	return &PostgresTripRepo{DB: db}
}

const tripColumns = `id, order_number, lr_numbers,
	client_id, client_name, client_address, client_address_type, client_city,
	destination_address, destination_city, destination_address_type,
	supplier_id, supplier_name, vehicle_id, vehicle_number, driver_name, driver_phone,
	vehicle_type, vehicle_size, vehicle_capacity, axle_type,
	pickup_date, pickup_time,
	client_freight, client_freight_overridden, supplier_freight, advance_percentage,
	advance_supplier_freight, balance_supplier_freight, margin,
	field_ops, gsm_tracking,
	status, advance_payment_status, balance_payment_status, pod_uploaded, acceptance,
	lr_copy_url, lr_copy_created_at, created_at, updated_at`

// ------------------------ Create / Update ------------------------

func (r *PostgresTripRepo) CreateTrip(ctx context.Context, t *models.Trip) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	fieldOps, err := jsonb(t.FieldOps)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trip(`+tripColumns+`)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,
			$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34,$35,$36,$37,$38,$39,$40,$41)
	`,
		t.ID, t.OrderNumber, pq.Array(t.LRNumbers),
		t.ClientID, t.ClientName, t.ClientAddress, t.ClientAddressType, t.ClientCity,
		t.DestinationAddress, t.DestinationCity, t.DestinationAddressType,
		t.SupplierID, t.SupplierName, t.VehicleID, t.VehicleNumber, t.DriverName, t.DriverPhone,
		t.VehicleType, t.VehicleSize, t.VehicleCapacity, t.AxleType,
		t.PickupDate, t.PickupTime,
		t.ClientFreight, t.FreightOverridden, t.SupplierFreight, t.AdvancePercentage,
		t.AdvanceSupplierFreight, t.BalanceSupplierFreight, t.Margin,
		fieldOps, t.GSMTracking,
		t.Status, t.AdvancePaymentStatus, t.BalancePaymentStatus, t.PODUploaded, t.Acceptance,
		t.LRCopyURL, t.LRCopyCreatedAt, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return uniqueViolation(err)
	}

	if err := r.insertChildren(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresTripRepo) UpdateTrip(ctx context.Context, t *models.Trip) error {
	fieldOps, err := jsonb(t.FieldOps)
	if err != nil {
		return err
	}
	t.UpdatedAt = nowUTC()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE trip SET
			lr_numbers=$1,
			destination_address=$2, destination_city=$3, destination_address_type=$4,
			vehicle_id=$5, vehicle_number=$6, driver_name=$7, driver_phone=$8,
			vehicle_type=$9, vehicle_size=$10, vehicle_capacity=$11, axle_type=$12,
			pickup_date=$13, pickup_time=$14,
			client_freight=$15, client_freight_overridden=$16, supplier_freight=$17, advance_percentage=$18,
			advance_supplier_freight=$19, balance_supplier_freight=$20, margin=$21,
			field_ops=$22, gsm_tracking=$23,
			status=$24, advance_payment_status=$25, balance_payment_status=$26, pod_uploaded=$27, acceptance=$28,
			updated_at=$29
		WHERE id=$30
	`,
		pq.Array(t.LRNumbers),
		t.DestinationAddress, t.DestinationCity, t.DestinationAddressType,
		t.VehicleID, t.VehicleNumber, t.DriverName, t.DriverPhone,
		t.VehicleType, t.VehicleSize, t.VehicleCapacity, t.AxleType,
		t.PickupDate, t.PickupTime,
		t.ClientFreight, t.FreightOverridden, t.SupplierFreight, t.AdvancePercentage,
		t.AdvanceSupplierFreight, t.BalanceSupplierFreight, t.Margin,
		fieldOps, t.GSMTracking,
		t.Status, t.AdvancePaymentStatus, t.BalancePaymentStatus, t.PODUploaded, t.Acceptance,
		t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	if err := expectOneRow(res); err != nil {
		return err
	}

	// Refresh materials and documents
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_material WHERE trip_id=$1`, t.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_document WHERE trip_id=$1`, t.ID); err != nil {
		return err
	}
	if err := r.insertChildren(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresTripRepo) insertChildren(ctx context.Context, tx *sql.Tx, t *models.Trip) error {
	for i, m := range t.Materials {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trip_material(trip_id, line_no, name, weight, unit, rate_per_mt)
			VALUES($1,$2,$3,$4,$5,$6)
		`, t.ID, i, m.Name, m.Weight, m.Unit, m.RatePerMT)
		if err != nil {
			return fmt.Errorf("insert material %d: %w", i, err)
		}
	}
	for _, d := range t.Documents {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO trip_document(id, trip_id, doc_type, number, filename, url, upload_date, expiry_date)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		`, d.ID, t.ID, d.Type, d.Number, d.Filename, d.URL, d.UploadDate, nullDate(d.ExpiryDate))
		if err != nil {
			return fmt.Errorf("insert document %s: %w", d.ID, err)
		}
	}
	return nil
}

// ------------------------ Read ------------------------

func (r *PostgresTripRepo) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trip WHERE id=$1`, id)
}

func (r *PostgresTripRepo) GetTripByOrderNumber(ctx context.Context, orderNumber string) (*models.Trip, error) {
	return r.getOne(ctx, `SELECT `+tripColumns+` FROM trip WHERE order_number=$1`, orderNumber)
}

func (r *PostgresTripRepo) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	return r.list(ctx, `SELECT `+tripColumns+` FROM trip ORDER BY created_at DESC`)
}

func (r *PostgresTripRepo) ListTripsBySupplier(ctx context.Context, supplierID string) ([]*models.Trip, error) {
	return r.list(ctx, `SELECT `+tripColumns+` FROM trip WHERE supplier_id=$1 ORDER BY created_at DESC`, supplierID)
}

func (r *PostgresTripRepo) getOne(ctx context.Context, query string, arg string) (*models.Trip, error) {
	t, err := scanTrip(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.loadChildren(ctx, []*models.Trip{t}); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresTripRepo) list(ctx context.Context, query string, args ...any) ([]*models.Trip, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// loadChildren fetches materials and documents for all trips in two queries.
func (r *PostgresTripRepo) loadChildren(ctx context.Context, trips []*models.Trip) error {
	if len(trips) == 0 {
		return nil
	}
	byID := make(map[string]*models.Trip, len(trips))
	ids := make([]string, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
		byID[t.ID] = t
		t.Materials = nil
		t.Documents = nil
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT trip_id, name, weight, unit, rate_per_mt
		FROM trip_material
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, line_no
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			tripID string
			m      domain.Material
		)
		if err := rows.Scan(&tripID, &m.Name, &m.Weight, &m.Unit, &m.RatePerMT); err != nil {
			return err
		}
		if t, ok := byID[tripID]; ok {
			t.Materials = append(t.Materials, m)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	docRows, err := r.DB.QueryContext(ctx, `
		SELECT trip_id, id, doc_type, number, filename, url, upload_date, expiry_date
		FROM trip_document
		WHERE trip_id = ANY($1)
		ORDER BY trip_id, upload_date
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer docRows.Close()
	for docRows.Next() {
		var (
			tripID string
			d      models.Document
			expiry sql.NullTime
		)
		if err := docRows.Scan(&tripID, &d.ID, &d.Type, &d.Number, &d.Filename, &d.URL, &d.UploadDate, &expiry); err != nil {
			return err
		}
		d.ExpiryDate = formatDate(expiry)
		if t, ok := byID[tripID]; ok {
			t.Documents = append(t.Documents, d)
		}
	}
	return docRows.Err()
}

func scanTrip(s rowScanner) (*models.Trip, error) {
	var (
		t         models.Trip
		pickup    sql.NullTime
		fieldOps  []byte
		copyURL   sql.NullString
		copyAt    sql.NullTime
		updatedAt sql.NullTime
	)
	err := s.Scan(
		&t.ID, &t.OrderNumber, pq.Array(&t.LRNumbers),
		&t.ClientID, &t.ClientName, &t.ClientAddress, &t.ClientAddressType, &t.ClientCity,
		&t.DestinationAddress, &t.DestinationCity, &t.DestinationAddressType,
		&t.SupplierID, &t.SupplierName, &t.VehicleID, &t.VehicleNumber, &t.DriverName, &t.DriverPhone,
		&t.VehicleType, &t.VehicleSize, &t.VehicleCapacity, &t.AxleType,
		&pickup, &t.PickupTime,
		&t.ClientFreight, &t.FreightOverridden, &t.SupplierFreight, &t.AdvancePercentage,
		&t.AdvanceSupplierFreight, &t.BalanceSupplierFreight, &t.Margin,
		&fieldOps, &t.GSMTracking,
		&t.Status, &t.AdvancePaymentStatus, &t.BalancePaymentStatus, &t.PODUploaded, &t.Acceptance,
		&copyURL, &copyAt, &t.CreatedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.PickupDate = formatDate(pickup)
	if err := fromJSONB(fieldOps, &t.FieldOps); err != nil {
		return nil, err
	}
	if copyURL.Valid {
		t.LRCopyURL = &copyURL.String
	}
	if copyAt.Valid {
		t.LRCopyCreatedAt = &copyAt.Time
	}
	if updatedAt.Valid {
		t.UpdatedAt = &updatedAt.Time
	}
	return &t, nil
}

// ------------------------ LR copy ------------------------

func (r *PostgresTripRepo) UpdateLRCopy(ctx context.Context, id, url string, createdAt time.Time) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE trip
		SET lr_copy_url = $1, lr_copy_created_at = $2
		WHERE id = $3
	`, url, createdAt, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ------------------------ Delete ------------------------

func (r *PostgresTripRepo) DeleteTrip(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_material WHERE trip_id=$1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_document WHERE trip_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM trip WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if err := expectOneRow(res); err != nil {
		return err
	}
	return tx.Commit()
}
