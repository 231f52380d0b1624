package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/herculesvale/vale-service/internal/models"
)

// PostgresVoucherRepository persists vouchers with database/sql.
type PostgresVoucherRepository struct {
	db *sql.DB
}

// NewPostgresVoucherRepository creates a postgres-backed voucher store.
func NewPostgresVoucherRepository(db *sql.DB) *PostgresVoucherRepository {
	return &PostgresVoucherRepository{db: db}
}

const voucherColumns = `id, folio, distributor_id, sub_client_id, sub_client_name, amount,
	is_used, created_at, used_at, expires_at, payment_type, payment_start_date, installments`

func (r *PostgresVoucherRepository) Add(ctx context.Context, v *models.Voucher) error {
	query := `
		INSERT INTO vouchers
		(id, folio, distributor_id, sub_client_id, sub_client_name, amount,
		 is_used, created_at, used_at, expires_at, payment_type, payment_start_date, installments)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Folio,
		v.DistributorID,
		nullString(v.SubClientID),
		v.SubClientName,
		v.Amount,
		v.IsUsed,
		v.CreatedAt,
		v.UsedAt,
		v.ExpiresAt,
		string(v.PaymentType),
		v.PaymentStartDate,
		v.Installments,
	)
	if err != nil {
		return fmt.Errorf("insert voucher: %w", err)
	}
	return nil
}

func (r *PostgresVoucherRepository) GetByID(ctx context.Context, distributorID, id string) (*models.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 AND distributor_id = $2`

	v, err := scanVoucher(r.db.QueryRowContext(ctx, query, id, distributorID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVoucherNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *PostgresVoucherRepository) ListByDistributor(ctx context.Context, distributorID string) ([]*models.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE distributor_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, distributorID)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	defer rows.Close()

	var out []*models.Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// MarkUsed locks the row before flipping the flag so concurrent callers
// for the same voucher serialize and the transition stays monotonic.
func (r *PostgresVoucherRepository) MarkUsed(ctx context.Context, distributorID, id string, usedAt time.Time) (*models.Voucher, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var isUsed bool
	lockQ := `SELECT is_used FROM vouchers WHERE id = $1 AND distributor_id = $2 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, lockQ, id, distributorID).Scan(&isUsed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrVoucherNotFound
		}
		return nil, fmt.Errorf("lock voucher: %w", err)
	}
	if isUsed {
		return nil, models.ErrVoucherUsed
	}

	updateQ := `UPDATE vouchers SET is_used = TRUE, used_at = $3 WHERE id = $1 AND distributor_id = $2`
	if _, err := tx.ExecContext(ctx, updateQ, id, distributorID, usedAt); err != nil {
		return nil, fmt.Errorf("mark voucher used: %w", err)
	}

	selectQ := `SELECT ` + voucherColumns + ` FROM vouchers WHERE id = $1 AND distributor_id = $2`
	v, err := scanVoucher(tx.QueryRowContext(ctx, selectQ, id, distributorID))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVoucher(row rowScanner) (*models.Voucher, error) {
	var v models.Voucher
	var subClientID sql.NullString
	var usedAt sql.NullTime
	var paymentType string

	err := row.Scan(
		&v.ID,
		&v.Folio,
		&v.DistributorID,
		&subClientID,
		&v.SubClientName,
		&v.Amount,
		&v.IsUsed,
		&v.CreatedAt,
		&usedAt,
		&v.ExpiresAt,
		&paymentType,
		&v.PaymentStartDate,
		&v.Installments,
	)
	if err != nil {
		return nil, err
	}

	v.SubClientID = subClientID.String
	if usedAt.Valid {
		ts := usedAt.Time
		v.UsedAt = &ts
	}
	v.PaymentType = models.PaymentType(paymentType)
	return &v, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// PostgresSubClientRepository persists sub-clients with database/sql.
type PostgresSubClientRepository struct {
	db *sql.DB
}

// NewPostgresSubClientRepository creates a postgres-backed roster.
func NewPostgresSubClientRepository(db *sql.DB) *PostgresSubClientRepository {
	return &PostgresSubClientRepository{db: db}
}

func (r *PostgresSubClientRepository) Add(ctx context.Context, sc *models.SubClient) error {
	query := `
		INSERT INTO sub_clients (id, distributor_id, name, address, phone, date_of_birth, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`

	_, err := r.db.ExecContext(ctx, query,
		sc.ID,
		sc.DistributorID,
		sc.Name,
		sc.Address,
		sc.Phone,
		sc.DateOfBirth,
		sc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sub-client: %w", err)
	}
	return nil
}

func (r *PostgresSubClientRepository) ListByDistributor(ctx context.Context, distributorID string) ([]*models.SubClient, error) {
	query := `
		SELECT id, distributor_id, name, address, phone, date_of_birth, created_at
		FROM sub_clients
		WHERE distributor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, distributorID)
	if err != nil {
		return nil, fmt.Errorf("list sub-clients: %w", err)
	}
	defer rows.Close()

	var out []*models.SubClient
	for rows.Next() {
		var sc models.SubClient
		if err := rows.Scan(&sc.ID, &sc.DistributorID, &sc.Name, &sc.Address, &sc.Phone, &sc.DateOfBirth, &sc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &sc)
	}
	return out, rows.Err()
}
