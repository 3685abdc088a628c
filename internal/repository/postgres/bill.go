package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type billRow struct {
	ID        uuid.UUID `db:"id"`
	PatientID uuid.UUID `db:"patient_id"`
	BillDate  time.Time `db:"bill_date"`
	Amount    float64   `db:"amount"`
	Status    string    `db:"status"`
}

type billServiceRow struct {
	BillID    uuid.UUID `db:"bill_id"`
	ServiceID uuid.UUID `db:"service_id"`
	Quantity  int       `db:"quantity"`
	Notes     string    `db:"notes"`

	// joined service columns
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
}

type billRepository struct {
	BaseRepository
}

func NewBillRepository(db *sqlx.DB) repository.BillRepository {
	return &billRepository{NewBaseRepository(db)}
}

// Create persists the bill and its line items as one unit. The stored
// amount is the aggregate the model maintained while items were added.
func (r *billRepository) Create(ctx context.Context, bill *model.Bill) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `INSERT INTO bills (id, patient_id, bill_date, amount, status)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.ExecContext(ctx, query,
			bill.ID, bill.PatientID(), bill.BillDate(), bill.Amount(), string(bill.Status())); err != nil {
			return fmt.Errorf("failed to create bill: %w", err)
		}
		return insertLineItems(ctx, tx, bill)
	})
}

func (r *billRepository) Get(ctx context.Context, id uuid.UUID) (*model.Bill, error) {
	var row billRow
	query := `SELECT id, patient_id, bill_date, amount, status FROM bills WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("bill", err)
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	var pRow patientRow
	pQuery := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &pRow, pQuery, row.PatientID); err != nil {
		return nil, fmt.Errorf("failed to load bill patient: %w", err)
	}

	bill := model.RestoreBill(row.ID, pRow.toModel(), row.BillDate, model.BillStatus(row.Status))
	if err := r.attachLineItems(ctx, bill, nil); err != nil {
		return nil, err
	}
	return bill, nil
}

// Update rewrites the bill row and replaces its line items; the bill
// owns them, so the stored set always mirrors the in-memory set.
func (r *billRepository) Update(ctx context.Context, bill *model.Bill) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE bills SET patient_id = $1, bill_date = $2, amount = $3, status = $4 WHERE id = $5`
		if _, err := tx.ExecContext(ctx, query,
			bill.PatientID(), bill.BillDate(), bill.Amount(), string(bill.Status()), bill.ID); err != nil {
			return fmt.Errorf("failed to update bill: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_services WHERE bill_id = $1`, bill.ID); err != nil {
			return fmt.Errorf("failed to clear bill line items: %w", err)
		}
		return insertLineItems(ctx, tx, bill)
	})
}

// Delete removes the bill and, with it, every line item it owns.
func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM bill_services WHERE bill_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bill line items: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete bill: %w", err)
		}
		return nil
	})
}

func (r *billRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Bill, error) {
	var pRow patientRow
	pQuery := `SELECT id, username, password_hash, first_name, last_name, date_of_birth, contact_number, email
		FROM patients WHERE id = $1`
	if err := r.db.GetContext(ctx, &pRow, pQuery, patientID); err != nil {
		return nil, fmt.Errorf("failed to load patient: %w", err)
	}
	patient := pRow.toModel()

	var rows []billRow
	query := `SELECT id, patient_id, bill_date, amount, status FROM bills WHERE patient_id = $1 ORDER BY bill_date`
	if err := r.db.SelectContext(ctx, &rows, query, patientID); err != nil {
		return nil, err
	}

	// Share one service entity across all of the patient's bills.
	services := make(map[uuid.UUID]*model.Service)
	bills := make([]*model.Bill, 0, len(rows))
	for _, row := range rows {
		bill := model.RestoreBill(row.ID, patient, row.BillDate, model.BillStatus(row.Status))
		if err := r.attachLineItems(ctx, bill, services); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}

func (r *billRepository) attachLineItems(ctx context.Context, bill *model.Bill, services map[uuid.UUID]*model.Service) error {
	var rows []billServiceRow
	query := `
		SELECT bs.bill_id, bs.service_id, bs.quantity, bs.notes, s.name, s.description, s.price
		FROM bill_services bs
		JOIN services s ON s.id = bs.service_id
		WHERE bs.bill_id = $1
		ORDER BY bs.service_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, bill.ID); err != nil {
		return fmt.Errorf("failed to load bill line items: %w", err)
	}
	for _, row := range rows {
		var svc *model.Service
		if services != nil {
			svc = services[row.ServiceID]
		}
		if svc == nil {
			svc = model.RestoreService(row.ServiceID, row.Name, row.Description, row.Price)
			if services != nil {
				services[row.ServiceID] = svc
			}
		}
		model.RestoreLineItem(bill, svc, row.Quantity, row.Notes)
	}
	return nil
}

func insertLineItems(ctx context.Context, tx *sqlx.Tx, bill *model.Bill) error {
	query := `INSERT INTO bill_services (bill_id, service_id, quantity, notes) VALUES ($1, $2, $3, $4)`
	for _, item := range bill.LineItems() {
		if _, err := tx.ExecContext(ctx, query,
			item.BillID(), item.ServiceID(), item.Quantity(), item.Notes()); err != nil {
			return fmt.Errorf("failed to insert bill line item: %w", err)
		}
	}
	return nil
}
