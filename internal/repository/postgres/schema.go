package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		date_of_birth DATE NOT NULL,
		contact_number TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		specialization TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		doctor_id UUID NOT NULL REFERENCES doctors(id),
		appointment_date TIMESTAMPTZ NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Scheduled'
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS bills (
		id UUID PRIMARY KEY,
		patient_id UUID NOT NULL REFERENCES patients(id),
		bill_date TIMESTAMPTZ NOT NULL,
		amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Unpaid'
	)`,
	`CREATE TABLE IF NOT EXISTS bill_services (
		bill_id UUID NOT NULL REFERENCES bills(id) ON DELETE CASCADE,
		service_id UUID NOT NULL REFERENCES services(id),
		quantity INTEGER NOT NULL DEFAULT 1,
		notes TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (bill_id, service_id)
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id UUID PRIMARY KEY,
		event_type TEXT NOT NULL,
		payload JSONB NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		error TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_patient ON appointments(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_doctor ON appointments(doctor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_bills_patient ON bills(patient_id)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_status ON outbox_events(status, created_at)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
