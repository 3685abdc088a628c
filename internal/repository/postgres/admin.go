package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/itsivali/careconnect-v1/internal/model"
	"github.com/itsivali/careconnect-v1/internal/repository"
	apperrors "github.com/itsivali/careconnect-v1/pkg/errors"
)

type adminRow struct {
	ID           uuid.UUID        `db:"id"`
	Username     string           `db:"username"`
	PasswordHash model.Credential `db:"password_hash"`
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) repository.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (id, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`
	_, err := r.db.ExecContext(ctx, query, admin.ID, admin.Username(), admin.Credential())
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	query := `SELECT id, username, password_hash FROM admins WHERE username = $1`
	var row adminRow
	if err := r.db.GetContext(ctx, &row, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin", err)
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return model.RestoreAdmin(row.ID, row.Username, row.PasswordHash), nil
}
