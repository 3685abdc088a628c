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

type serviceRow struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
}

func (r serviceRow) toModel() *model.Service {
	return model.RestoreService(r.ID, r.Name, r.Description, r.Price)
}

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `INSERT INTO services (id, name, description, price) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query,
		service.ID, service.Name(), service.Description(), service.Price())
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `SELECT id, name, description, price FROM services WHERE id = $1`
	var row serviceRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return row.toModel(), nil
}

func (r *serviceRepository) Update(ctx context.Context, service *model.Service) error {
	query := `UPDATE services SET name = $1, description = $2, price = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query,
		service.Name(), service.Description(), service.Price(), service.ID)
	return err
}

func (r *serviceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT id, name, description, price FROM services ORDER BY name`
	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	services := make([]*model.Service, 0, len(rows))
	for _, row := range rows {
		services = append(services, row.toModel())
	}
	return services, nil
}
