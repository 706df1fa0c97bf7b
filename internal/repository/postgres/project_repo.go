package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"plotbook/internal/domain"
	"plotbook/internal/port"
)

// projectColumns reads absent blobs back as JSON null.
const projectColumns = `id, project_name, village_name, created_at, total_land_cost,
	COALESCE(plotting_data, 'null'::jsonb) AS plotting_data,
	COALESCE(full_data, 'null'::jsonb) AS full_data`

type projectRepo struct {
	db *sqlx.DB
}

// NewProjectRepo creates a new PostgreSQL-backed ProjectRepository.
func NewProjectRepo(db *sqlx.DB) port.ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO projects (project_name, village_name, created_at, total_land_cost, plotting_data, full_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		p.ProjectName, p.VillageName, p.CreatedAt, p.TotalLandCost,
		nullableJSON(p.PlottingData), nullableJSON(p.FullData),
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}
	return &p, nil
}

func (r *projectRepo) List(ctx context.Context, offset, limit int) ([]domain.Project, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM projects"); err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List count: %w", err)
	}

	var projects []domain.Project
	err := r.db.SelectContext(ctx, &projects,
		"SELECT "+projectColumns+" FROM projects ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2",
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("projectRepo.List: %w", err)
	}
	return projects, total, nil
}

func (r *projectRepo) UpdateData(ctx context.Context, id int64, plottingData, fullData json.RawMessage) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE projects SET plotting_data = $1, full_data = $2 WHERE id = $3",
		nullableJSON(plottingData), nullableJSON(fullData), id)
	if err != nil {
		return fmt.Errorf("projectRepo.UpdateData: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// nullableJSON stores absent blobs as SQL NULL rather than an empty string.
func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return []byte(raw)
}
