package port

import (
	"context"
	"encoding/json"

	"plotbook/internal/domain"
)

// ProjectRepository defines the contract for project persistence.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, offset, limit int) ([]domain.Project, int, error)
	UpdateData(ctx context.Context, id int64, plottingData, fullData json.RawMessage) error
	Delete(ctx context.Context, id int64) error
}
