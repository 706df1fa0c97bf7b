package service

import (
	"context"
	"encoding/json"
	"fmt"

	"plotbook/internal/domain"
	"plotbook/internal/port"
)

// projectState is a project with both blobs decoded, ready to mutate and save.
type projectState struct {
	project  *domain.Project
	plotting *domain.PlottingData
	snapshot *domain.ProjectSnapshot
}

// loadProjectState fetches a project and decodes its blobs. A project saved
// without plotting data cannot be opened.
func loadProjectState(ctx context.Context, repo port.ProjectRepository, id int64) (*projectState, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.HasData() {
		return nil, domain.ErrProjectDataMissing
	}

	var plotting domain.PlottingData
	if err := json.Unmarshal(p.PlottingData, &plotting); err != nil {
		return nil, fmt.Errorf("%w: decoding plotting data: %v", domain.ErrProjectDataMissing, err)
	}
	var snapshot domain.ProjectSnapshot
	if err := json.Unmarshal(p.FullData, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: decoding full data: %v", domain.ErrProjectDataMissing, err)
	}
	return &projectState{project: p, plotting: &plotting, snapshot: &snapshot}, nil
}

// save writes both blobs back. The snapshot always mirrors the plotting data.
func (st *projectState) save(ctx context.Context, repo port.ProjectRepository) error {
	st.snapshot.Plotting = st.plotting
	plottingJSON, fullJSON, err := encodeBlobs(st.plotting, st.snapshot)
	if err != nil {
		return err
	}
	if err := repo.UpdateData(ctx, st.project.ID, plottingJSON, fullJSON); err != nil {
		return err
	}
	st.project.PlottingData = plottingJSON
	st.project.FullData = fullJSON
	return nil
}

// plot returns the plot with the given id.
func (st *projectState) plot(plotID string) (*domain.Plot, error) {
	i := st.plotting.FindPlot(plotID)
	if i < 0 {
		return nil, domain.ErrPlotNotFound
	}
	return &st.plotting.PlotSales[i], nil
}

func (st *projectState) detail() *domain.ProjectDetail {
	p := st.project
	return &domain.ProjectDetail{
		ID:            p.ID,
		ProjectName:   p.ProjectName,
		VillageName:   p.VillageName,
		CreatedAt:     p.CreatedAt,
		TotalLandCost: p.TotalLandCost,
		Plotting:      *st.plotting,
		Snapshot:      st.snapshot,
	}
}

func encodeBlobs(plotting *domain.PlottingData, snapshot *domain.ProjectSnapshot) (plottingJSON, fullJSON json.RawMessage, err error) {
	plottingJSON, err = json.Marshal(plotting)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding plotting data: %w", err)
	}
	fullJSON, err = json.Marshal(snapshot)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding full data: %w", err)
	}
	return plottingJSON, fullJSON, nil
}
