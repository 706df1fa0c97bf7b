package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plotbook/internal/calculator"
	"plotbook/internal/domain"
	"plotbook/internal/export"
	"plotbook/internal/port"
)

// ReportFile is a rendered document ready to download.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ShareStatementInput is the DTO for emailing a statement link.
type ShareStatementInput struct {
	Email  string
	Name   string
	Format domain.ExportFormat
}

// SharedStatement describes an uploaded statement and its download link.
type SharedStatement struct {
	Filename  string    `json:"filename"`
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
	Emailed   bool      `json:"emailed"`
}

// ReportServiceConfig holds rendering and sharing settings.
type ReportServiceConfig struct {
	Options       export.Options
	Bucket        string
	KeyPrefix     string
	PresignExpiry int64
}

// ReportService renders deal reports and plot statements.
type ReportService interface {
	DealReport(ctx context.Context, in *domain.DealInput) (*ReportFile, error)
	Statement(ctx context.Context, projectID int64, plotID string, format domain.ExportFormat) (*ReportFile, error)
	ShareStatement(ctx context.Context, projectID int64, plotID string, input *ShareStatementInput) (*SharedStatement, error)
}

type reportService struct {
	projectRepo port.ProjectRepository
	dealSvc     DealService
	storage     port.ObjectStorage
	email       port.EmailSender
	cfg         ReportServiceConfig
	logger      *zap.Logger
	today       func() domain.Date
	now         func() time.Time
}

// NewReportService creates a new ReportService.
func NewReportService(
	projectRepo port.ProjectRepository,
	dealSvc DealService,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg ReportServiceConfig,
	logger *zap.Logger,
) ReportService {
	return &reportService{
		projectRepo: projectRepo,
		dealSvc:     dealSvc,
		storage:     storage,
		email:       email,
		cfg:         cfg,
		logger:      logger,
		today:       domain.Today,
		now:         time.Now,
	}
}

func (s *reportService) DealReport(_ context.Context, in *domain.DealInput) (*ReportFile, error) {
	res := s.dealSvc.Calculate(in)
	today := s.today()

	var buf bytes.Buffer
	if err := export.DealPDF(&buf, in, res, today, s.cfg.Options); err != nil {
		return nil, err
	}
	return &ReportFile{
		Filename:    export.DealFilename(in.Identity.VillageName, today),
		ContentType: domain.ExportContentTypes[domain.ExportPDF],
		Data:        buf.Bytes(),
	}, nil
}

func (s *reportService) Statement(ctx context.Context, projectID int64, plotID string, format domain.ExportFormat) (*ReportFile, error) {
	file, _, err := s.renderStatement(ctx, projectID, plotID, format)
	return file, err
}

func (s *reportService) renderStatement(ctx context.Context, projectID int64, plotID string, format domain.ExportFormat) (*ReportFile, *export.Statement, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, nil, domain.ErrUnsupportedFormat
	}

	stmt, err := s.loadStatement(ctx, projectID, plotID)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	switch format {
	case domain.ExportPDF:
		err = export.StatementPDF(&buf, stmt, s.cfg.Options)
	case domain.ExportXLSX:
		err = export.StatementXLSX(&buf, stmt, s.cfg.Options)
	case domain.ExportCSV:
		err = export.StatementCSV(&buf, stmt)
	}
	if err != nil {
		return nil, nil, err
	}

	return &ReportFile{
		Filename:    export.StatementFilename(stmt.Plot.PlotNumber, stmt.Plot.CustomerName, stmt.VillageName, format),
		ContentType: contentType,
		Data:        buf.Bytes(),
	}, stmt, nil
}

func (s *reportService) ShareStatement(ctx context.Context, projectID int64, plotID string, input *ShareStatementInput) (*SharedStatement, error) {
	format := input.Format
	if format == "" {
		format = domain.ExportPDF
	}
	file, stmt, err := s.renderStatement(ctx, projectID, plotID, format)
	if err != nil {
		return nil, err
	}

	key := path.Join(strings.Trim(s.cfg.KeyPrefix, "/"),
		fmt.Sprintf("project-%d", projectID),
		fmt.Sprintf("%s-%s", uuid.New().String(), file.Filename))

	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.cfg.Bucket,
		Key:                key,
		Body:               bytes.NewReader(file.Data),
		ContentType:        file.ContentType,
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, file.Filename),
		Size:               int64(len(file.Data)),
	})
	if err != nil {
		s.logger.Error("statement upload failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		s.discardUpload(ctx, key)
		return nil, fmt.Errorf("presigning statement: %w", err)
	}

	shared := &SharedStatement{
		Filename:  file.Filename,
		Key:       key,
		URL:       url,
		ExpiresAt: s.now().UTC().Add(time.Duration(s.cfg.PresignExpiry) * time.Second),
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return shared, nil
	}

	err = s.email.SendStatementLink(ctx, port.StatementEmail{
		ToEmail:     email,
		ToName:      strings.TrimSpace(input.Name),
		ProjectName: stmt.ProjectName,
		PlotNumber:  stmt.Plot.PlotNumber,
		DownloadURL: url,
		ExpiryHours: s.cfg.PresignExpiry / 3600,
	})
	if err != nil {
		s.logger.Error("statement email failed", zap.String("to", email), zap.Error(err))
		s.discardUpload(ctx, key)
		return nil, fmt.Errorf("%w: %v", domain.ErrEmailFailed, err)
	}
	shared.Emailed = true

	s.logger.Info("statement shared",
		zap.Int64("project_id", projectID),
		zap.String("plot_id", plotID),
		zap.String("key", key))
	return shared, nil
}

// discardUpload removes a shared statement whose link was never handed out.
func (s *reportService) discardUpload(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, s.cfg.Bucket, key); err != nil {
		s.logger.Warn("failed to remove unshared statement", zap.String("key", key), zap.Error(err))
	}
}

func (s *reportService) loadStatement(ctx context.Context, projectID int64, plotID string) (*export.Statement, error) {
	st, err := loadProjectState(ctx, s.projectRepo, projectID)
	if err != nil {
		return nil, err
	}
	plot, err := st.plot(plotID)
	if err != nil {
		return nil, err
	}
	if plot.Deal == nil {
		return nil, domain.ErrTimelineNotBuilt
	}
	return &export.Statement{
		ProjectName: st.project.ProjectName,
		VillageName: st.project.VillageName,
		Plot:        *plot,
		Schedule:    plot.Deal.Schedule,
		Summary:     calculator.SummarizeTimeline(plot.Deal.Schedule),
		GeneratedOn: s.today(),
	}, nil
}
