package noop

import (
	"context"

	"go.uber.org/zap"

	"plotbook/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that logs statement links instead of sending them.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendStatementLink(_ context.Context, msg port.StatementEmail) error {
	s.logger.Info("noop email: statement link",
		zap.String("to", msg.ToEmail),
		zap.String("name", msg.ToName),
		zap.String("project", msg.ProjectName),
		zap.String("plot", msg.PlotNumber),
		zap.String("url", msg.DownloadURL))
	return nil
}
