package noop_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"plotbook/internal/email/noop"
	"plotbook/internal/port"
)

func TestNoopSender_LogsLink(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := noop.NewNoopSender(zap.New(core))

	err := sender.SendStatementLink(context.Background(), port.StatementEmail{
		ToEmail:     "buyer@example.com",
		PlotNumber:  "A-12",
		DownloadURL: "https://example.com/s.pdf",
	})
	require.NoError(t, err)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "buyer@example.com", fields["to"])
	assert.Equal(t, "https://example.com/s.pdf", fields["url"])
}
