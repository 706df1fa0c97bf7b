package ses_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"plotbook/internal/email/ses"
	"plotbook/internal/port"
)

func TestStatementSubject(t *testing.T) {
	assert.Equal(t, "Payment statement for plot 7", ses.StatementSubject(port.StatementEmail{PlotNumber: "7"}))
	assert.Equal(t, "Payment statement for plot 7, Green Acres",
		ses.StatementSubject(port.StatementEmail{PlotNumber: "7", ProjectName: "Green Acres"}))
}

func TestBuildStatementHTML_EscapesInput(t *testing.T) {
	body := ses.BuildStatementHTML(port.StatementEmail{
		ToName:      "<b>Ravi</b>",
		PlotNumber:  "A&1",
		DownloadURL: "https://example.com/x?a=1&b=2",
		ExpiryHours: 24,
	})
	assert.Contains(t, body, "&lt;b&gt;Ravi&lt;/b&gt;")
	assert.Contains(t, body, "A&amp;1")
	assert.Contains(t, body, "a=1&amp;b=2")
	assert.Contains(t, body, "24 hours")
}

func TestBuildStatementText_DefaultGreeting(t *testing.T) {
	body := ses.BuildStatementText(port.StatementEmail{PlotNumber: "9", DownloadURL: "u", ExpiryHours: 1})
	assert.Contains(t, body, "Hi there,")
	assert.Contains(t, body, "plot 9")
}
