package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/lca-cli/internal/model"
	"github.com/sells-group/lca-cli/internal/store"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	runs := []store.RunSummary{
		{
			ID:            "abc12345-6789-0000-0000-000000000000",
			Kind:          model.KindProcessing,
			Subject:       "Tema Grain Processing and Milling Company Limited",
			Country:       model.CountryGhana,
			SingleScore:   61.25,
			GlobalWarming: 412,
			Unit:          "kg CO2-eq",
			Confidence:    model.ConfidenceMedium,
			CreatedAt:     now,
		},
	}

	var buf bytes.Buffer
	formatRunsList(&buf, runs)

	output := buf.String()
	assert.Contains(t, output, "SUBJECT")
	assert.Contains(t, output, "abc12345")
	assert.NotContains(t, output, "abc12345-6789")
	assert.Contains(t, output, "Tema Grain Processing and M...")
	assert.Contains(t, output, "processing")
	assert.Contains(t, output, "61.2500")
	assert.Contains(t, output, "412 kg CO2-eq")
	assert.Contains(t, output, "2026-06-15 10:30")
}

func TestTruncateID(t *testing.T) {
	assert.Equal(t, "abcdefgh", truncateID("abcdefghijk"))
	assert.Equal(t, "short", truncateID("short"))
}
