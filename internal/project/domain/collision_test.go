package domain

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRenameForCollisionAppendsTimestamp(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)

	renamed := RenameForCollision("Acme Corp Project", now)

	assert.Equal(t, "Acme Corp Project (2026-08-29 14:05)", renamed)
	assert.Regexp(t, regexp.MustCompile(`^Acme Corp Project \(\d{4}-\d{2}-\d{2} \d{2}:\d{2}\)$`), renamed)
}

func TestRenameForCollisionStripsPriorSuffix(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 6, 0, 0, time.UTC)

	renamed := RenameForCollision("Acme Corp Project (2026-08-29 14:05)", now)

	assert.Equal(t, "Acme Corp Project (2026-08-29 14:06)", renamed)
}

func TestRenameForCollisionLeavesUnrelatedParensAlone(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 5, 0, 0, time.UTC)

	renamed := RenameForCollision("Acme (EU) Launch", now)

	assert.Equal(t, "Acme (EU) Launch (2026-08-29 14:05)", renamed)
}
