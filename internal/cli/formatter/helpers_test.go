package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/chantier/internal/domain"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    int
		filled int
		suffix string
	}{
		{"zero", 0, 0, "  0%"},
		{"half", 50, 5, " 50%"},
		{"full", 100, 10, "100%"},
		{"clamped high", 140, 10, "100%"},
		{"clamped low", -5, 0, "  0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, 10)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.Equal(t, 10-tt.filled, strings.Count(got, emptyBlock))
			assert.True(t, strings.HasSuffix(got, tt.suffix), got)
		})
	}
}

func TestMoneyAndOrDash(t *testing.T) {
	assert.Equal(t, "—", Money(0))
	assert.Equal(t, "12000 €", Money(12000))

	assert.Equal(t, "—", OrDash(nil))
	blank := "  "
	assert.Equal(t, "—", OrDash(&blank))
	v := "Lyon"
	assert.Equal(t, "Lyon", OrDash(&v))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "court", Truncate("court", 10))
	assert.Equal(t, "Maçonn…", Truncate("Maçonnerie", 7))
}

func TestTaskStatusIcon(t *testing.T) {
	assert.Contains(t, TaskStatusIcon(domain.TaskDone), "fait")
	assert.Contains(t, TaskStatusIcon(domain.TaskInProgress), "en cours")
	assert.Contains(t, TaskStatusIcon("weird"), "à faire")
}

func TestLateBadge(t *testing.T) {
	assert.Empty(t, LateBadge(false, 3))
	assert.Contains(t, LateBadge(true, 3), "retard 3j")
}

func TestHeaderUnderlineMatchesWidth(t *testing.T) {
	lines := strings.Split(Header("Priorités"), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, len([]rune("PRIORITÉS")), strings.Count(lines[1], "─"))
}
