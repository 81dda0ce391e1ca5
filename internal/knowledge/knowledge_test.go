package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	tbl := Default()

	assert.NotEmpty(t, tbl.Version)
	require.NotEmpty(t, tbl.Phases)
	assert.Equal(t, "Préparation et démolition", tbl.Phases[0].Name)
	assert.Contains(t, tbl.TradeCategories, "autre")
}

func TestPhaseIndex(t *testing.T) {
	tbl := Default()

	assert.Equal(t, 0, tbl.PhaseIndex("demolition"))
	assert.Equal(t, tbl.PhaseIndex("plomberie"), tbl.PhaseIndex("  Electricite "))
	assert.Equal(t, -1, tbl.PhaseIndex("piscine"))
}

func TestPrecedes(t *testing.T) {
	tbl := Default()

	assert.True(t, tbl.Precedes("maconnerie", "peinture"))
	assert.True(t, tbl.Precedes("plomberie", "platrerie"))
	assert.False(t, tbl.Precedes("peinture", "maconnerie"))
	assert.False(t, tbl.Precedes("plomberie", "electricite"))
	assert.False(t, tbl.Precedes("piscine", "peinture"))
}

func TestParse_RejectsUnknownTrade(t *testing.T) {
	_, err := Parse([]byte(`
version: "x"
phases:
  - name: A
    trades: [piscine]
trade_categories: [maconnerie]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown trade")
}

func TestParse_RejectsDuplicateTrade(t *testing.T) {
	_, err := Parse([]byte(`
version: "x"
phases:
  - name: A
    trades: [maconnerie]
  - name: B
    trades: [maconnerie]
trade_categories: [maconnerie]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both")
}

func TestParse_RequiresVersion(t *testing.T) {
	_, err := Parse([]byte(`phases: [{name: A, trades: []}]`))
	require.Error(t, err)
}
