package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryFromName(t *testing.T) {
	tests := []struct {
		name string
		want ServiceCategory
	}{
		{"aiml-memory", CategoryAIML},
		{"application-gateway", CategoryApplication},
		{"infrastructure-postgres", CategoryInfrastructure},
		{"frontend-dashboard", CategoryFrontend},
		{"monitoring-grafana", CategoryMonitoring},
		{"game-rpg-engine", CategoryGame},
		{"val-goal-manager", CategoryAutonomy},
		{"valina-validator-3", CategoryBlockchain},
		{"my-chain-node", CategoryBlockchain},
		{"FRONTEND-DASHBOARD", CategoryFrontend},
		{"redis", CategoryOther},
		{"", CategoryOther},
		{"frontend", CategoryOther}, // prefix requires the dash
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromName(tt.name))
		})
	}
}

func TestCategoryFromNamePrefixPrecedence(t *testing.T) {
	// val- wins over the chain substring rule: rules are ordered.
	assert.Equal(t, CategoryAutonomy, CategoryFromName("val-chain-watcher"))
}

func TestCategoryFromTag(t *testing.T) {
	cat, ok := CategoryFromTag("blockchain")
	assert.True(t, ok)
	assert.Equal(t, CategoryBlockchain, cat)

	_, ok = CategoryFromTag("other")
	assert.False(t, ok, "other has no overview view")

	_, ok = CategoryFromTag("unknown")
	assert.False(t, ok)
}

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "AI/ML", CategoryAIML.DisplayName())
	assert.Equal(t, "Val Autonomy", CategoryAutonomy.DisplayName())
	assert.Equal(t, "Other", CategoryOther.DisplayName())
}

func TestStatusFromState(t *testing.T) {
	assert.Equal(t, StatusRunning, StatusFromState("running"))
	assert.Equal(t, StatusPaused, StatusFromState("Paused"))
	assert.Equal(t, StatusExited, StatusFromState("weird-state"))
	assert.Equal(t, StatusExited, StatusFromState(""))
}
