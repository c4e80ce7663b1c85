package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valhq/flowscope/internal/core/domain"
	"github.com/valhq/flowscope/internal/core/ports"
)

func rawContainer(id, name, state, status string) ports.RawContainer {
	return ports.RawContainer{
		ID:     id,
		Names:  []string{"/" + name},
		State:  state,
		Status: status,
	}
}

func TestNormalizeHealthTokens(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		rawContainer("aaaabbbbccccdddd", "app-x", "running", "Up 2 hours (healthy)"),
	})
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusHealthy, records[0].Status)
	assert.Equal(t, "healthy", records[0].Health)
}

func TestNormalizeUnhealthyToken(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		rawContainer("aaaabbbbccccdddd", "app-x", "running", "Up 10 minutes (unhealthy)"),
	})
	require.Len(t, records, 1)
	assert.Equal(t, domain.StatusUnhealthy, records[0].Status)
	assert.Equal(t, "unhealthy", records[0].Health)
}

func TestNormalizeStateFallback(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		rawContainer("aaaabbbbccccdddd", "app-x", "running", "Up 2 hours"),
		rawContainer("bbbbccccddddeeee", "app-y", "banana", ""),
	})
	require.Len(t, records, 2)
	assert.Equal(t, domain.StatusRunning, records[0].Status)
	assert.Empty(t, records[0].Health)
	assert.Equal(t, domain.StatusExited, records[1].Status)
}

func TestNormalizeIDAndName(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		{ID: "0123456789abcdef0123", Names: nil, State: "running"},
	})
	require.Len(t, records, 1)
	assert.Equal(t, "0123456789ab", records[0].ID)
	assert.Equal(t, "0123456789ab", records[0].Name, "name falls back to the short id")
}

func TestNormalizePorts(t *testing.T) {
	host := uint16(8080)
	records := NormalizeContainers([]ports.RawContainer{
		{
			ID:    "aaaabbbbccccdddd",
			Names: []string{"/app"},
			State: "running",
			Ports: []ports.RawPort{
				{HostPort: &host, ContainerPort: 80, Protocol: "TCP"},
				{ContainerPort: 53, Protocol: ""},
			},
		},
	})
	require.Len(t, records, 1)
	require.Len(t, records[0].Ports, 2)
	assert.Equal(t, "tcp", records[0].Ports[0].Protocol)
	require.NotNil(t, records[0].Ports[0].HostPort)
	assert.Equal(t, uint16(8080), *records[0].Ports[0].HostPort)
	assert.Nil(t, records[0].Ports[1].HostPort)
	assert.Equal(t, "tcp", records[0].Ports[1].Protocol, "unknown protocol defaults to tcp")
}

func TestNormalizePairedVariantHint(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"application-gateway-prod", "application-gateway-rust-prod"},
		{"application-gateway", "application-gateway"},
		{"application-gateway-rust-prod", ""},
		{"rusty-service", ""},
	}
	for _, tt := range tests {
		records := NormalizeContainers([]ports.RawContainer{
			rawContainer("aaaabbbbccccdddd", tt.name, "running", ""),
		})
		require.Len(t, records, 1)
		assert.Equal(t, tt.want, records[0].PairedVariantHint, tt.name)
	}
}

func TestNormalizeSortsByName(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		rawContainer("1111111111111111", "zeta", "running", ""),
		rawContainer("2222222222222222", "alpha", "running", ""),
		rawContainer("3333333333333333", "Beta", "running", ""),
	})
	require.Len(t, records, 3)
	// Byte order: uppercase sorts before lowercase.
	assert.Equal(t, []string{"Beta", "alpha", "zeta"},
		[]string{records[0].Name, records[1].Name, records[2].Name})
}

func TestNormalizeCreatedAndCategory(t *testing.T) {
	records := NormalizeContainers([]ports.RawContainer{
		{
			ID:      "aaaabbbbccccdddd",
			Names:   []string{"/frontend-dashboard"},
			State:   "running",
			Created: 1700000000,
		},
	})
	require.Len(t, records, 1)
	assert.Equal(t, domain.CategoryFrontend, records[0].Category)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), records[0].CreatedAt)
	assert.NotNil(t, records[0].Labels)
}
