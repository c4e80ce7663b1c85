package domain

import (
	"strings"
	"time"
)

// ContainerStatus represents a container state as reported by the runtime,
// refined by healthcheck information when present.
type ContainerStatus string

const (
	StatusRunning    ContainerStatus = "running"
	StatusHealthy    ContainerStatus = "healthy"
	StatusUnhealthy  ContainerStatus = "unhealthy"
	StatusExited     ContainerStatus = "exited"
	StatusCreated    ContainerStatus = "created"
	StatusPaused     ContainerStatus = "paused"
	StatusRestarting ContainerStatus = "restarting"
	StatusDead       ContainerStatus = "dead"
)

// StatusFromState maps a raw runtime state string to a ContainerStatus.
// Unrecognized states map to exited.
func StatusFromState(state string) ContainerStatus {
	switch strings.ToLower(state) {
	case "running":
		return StatusRunning
	case "healthy":
		return StatusHealthy
	case "unhealthy":
		return StatusUnhealthy
	case "exited":
		return StatusExited
	case "created":
		return StatusCreated
	case "paused":
		return StatusPaused
	case "restarting":
		return StatusRestarting
	case "dead":
		return StatusDead
	default:
		return StatusExited
	}
}

// PortMapping is a single published-port entry on a container.
type PortMapping struct {
	HostPort      *uint16 `json:"hostPort,omitempty"`
	ContainerPort uint16  `json:"containerPort"`
	Protocol      string  `json:"protocol"`
}

// ResourceSample holds normalized resource metrics derived from one
// paired (current, previous) counter reading. All values are rounded to
// two decimal places.
type ResourceSample struct {
	CPUPercent    float64 `json:"cpuPercent"`
	MemoryUsageMb float64 `json:"memoryUsageMb"`
	MemoryLimitMb float64 `json:"memoryLimitMb"`
	MemoryPercent float64 `json:"memoryPercent"`
	NetworkRxMb   float64 `json:"networkRxMb"`
	NetworkTxMb   float64 `json:"networkTxMb"`
	BlockReadMb   float64 `json:"blockReadMb"`
	BlockWriteMb  float64 `json:"blockWriteMb"`
	PIDs          uint64  `json:"pids"`
}

// ContainerRecord is the canonical container shape served to clients.
// Records are built fresh on every listing call and never mutated after
// construction.
type ContainerRecord struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Image             string            `json:"image"`
	Status            ContainerStatus   `json:"status"`
	Health            string            `json:"health,omitempty"`
	Category          ServiceCategory   `json:"category"`
	Ports             []PortMapping     `json:"ports"`
	Networks          []string          `json:"networks"`
	CreatedAt         time.Time         `json:"createdAt"`
	Labels            map[string]string `json:"labels"`
	PairedVariantHint string            `json:"pairedVariantHint,omitempty"`
	Stats             *ResourceSample   `json:"stats,omitempty"`
	ImageSizeMb       *float64          `json:"imageSizeMb,omitempty"`
}

// IsRunning reports whether the container is in a state where a resource
// sample can be taken.
func (c *ContainerRecord) IsRunning() bool {
	return c.Status == StatusRunning || c.Status == StatusHealthy || c.Status == StatusUnhealthy
}
