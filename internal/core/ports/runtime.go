package ports

import (
	"context"
	"time"
)

// RawPort is a published-port entry as reported by the runtime.
type RawPort struct {
	HostPort      *uint16
	ContainerPort uint16
	Protocol      string
}

// RawContainer is one container record as reported by the runtime listing,
// before normalization.
type RawContainer struct {
	ID       string
	Names    []string
	Image    string
	State    string
	Status   string
	Ports    []RawPort
	Networks []string
	Labels   map[string]string
	Created  int64 // unix seconds
}

// RawNetwork is one runtime network with its attached container ids.
type RawNetwork struct {
	ID         string
	Name       string
	Driver     string
	Containers []string
}

// RawImage is one image with its repo tags and size.
type RawImage struct {
	RepoTags  []string
	SizeBytes int64
}

// RawMount is one mount entry from a container inspect.
type RawMount struct {
	Source      string
	Destination string
	Mode        string
}

// RawHealthcheck is the healthcheck configuration from a container inspect.
type RawHealthcheck struct {
	Test        []string
	Interval    time.Duration
	Timeout     time.Duration
	StartPeriod time.Duration
	Retries     int
}

// RawInspect carries the inspect-only configuration of a container.
type RawInspect struct {
	Env         []string
	Cmd         []string
	Entrypoint  []string
	WorkingDir  string
	Mounts      []RawMount
	Healthcheck *RawHealthcheck
}

// RawCounters is one resource-counter snapshot. Interfaces and BlockIO are
// kept per-entry so the calculator owns the summing rules.
type RawCounters struct {
	CPUTotal    uint64
	SystemUsage uint64
	OnlineCPUs  uint32
	MemoryUsage uint64
	MemoryLimit uint64
	Interfaces  []InterfaceStats
	BlockIO     []BlkioEntry
	PIDs        uint64
}

// InterfaceStats is the rx/tx byte counters of one network interface.
type InterfaceStats struct {
	RxBytes uint64
	TxBytes uint64
}

// BlkioEntry is one block-I/O counter tagged with its operation.
type BlkioEntry struct {
	Op    string
	Bytes uint64
}

// CounterPair is a one-shot stats read: the current snapshot and the
// immediately preceding one, delivered together by the runtime.
type CounterPair struct {
	Current  RawCounters
	Previous RawCounters
}

// ContainerRuntime is the capability the discovery core consumes. It
// abstracts the container daemon so the core can run against Docker,
// Podman, or a stub in tests without changes.
type ContainerRuntime interface {
	ListContainers(ctx context.Context, includeStopped bool) ([]RawContainer, error)
	ListNetworks(ctx context.Context) ([]RawNetwork, error)
	ListImages(ctx context.Context) ([]RawImage, error)
	InspectContainer(ctx context.Context, id string) (*RawInspect, error)

	// GetStatsOnce returns a single paired counter reading, or an error if
	// the container is not running or the daemon call fails. Callers treat
	// any failure as "no sample".
	GetStatsOnce(ctx context.Context, id string) (*CounterPair, error)

	GetLogs(ctx context.Context, id string, tail int) ([]string, error)

	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string, graceSeconds int) error
	RestartContainer(ctx context.Context, id string, graceSeconds int) error
}
