package domain

import "time"

// TopologySnapshot is the system-wide summary served at /api/topology and
// pushed over the update channel. It is recomputed from a fresh listing on
// every call and never persisted.
type TopologySnapshot struct {
	TotalContainers     int                 `json:"totalContainers"`
	RunningContainers   int                 `json:"runningContainers"`
	HealthyContainers   int                 `json:"healthyContainers"`
	UnhealthyContainers int                 `json:"unhealthyContainers"`
	Categories          map[string]int      `json:"categories"`
	Flowcharts          []FlowchartSummary  `json:"flowcharts"`
	GeneratedAt         time.Time           `json:"generatedAt"`
}

// FlowchartSummary is a navigable view entry in the topology overview.
type FlowchartSummary struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	NodeCount int             `json:"nodeCount"`
	Category  ServiceCategory `json:"category"`
}

// NetworkInfo describes one runtime network and its attached containers.
type NetworkInfo struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Driver     string   `json:"driver"`
	Containers []string `json:"containers"`
}

// VolumeMount is one bind/volume mount on a container.
type VolumeMount struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Mode        string `json:"mode"`
}

// HealthCheckConfig mirrors a container's configured healthcheck.
type HealthCheckConfig struct {
	Test               []string `json:"test"`
	IntervalSeconds    int64    `json:"intervalSeconds"`
	TimeoutSeconds     int64    `json:"timeoutSeconds"`
	Retries            int      `json:"retries"`
	StartPeriodSeconds int64    `json:"startPeriodSeconds"`
}

// ContainerDetail is the inspect-backed detail payload: the record itself
// flattened together with configuration only an inspect call can provide.
type ContainerDetail struct {
	ContainerRecord
	Environment []string           `json:"environment"`
	Command     string             `json:"command,omitempty"`
	Entrypoint  []string           `json:"entrypoint,omitempty"`
	WorkingDir  string             `json:"workingDir,omitempty"`
	Volumes     []VolumeMount      `json:"volumes"`
	HealthCheck *HealthCheckConfig `json:"healthCheck,omitempty"`
}

// ContainerLogs is the log-tail envelope.
type ContainerLogs struct {
	ContainerID   string   `json:"containerId"`
	ContainerName string   `json:"containerName"`
	Logs          []string `json:"logs"`
	Tail          int      `json:"tail"`
	Since         string   `json:"since,omitempty"`
}

// ActionResult reports the outcome of a lifecycle command. A daemon
// rejection is reported here with Success=false, not as an HTTP error.
type ActionResult struct {
	Success       bool   `json:"success"`
	ContainerID   string `json:"containerId"`
	ContainerName string `json:"containerName"`
	Action        string `json:"action"`
	Message       string `json:"message"`
}
