package docker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/valhq/flowscope/internal/core/ports"
)

// Adapter implements ports.ContainerRuntime using the Docker SDK.
type Adapter struct {
	cli *client.Client
}

// NewAdapter creates a new Docker adapter instance. An empty host falls
// back to the SDK's environment resolution (DOCKER_HOST et al).
func NewAdapter(host string) (*Adapter, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}
	return &Adapter{cli: cli}, nil
}

// ListContainers returns all containers as raw records.
func (a *Adapter) ListContainers(ctx context.Context, includeStopped bool) ([]ports.RawContainer, error) {
	containers, err := a.cli.ContainerList(ctx, container.ListOptions{All: includeStopped})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	result := make([]ports.RawContainer, 0, len(containers))
	for _, c := range containers {
		rawPorts := make([]ports.RawPort, 0, len(c.Ports))
		for _, p := range c.Ports {
			rp := ports.RawPort{
				ContainerPort: p.PrivatePort,
				Protocol:      p.Type,
			}
			if p.PublicPort != 0 {
				public := p.PublicPort
				rp.HostPort = &public
			}
			rawPorts = append(rawPorts, rp)
		}

		var networks []string
		if c.NetworkSettings != nil {
			for name := range c.NetworkSettings.Networks {
				networks = append(networks, name)
			}
			// Map order is unstable; sort for reproducible output.
			sort.Strings(networks)
		}

		result = append(result, ports.RawContainer{
			ID:       c.ID,
			Names:    c.Names,
			Image:    c.Image,
			State:    c.State,
			Status:   c.Status,
			Ports:    rawPorts,
			Networks: networks,
			Labels:   c.Labels,
			Created:  c.Created,
		})
	}
	return result, nil
}

// ListNetworks returns all networks with attached container ids.
func (a *Adapter) ListNetworks(ctx context.Context) ([]ports.RawNetwork, error) {
	networks, err := a.cli.NetworkList(ctx, network.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}

	result := make([]ports.RawNetwork, 0, len(networks))
	for _, n := range networks {
		var attached []string
		for id := range n.Containers {
			attached = append(attached, id)
		}
		sort.Strings(attached)

		result = append(result, ports.RawNetwork{
			ID:         n.ID,
			Name:       n.Name,
			Driver:     n.Driver,
			Containers: attached,
		})
	}
	return result, nil
}

// ListImages returns all images with repo tags and sizes.
func (a *Adapter) ListImages(ctx context.Context) ([]ports.RawImage, error) {
	images, err := a.cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	result := make([]ports.RawImage, 0, len(images))
	for _, img := range images {
		result = append(result, ports.RawImage{
			RepoTags:  img.RepoTags,
			SizeBytes: img.Size,
		})
	}
	return result, nil
}

// InspectContainer returns the inspect-only configuration of a container.
func (a *Adapter) InspectContainer(ctx context.Context, id string) (*ports.RawInspect, error) {
	info, err := a.cli.ContainerInspect(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", id, err)
	}

	inspect := &ports.RawInspect{}
	if info.Config != nil {
		inspect.Env = info.Config.Env
		inspect.Cmd = info.Config.Cmd
		inspect.Entrypoint = info.Config.Entrypoint
		inspect.WorkingDir = info.Config.WorkingDir
		if hc := info.Config.Healthcheck; hc != nil {
			inspect.Healthcheck = &ports.RawHealthcheck{
				Test:        hc.Test,
				Interval:    hc.Interval,
				Timeout:     hc.Timeout,
				StartPeriod: hc.StartPeriod,
				Retries:     hc.Retries,
			}
		}
	}
	for _, m := range info.Mounts {
		inspect.Mounts = append(inspect.Mounts, ports.RawMount{
			Source:      m.Source,
			Destination: m.Destination,
			Mode:        m.Mode,
		})
	}
	return inspect, nil
}

// GetStatsOnce performs a one-shot (non-streaming) stats read and maps the
// daemon's current/previous counter pair into the port shape.
func (a *Adapter) GetStatsOnce(ctx context.Context, id string) (*ports.CounterPair, error) {
	resp, err := a.cli.ContainerStatsOneShot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read stats for %s: %w", id, err)
	}
	defer resp.Body.Close()

	var stats container.StatsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode stats for %s: %w", id, err)
	}

	onlineCPUs := stats.CPUStats.OnlineCPUs
	if onlineCPUs == 0 {
		onlineCPUs = uint32(len(stats.CPUStats.CPUUsage.PercpuUsage))
	}

	current := ports.RawCounters{
		CPUTotal:    stats.CPUStats.CPUUsage.TotalUsage,
		SystemUsage: stats.CPUStats.SystemUsage,
		OnlineCPUs:  onlineCPUs,
		MemoryUsage: stats.MemoryStats.Usage,
		MemoryLimit: stats.MemoryStats.Limit,
		PIDs:        stats.PidsStats.Current,
	}
	for _, iface := range stats.Networks {
		current.Interfaces = append(current.Interfaces, ports.InterfaceStats{
			RxBytes: iface.RxBytes,
			TxBytes: iface.TxBytes,
		})
	}
	for _, entry := range stats.BlkioStats.IoServiceBytesRecursive {
		current.BlockIO = append(current.BlockIO, ports.BlkioEntry{
			Op:    entry.Op,
			Bytes: entry.Value,
		})
	}

	return &ports.CounterPair{
		Current: current,
		Previous: ports.RawCounters{
			CPUTotal:    stats.PreCPUStats.CPUUsage.TotalUsage,
			SystemUsage: stats.PreCPUStats.SystemUsage,
		},
	}, nil
}

// GetLogs returns the last tail lines of a container's stdout/stderr.
func (a *Adapter) GetLogs(ctx context.Context, id string, tail int) ([]string, error) {
	reader, err := a.cli.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(tail),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for %s: %w", id, err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read logs for %s: %w", id, err)
	}

	// Non-TTY containers multiplex stdout/stderr with stream headers;
	// TTY containers deliver plain bytes. Try demuxing first.
	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, bytes.NewReader(raw)); err != nil {
		buf.Reset()
		buf.Write(raw)
	}

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// StartContainer starts a stopped container.
func (a *Adapter) StartContainer(ctx context.Context, id string) error {
	return a.cli.ContainerStart(ctx, id, container.StartOptions{})
}

// StopContainer stops a running container with the given grace period.
func (a *Adapter) StopContainer(ctx context.Context, id string, graceSeconds int) error {
	return a.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &graceSeconds})
}

// RestartContainer restarts a container with the given grace period.
func (a *Adapter) RestartContainer(ctx context.Context, id string, graceSeconds int) error {
	return a.cli.ContainerRestart(ctx, id, container.StopOptions{Timeout: &graceSeconds})
}
