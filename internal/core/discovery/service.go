package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/valhq/flowscope/internal/core/domain"
	"github.com/valhq/flowscope/internal/core/ports"
)

// ErrNotFound is returned when a requested container or view does not match
// anything in the current listing.
var ErrNotFound = errors.New("not found")

// Grace period handed to the daemon on stop and restart.
const stopGraceSeconds = 10

const defaultLogTail = 100

// Service is the discovery facade: it reads the runtime through the
// injected capability and derives topology, views and enrichments. It holds
// no mutable state, so one instance is safely shared across requests.
type Service struct {
	runtime ports.ContainerRuntime
	log     *slog.Logger
}

// NewService creates a discovery service over the given runtime.
func NewService(runtime ports.ContainerRuntime, log *slog.Logger) *Service {
	return &Service{runtime: runtime, log: log}
}

// ListContainers returns all containers, normalized and name-sorted.
func (s *Service) ListContainers(ctx context.Context) ([]domain.ContainerRecord, error) {
	raw, err := s.runtime.ListContainers(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return NormalizeContainers(raw), nil
}

// ListContainersWithStats returns all containers enriched with live
// resource samples and image sizes. Both enrichments are best-effort:
// a failed fetch leaves the field absent, never fails the listing.
func (s *Service) ListContainersWithStats(ctx context.Context) ([]domain.ContainerRecord, error) {
	records, err := s.ListContainers(ctx)
	if err != nil {
		return nil, err
	}

	sizes, err := s.ImageSizes(ctx)
	if err != nil {
		s.log.Warn("image size enrichment unavailable", "error", err)
		sizes = nil
	}

	for i := range records {
		if mb, ok := sizes[records[i].Image]; ok {
			records[i].ImageSizeMb = &mb
		}
		if sample := s.sampleFor(ctx, &records[i]); sample != nil {
			records[i].Stats = sample
		}
	}
	return records, nil
}

// GetContainer finds a container by short id or name.
func (s *Service) GetContainer(ctx context.Context, id string) (*domain.ContainerRecord, error) {
	records, err := s.ListContainers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id || records[i].Name == id {
			return &records[i], nil
		}
	}
	return nil, ErrNotFound
}

// ListNetworks returns all runtime networks with attached container ids.
func (s *Service) ListNetworks(ctx context.Context) ([]domain.NetworkInfo, error) {
	raw, err := s.runtime.ListNetworks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list networks: %w", err)
	}
	networks := make([]domain.NetworkInfo, 0, len(raw))
	for _, n := range raw {
		driver := n.Driver
		if driver == "" {
			driver = "bridge"
		}
		containers := n.Containers
		if containers == nil {
			containers = []string{}
		}
		networks = append(networks, domain.NetworkInfo{
			ID:         shortID(n.ID),
			Name:       n.Name,
			Driver:     driver,
			Containers: containers,
		})
	}
	return networks, nil
}

// Topology aggregates the current listing into the system snapshot.
func (s *Service) Topology(ctx context.Context) (*domain.TopologySnapshot, error) {
	records, err := s.ListContainers(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := Aggregate(records)
	return &snapshot, nil
}

// Flowchart resolves a view id into a rendered flowchart. With withStats
// set, service nodes of category and detail views are enriched with live
// samples, one sequential fetch per running member.
func (s *Service) Flowchart(ctx context.Context, id string, withStats bool) (*domain.Flowchart, error) {
	records, err := s.ListContainers(ctx)
	if err != nil {
		return nil, err
	}
	networks, err := s.ListNetworks(ctx)
	if err != nil {
		return nil, err
	}

	fc, ok := BuildView(id, records, networks)
	if !ok {
		return nil, ErrNotFound
	}

	if withStats {
		byID := make(map[string]*domain.ContainerRecord, len(records))
		for i := range records {
			byID[records[i].ID] = &records[i]
		}
		for i := range fc.Nodes {
			record, ok := byID[fc.Nodes[i].ID]
			if !ok {
				continue // group nodes have no backing container
			}
			fc.Nodes[i].Stats = s.sampleFor(ctx, record)
		}
	}

	s.log.Debug("rendered flowchart", "id", fc.ID, "nodes", len(fc.Nodes), "edges", len(fc.Edges))
	return fc, nil
}

// ContainerStats returns the live sample for one container. A container
// that is unknown or cannot be sampled yields ErrNotFound.
func (s *Service) ContainerStats(ctx context.Context, id string) (*domain.ResourceSample, error) {
	record, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	sample := s.sampleFor(ctx, record)
	if sample == nil {
		return nil, ErrNotFound
	}
	return sample, nil
}

// ContainerDetail returns the inspect-backed detail for one container.
func (s *Service) ContainerDetail(ctx context.Context, id string) (*domain.ContainerDetail, error) {
	record, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	inspect, err := s.runtime.InspectContainer(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", record.ID, err)
	}

	volumes := make([]domain.VolumeMount, 0, len(inspect.Mounts))
	for _, m := range inspect.Mounts {
		volumes = append(volumes, domain.VolumeMount{
			Source:      m.Source,
			Destination: m.Destination,
			Mode:        m.Mode,
		})
	}

	detail := &domain.ContainerDetail{
		ContainerRecord: *record,
		Environment:     inspect.Env,
		Entrypoint:      inspect.Entrypoint,
		WorkingDir:      inspect.WorkingDir,
		Volumes:         volumes,
	}
	if len(inspect.Cmd) > 0 {
		detail.Command = strings.Join(inspect.Cmd, " ")
	}
	if hc := inspect.Healthcheck; hc != nil {
		detail.HealthCheck = &domain.HealthCheckConfig{
			Test:               hc.Test,
			IntervalSeconds:    int64(hc.Interval.Seconds()),
			TimeoutSeconds:     int64(hc.Timeout.Seconds()),
			Retries:            hc.Retries,
			StartPeriodSeconds: int64(hc.StartPeriod.Seconds()),
		}
	}
	return detail, nil
}

// ContainerLogs returns the last tail lines of a container's output.
func (s *Service) ContainerLogs(ctx context.Context, id string, tail int) (*domain.ContainerLogs, error) {
	if tail <= 0 {
		tail = defaultLogTail
	}
	record, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.runtime.GetLogs(ctx, record.ID, tail)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for %s: %w", record.ID, err)
	}
	return &domain.ContainerLogs{
		ContainerID:   record.ID,
		ContainerName: record.Name,
		Logs:          lines,
		Tail:          tail,
	}, nil
}

// ImageSizes returns a map of repo tag to image size in MB.
func (s *Service) ImageSizes(ctx context.Context) (map[string]float64, error) {
	images, err := s.runtime.ListImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	sizes := make(map[string]float64)
	for _, img := range images {
		mb := round2(float64(img.SizeBytes) / bytesPerMb)
		for _, tag := range img.RepoTags {
			sizes[tag] = mb
		}
	}
	return sizes, nil
}

// RestartContainer sends a restart to the daemon. Daemon rejections come
// back inside the result envelope, not as an error.
func (s *Service) RestartContainer(ctx context.Context, id string) (*domain.ActionResult, error) {
	return s.lifecycleAction(ctx, id, "restart", "restarted", func(ctx context.Context, containerID string) error {
		return s.runtime.RestartContainer(ctx, containerID, stopGraceSeconds)
	})
}

// StopContainer sends a stop to the daemon.
func (s *Service) StopContainer(ctx context.Context, id string) (*domain.ActionResult, error) {
	return s.lifecycleAction(ctx, id, "stop", "stopped", func(ctx context.Context, containerID string) error {
		return s.runtime.StopContainer(ctx, containerID, stopGraceSeconds)
	})
}

// StartContainer sends a start to the daemon.
func (s *Service) StartContainer(ctx context.Context, id string) (*domain.ActionResult, error) {
	return s.lifecycleAction(ctx, id, "start", "started", s.runtime.StartContainer)
}

func (s *Service) lifecycleAction(ctx context.Context, id, action, pastTense string, send func(context.Context, string) error) (*domain.ActionResult, error) {
	record, err := s.GetContainer(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &domain.ActionResult{
		ContainerID:   record.ID,
		ContainerName: record.Name,
		Action:        action,
	}
	if err := send(ctx, record.ID); err != nil {
		s.log.Error("lifecycle action rejected", "action", action, "container", record.Name, "error", err)
		result.Message = err.Error()
		return result, nil
	}
	result.Success = true
	result.Message = fmt.Sprintf("Container %s %s successfully", record.Name, pastTense)
	s.log.Info("lifecycle action applied", "action", action, "container", record.Name)
	return result, nil
}

// sampleFor fetches a one-shot sample for a running container. Any failure
// degrades to nil, never to an error.
func (s *Service) sampleFor(ctx context.Context, record *domain.ContainerRecord) *domain.ResourceSample {
	if !record.IsRunning() {
		return nil
	}
	pair, err := s.runtime.GetStatsOnce(ctx, record.ID)
	if err != nil || pair == nil {
		if err != nil {
			s.log.Debug("stats sample unavailable", "container", record.Name, "error", err)
		}
		return nil
	}
	sample := ComputeSample(*pair)
	return &sample
}
