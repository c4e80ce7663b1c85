package discovery

import (
	"slices"
	"strings"
	"time"

	"github.com/valhq/flowscope/internal/core/domain"
	"github.com/valhq/flowscope/internal/core/ports"
)

// NormalizeContainers maps raw runtime records into canonical records,
// sorted by name in byte order. That ordering is the baseline for all
// downstream listing and grouping.
func NormalizeContainers(raw []ports.RawContainer) []domain.ContainerRecord {
	records := make([]domain.ContainerRecord, 0, len(raw))
	for _, rc := range raw {
		records = append(records, normalizeContainer(rc))
	}
	slices.SortFunc(records, func(a, b domain.ContainerRecord) int {
		return strings.Compare(a.Name, b.Name)
	})
	return records
}

func normalizeContainer(rc ports.RawContainer) domain.ContainerRecord {
	id := shortID(rc.ID)

	name := id
	if len(rc.Names) > 0 {
		name = strings.TrimPrefix(rc.Names[0], "/")
	}

	// The status text carries healthcheck results the state field doesn't.
	var status domain.ContainerStatus
	var health string
	switch {
	case strings.Contains(rc.Status, "(healthy)"):
		status = domain.StatusHealthy
		health = "healthy"
	case strings.Contains(rc.Status, "(unhealthy)"):
		status = domain.StatusUnhealthy
		health = "unhealthy"
	default:
		status = domain.StatusFromState(rc.State)
	}

	mappings := make([]domain.PortMapping, 0, len(rc.Ports))
	for _, p := range rc.Ports {
		proto := strings.ToLower(p.Protocol)
		if proto == "" {
			proto = "tcp"
		}
		mappings = append(mappings, domain.PortMapping{
			HostPort:      p.HostPort,
			ContainerPort: p.ContainerPort,
			Protocol:      proto,
		})
	}

	labels := rc.Labels
	if labels == nil {
		labels = map[string]string{}
	}

	return domain.ContainerRecord{
		ID:                id,
		Name:              name,
		Image:             rc.Image,
		Status:            status,
		Health:            health,
		Category:          domain.CategoryFromName(name),
		Ports:             mappings,
		Networks:          rc.Networks,
		CreatedAt:         time.Unix(rc.Created, 0).UTC(),
		Labels:            labels,
		PairedVariantHint: pairedVariantHint(name),
	}
}

// pairedVariantHint guesses the name of a paired Rust-variant deployment by
// naming convention only. It is advisory metadata, never verified against
// the actual inventory.
func pairedVariantHint(name string) string {
	if strings.Contains(name, "rust") {
		return ""
	}
	if strings.HasSuffix(name, "-prod") {
		return strings.TrimSuffix(name, "-prod") + "-rust-prod"
	}
	return name
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
