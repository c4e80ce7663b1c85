package discovery

import (
	"time"

	"github.com/valhq/flowscope/internal/core/domain"
)

// Aggregate reduces a record set into the topology snapshot: totals,
// per-category counts and the list of navigable views. Category entries
// come out in the fixed category order (then Other) so repeated calls
// against the same set are deterministic.
func Aggregate(records []domain.ContainerRecord) domain.TopologySnapshot {
	var running, healthy, unhealthy int
	categories := make(map[string]int)
	for _, c := range records {
		if c.Status == domain.StatusRunning || c.Status == domain.StatusHealthy {
			running++
		}
		if c.Status == domain.StatusHealthy {
			healthy++
		}
		if c.Status == domain.StatusUnhealthy {
			unhealthy++
		}
		categories[string(c.Category)]++
	}

	summaries := []domain.FlowchartSummary{{
		ID:        "system-overview",
		Name:      "VAL System Overview",
		NodeCount: len(records),
		Category:  domain.CategoryOther,
	}}
	for _, cat := range append(domain.CategoryOrder, domain.CategoryOther) {
		count := categories[string(cat)]
		if count == 0 {
			continue
		}
		summaries = append(summaries, domain.FlowchartSummary{
			ID:        cat.OverviewID(),
			Name:      cat.DisplayName() + " Services",
			NodeCount: count,
			Category:  cat,
		})
	}

	return domain.TopologySnapshot{
		TotalContainers:     len(records),
		RunningContainers:   running,
		HealthyContainers:   healthy,
		UnhealthyContainers: unhealthy,
		Categories:          categories,
		Flowcharts:          summaries,
		GeneratedAt:         time.Now().UTC(),
	}
}
