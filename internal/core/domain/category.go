package domain

import "strings"

// ServiceCategory groups containers by naming convention. The value is the
// wire tag used in category ids ("<tag>-overview") and topology count keys.
type ServiceCategory string

const (
	CategoryAIML           ServiceCategory = "aiml"
	CategoryApplication    ServiceCategory = "application"
	CategoryInfrastructure ServiceCategory = "infrastructure"
	CategoryFrontend       ServiceCategory = "frontend"
	CategoryMonitoring     ServiceCategory = "monitoring"
	CategoryGame           ServiceCategory = "game"
	CategoryAutonomy       ServiceCategory = "val"
	CategoryBlockchain     ServiceCategory = "blockchain"
	CategoryOther          ServiceCategory = "other"
)

// CategoryOrder is the fixed presentation order of the real categories.
// Other is excluded: it never gets its own system-view node.
var CategoryOrder = []ServiceCategory{
	CategoryAIML,
	CategoryApplication,
	CategoryInfrastructure,
	CategoryFrontend,
	CategoryMonitoring,
	CategoryAutonomy,
	CategoryBlockchain,
	CategoryGame,
}

// CategoryFromName classifies a container by its name. First match wins;
// anything unrecognized is Other. Image names and labels are never consulted.
func CategoryFromName(name string) ServiceCategory {
	lower := strings.ToLower(name)
	switch {
	case strings.HasPrefix(lower, "aiml-"):
		return CategoryAIML
	case strings.HasPrefix(lower, "application-"):
		return CategoryApplication
	case strings.HasPrefix(lower, "infrastructure-"):
		return CategoryInfrastructure
	case strings.HasPrefix(lower, "frontend-"):
		return CategoryFrontend
	case strings.HasPrefix(lower, "monitoring-"):
		return CategoryMonitoring
	case strings.HasPrefix(lower, "game-"):
		return CategoryGame
	case strings.HasPrefix(lower, "val-"):
		return CategoryAutonomy
	case strings.HasPrefix(lower, "valina-validator"), strings.Contains(lower, "chain"):
		return CategoryBlockchain
	default:
		return CategoryOther
	}
}

// CategoryFromTag resolves a lowercase category tag as found in view ids.
// Only the eight real categories resolve; "other" has no overview of its own.
func CategoryFromTag(tag string) (ServiceCategory, bool) {
	for _, c := range CategoryOrder {
		if string(c) == tag {
			return c, true
		}
	}
	return "", false
}

// DisplayName returns the human-readable category name.
func (c ServiceCategory) DisplayName() string {
	switch c {
	case CategoryAIML:
		return "AI/ML"
	case CategoryApplication:
		return "Application"
	case CategoryInfrastructure:
		return "Infrastructure"
	case CategoryFrontend:
		return "Frontend"
	case CategoryMonitoring:
		return "Monitoring"
	case CategoryGame:
		return "Game"
	case CategoryAutonomy:
		return "Val Autonomy"
	case CategoryBlockchain:
		return "Blockchain"
	default:
		return "Other"
	}
}

// OverviewID returns the view id of this category's overview flowchart.
func (c ServiceCategory) OverviewID() string {
	return string(c) + "-overview"
}
