package discovery

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/valhq/flowscope/internal/core/domain"
)

// systemGroups is the fixed set of category group nodes in the system view,
// in presentation order.
var systemGroups = []struct {
	category    domain.ServiceCategory
	name        string
	description string
}{
	{domain.CategoryAIML, "AI/ML Services", "Consciousness, Learning, Memory systems"},
	{domain.CategoryApplication, "Application Services", "Backend APIs, Automation, Gateway"},
	{domain.CategoryInfrastructure, "Infrastructure", "Databases, Cache, Message Queue"},
	{domain.CategoryFrontend, "Frontend", "Web dashboards and UIs"},
	{domain.CategoryMonitoring, "Monitoring", "Prometheus, Grafana, Logging"},
	{domain.CategoryAutonomy, "Val Autonomy", "Goal Manager, Code Editor, Git Service"},
	{domain.CategoryBlockchain, "Blockchain", "Validators, Chain, Faucet"},
	{domain.CategoryGame, "Game Services", "RPG Engine, Game Backend"},
}

// systemEdges is the fixed table of category relationships. An edge is
// emitted only when both endpoint groups exist in the rendered view.
var systemEdges = []struct {
	source domain.ServiceCategory
	target domain.ServiceCategory
	label  string
}{
	{domain.CategoryFrontend, domain.CategoryApplication, "API calls"},
	{domain.CategoryApplication, domain.CategoryInfrastructure, "Data"},
	{domain.CategoryApplication, domain.CategoryAIML, "AI requests"},
	{domain.CategoryAIML, domain.CategoryInfrastructure, "Data"},
	{domain.CategoryAutonomy, domain.CategoryAIML, "Intelligence"},
	{domain.CategoryAutonomy, domain.CategoryApplication, "Automation"},
	{domain.CategoryMonitoring, domain.CategoryApplication, "Metrics"},
	{domain.CategoryMonitoring, domain.CategoryAIML, "Metrics"},
	{domain.CategoryGame, domain.CategoryApplication, "Backend"},
	{domain.CategoryBlockchain, domain.CategoryInfrastructure, "State"},
}

// BuildView resolves a view id against the current record set. Resolution
// order: the system overview, then "<tag>-overview" category views, then a
// container's own id or name. Unresolvable ids return ok=false.
func BuildView(id string, records []domain.ContainerRecord, networks []domain.NetworkInfo) (*domain.Flowchart, bool) {
	if id == "system-overview" {
		return buildSystemOverview(records), true
	}

	if tag, found := strings.CutSuffix(id, "-overview"); found {
		if cat, ok := domain.CategoryFromTag(tag); ok {
			var members []domain.ContainerRecord
			for _, c := range records {
				if c.Category == cat {
					members = append(members, c)
				}
			}
			return buildCategoryView(cat, members), true
		}
	}

	for i := range records {
		if records[i].ID == id || records[i].Name == id {
			return buildDetailView(&records[i], records), true
		}
	}

	return nil, false
}

func buildSystemOverview(records []domain.ContainerRecord) *domain.Flowchart {
	var nodes []domain.FlowchartNode
	present := make(map[domain.ServiceCategory]bool)

	for _, group := range systemGroups {
		var count, up int
		for _, c := range records {
			if c.Category != group.category {
				continue
			}
			count++
			if c.Status == domain.StatusHealthy || c.Status == domain.StatusRunning {
				up++
			}
		}
		if count == 0 {
			continue
		}

		status := domain.StatusUnhealthy
		switch {
		case up == count:
			status = domain.StatusHealthy
		case up > 0:
			status = domain.StatusRunning
		}

		present[group.category] = true
		nodes = append(nodes, domain.FlowchartNode{
			ID:             string(group.category),
			Name:           fmt.Sprintf("%s (%d)", group.name, count),
			Description:    group.description,
			Status:         status,
			NodeType:       domain.NodeGroup,
			Category:       group.category,
			ChildFlowchart: group.category.OverviewID(),
		})
	}

	var edges []domain.FlowchartEdge
	for _, rel := range systemEdges {
		if !present[rel.source] || !present[rel.target] {
			continue
		}
		edges = append(edges, domain.FlowchartEdge{
			ID:             fmt.Sprintf("%s-to-%s", rel.source, rel.target),
			Source:         string(rel.source),
			Target:         string(rel.target),
			Label:          rel.label,
			ConnectionType: domain.ConnectionPrimary,
		})
	}

	return &domain.Flowchart{
		ID:          "system-overview",
		Name:        "VAL System Overview",
		Description: fmt.Sprintf("Complete system topology: %d containers across %d categories", len(records), len(nodes)),
		Nodes:       nodes,
		Edges:       edges,
	}
}

func buildCategoryView(cat domain.ServiceCategory, members []domain.ContainerRecord) *domain.Flowchart {
	// Natural sort: validator-2 comes before validator-10. The sort is
	// stable so names without a numeric suffix keep their byte order.
	sorted := slices.Clone(members)
	slices.SortStableFunc(sorted, func(a, b domain.ContainerRecord) int {
		return numericSuffix(a.Name) - numericSuffix(b.Name)
	})

	var nodes []domain.FlowchartNode
	for _, c := range sorted {
		nodes = append(nodes, domain.FlowchartNode{
			ID:             c.ID,
			Name:           c.Name,
			Description:    "Image: " + c.Image,
			Status:         c.Status,
			NodeType:       domain.NodeService,
			Category:       c.Category,
			Port:           firstHostPort(c.Ports),
			ChildFlowchart: c.Name,
		})
	}

	// Homogeneous members form a ring: each node feeds its successor and
	// the last wraps to the first, n edges for n nodes.
	var edges []domain.FlowchartEdge
	if len(sorted) > 1 {
		for i := range sorted {
			source := sorted[i]
			target := sorted[(i+1)%len(sorted)]
			edges = append(edges, domain.FlowchartEdge{
				ID:             fmt.Sprintf("%s-to-%s", source.ID, target.ID),
				Source:         source.ID,
				Target:         target.ID,
				ConnectionType: domain.ConnectionNetwork,
			})
		}
	}

	display := cat.DisplayName()
	return &domain.Flowchart{
		ID:          cat.OverviewID(),
		Name:        display + " Services",
		Description: fmt.Sprintf("%d services in the %s category", len(members), display),
		Nodes:       nodes,
		Edges:       edges,
		ParentID:    "system-overview",
	}
}

func buildDetailView(target *domain.ContainerRecord, all []domain.ContainerRecord) *domain.Flowchart {
	nodes := []domain.FlowchartNode{{
		ID:          target.ID,
		Name:        target.Name,
		Description: "Image: " + target.Image,
		Status:      target.Status,
		NodeType:    domain.NodeService,
		Category:    target.Category,
		Port:        firstHostPort(target.Ports),
	}}

	var edges []domain.FlowchartEdge
	for _, other := range all {
		if other.ID == target.ID || !sharesUserNetwork(target.Networks, other.Networks) {
			continue
		}
		nodes = append(nodes, domain.FlowchartNode{
			ID:             other.ID,
			Name:           other.Name,
			Description:    "Image: " + other.Image,
			Status:         other.Status,
			NodeType:       domain.NodeService,
			Category:       other.Category,
			Port:           firstHostPort(other.Ports),
			ChildFlowchart: other.Name,
		})
		edges = append(edges, domain.FlowchartEdge{
			ID:             fmt.Sprintf("%s-to-%s", target.ID, other.ID),
			Source:         target.ID,
			Target:         other.ID,
			ConnectionType: domain.ConnectionNetwork,
		})
	}

	return &domain.Flowchart{
		ID:          target.Name,
		Name:        target.Name + " Detail",
		Description: fmt.Sprintf("Container %s and its %d connected services", target.Name, len(nodes)-1),
		Nodes:       nodes,
		Edges:       edges,
		ParentID:    target.Category.OverviewID(),
	}
}

// sharesUserNetwork reports whether two containers are attached to a common
// network other than the default bridge.
func sharesUserNetwork(a, b []string) bool {
	for _, n := range a {
		if n == "bridge" {
			continue
		}
		if slices.Contains(b, n) {
			return true
		}
	}
	return false
}

// numericSuffix extracts the number after the last '-' in a name, 0 when
// absent or non-numeric.
func numericSuffix(name string) int {
	idx := strings.LastIndexByte(name, '-')
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func firstHostPort(ports []domain.PortMapping) *uint16 {
	if len(ports) == 0 {
		return nil
	}
	return ports[0].HostPort
}
