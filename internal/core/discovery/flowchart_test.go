package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valhq/flowscope/internal/core/domain"
)

func edgeIDs(fc *domain.Flowchart) []string {
	ids := make([]string, 0, len(fc.Edges))
	for _, e := range fc.Edges {
		ids = append(ids, e.ID)
	}
	return ids
}

func nodeIDs(fc *domain.Flowchart) []string {
	ids := make([]string, 0, len(fc.Nodes))
	for _, n := range fc.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

func TestSystemOverviewThreeCategories(t *testing.T) {
	records := []domain.ContainerRecord{
		record("application-gateway", domain.StatusRunning),
		record("frontend-dashboard", domain.StatusRunning),
		record("infrastructure-postgres", domain.StatusRunning),
	}

	fc, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)
	assert.Equal(t, "system-overview", fc.ID)
	require.Len(t, fc.Nodes, 3)

	for _, n := range fc.Nodes {
		assert.Equal(t, domain.NodeGroup, n.NodeType)
		assert.Equal(t, domain.StatusHealthy, n.Status, "all members up rolls up to healthy")
	}

	ids := edgeIDs(fc)
	assert.Contains(t, ids, "frontend-to-application")
	assert.Contains(t, ids, "application-to-infrastructure")
	assert.NotContains(t, ids, "aiml-to-infrastructure")
}

func TestSystemOverviewEdgeRequiresBothEndpoints(t *testing.T) {
	records := []domain.ContainerRecord{
		record("frontend-dashboard", domain.StatusRunning),
		record("monitoring-grafana", domain.StatusRunning),
	}

	fc, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)
	require.Len(t, fc.Nodes, 2)
	assert.Empty(t, fc.Edges, "no relationship in the table links frontend and monitoring directly")
}

func TestSystemOverviewRollupStatus(t *testing.T) {
	records := []domain.ContainerRecord{
		record("application-gateway", domain.StatusRunning),
		record("application-worker", domain.StatusExited),
		record("frontend-dashboard", domain.StatusExited),
	}

	fc, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)
	byID := map[string]domain.FlowchartNode{}
	for _, n := range fc.Nodes {
		byID[n.ID] = n
	}
	assert.Equal(t, domain.StatusRunning, byID["application"].Status, "partially up")
	assert.Equal(t, domain.StatusUnhealthy, byID["frontend"].Status, "nothing up")
}

func TestSystemOverviewGroupAnnotations(t *testing.T) {
	records := []domain.ContainerRecord{
		record("val-goal-manager", domain.StatusHealthy),
		record("val-code-editor", domain.StatusHealthy),
	}

	fc, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)
	require.Len(t, fc.Nodes, 1)
	node := fc.Nodes[0]
	assert.Equal(t, "val", node.ID)
	assert.Equal(t, "Val Autonomy (2)", node.Name)
	assert.Equal(t, "val-overview", node.ChildFlowchart)
}

func TestCategoryViewNaturalSortAndRing(t *testing.T) {
	records := []domain.ContainerRecord{
		record("val-validator-1", domain.StatusRunning),
		record("val-validator-10", domain.StatusRunning),
		record("val-validator-2", domain.StatusRunning),
	}

	fc, ok := BuildView("val-overview", records, nil)
	require.True(t, ok)
	assert.Equal(t, "val-overview", fc.ID)
	assert.Equal(t, "system-overview", fc.ParentID)

	names := make([]string, 0, len(fc.Nodes))
	for _, n := range fc.Nodes {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"val-validator-1", "val-validator-2", "val-validator-10"}, names)

	assert.Equal(t, []string{
		"id-val-validator-1-to-id-val-validator-2",
		"id-val-validator-2-to-id-val-validator-10",
		"id-val-validator-10-to-id-val-validator-1",
	}, edgeIDs(fc))
}

func TestCategoryViewRingDegrees(t *testing.T) {
	records := []domain.ContainerRecord{
		record("val-validator-1", domain.StatusRunning),
		record("val-validator-2", domain.StatusRunning),
		record("val-validator-3", domain.StatusRunning),
		record("val-validator-4", domain.StatusRunning),
	}

	fc, ok := BuildView("val-overview", records, nil)
	require.True(t, ok)
	require.Len(t, fc.Edges, 4, "n nodes yield exactly n ring edges")

	outDegree := map[string]int{}
	inDegree := map[string]int{}
	for _, e := range fc.Edges {
		outDegree[e.Source]++
		inDegree[e.Target]++
	}
	for _, n := range fc.Nodes {
		assert.Equal(t, 1, outDegree[n.ID])
		assert.Equal(t, 1, inDegree[n.ID])
	}
}

func TestCategoryViewTwoMembers(t *testing.T) {
	records := []domain.ContainerRecord{
		record("game-rpg-1", domain.StatusRunning),
		record("game-rpg-2", domain.StatusRunning),
	}

	fc, ok := BuildView("game-overview", records, nil)
	require.True(t, ok)
	// Two members produce two directed edges, one each way.
	require.Len(t, fc.Edges, 2)
	assert.Equal(t, fc.Edges[0].Source, fc.Edges[1].Target)
	assert.Equal(t, fc.Edges[0].Target, fc.Edges[1].Source)
}

func TestCategoryViewSingleMember(t *testing.T) {
	records := []domain.ContainerRecord{
		record("monitoring-grafana", domain.StatusRunning),
	}

	fc, ok := BuildView("monitoring-overview", records, nil)
	require.True(t, ok)
	assert.Len(t, fc.Nodes, 1)
	assert.Empty(t, fc.Edges)
}

func TestCategoryViewEmpty(t *testing.T) {
	fc, ok := BuildView("aiml-overview", nil, nil)
	require.True(t, ok, "empty category views still resolve")
	assert.Empty(t, fc.Nodes)
	assert.Empty(t, fc.Edges)
}

func TestDetailViewSharedNetworks(t *testing.T) {
	target := record("application-gateway", domain.StatusRunning)
	target.Networks = []string{"bridge", "backend"}
	peer := record("infrastructure-postgres", domain.StatusRunning)
	peer.Networks = []string{"backend"}
	bridgeOnly := record("redis", domain.StatusRunning)
	bridgeOnly.Networks = []string{"bridge"}
	unrelated := record("frontend-dashboard", domain.StatusRunning)
	unrelated.Networks = []string{"frontend-net"}

	all := []domain.ContainerRecord{target, peer, bridgeOnly, unrelated}

	fc, ok := BuildView("application-gateway", all, nil)
	require.True(t, ok)
	assert.Equal(t, "application-gateway", fc.ID)
	assert.Equal(t, "application-overview", fc.ParentID)

	require.Len(t, fc.Nodes, 2, "only the backend-network peer joins")
	assert.Equal(t, target.ID, fc.Nodes[0].ID)
	assert.Empty(t, fc.Nodes[0].ChildFlowchart, "seed node has no child pointer")
	assert.Equal(t, peer.ID, fc.Nodes[1].ID)
	assert.Equal(t, peer.Name, fc.Nodes[1].ChildFlowchart)

	require.Len(t, fc.Edges, 1)
	assert.Equal(t, target.ID+"-to-"+peer.ID, fc.Edges[0].ID)
	assert.Equal(t, domain.ConnectionNetwork, fc.Edges[0].ConnectionType)
}

func TestDetailViewResolvesByID(t *testing.T) {
	c := record("application-gateway", domain.StatusRunning)
	fc, ok := BuildView(c.ID, []domain.ContainerRecord{c}, nil)
	require.True(t, ok)
	assert.Equal(t, "application-gateway Detail", fc.Name)
}

func TestBuildViewNotFound(t *testing.T) {
	records := []domain.ContainerRecord{record("application-gateway", domain.StatusRunning)}

	_, ok := BuildView("does-not-exist", records, nil)
	assert.False(t, ok)

	_, ok = BuildView("other-overview", records, nil)
	assert.False(t, ok, "other has no category view; unrecognized tags fall through")
}

func TestBuildViewIdempotent(t *testing.T) {
	records := []domain.ContainerRecord{
		record("frontend-dashboard", domain.StatusRunning),
		record("application-gateway", domain.StatusRunning),
		record("infrastructure-postgres", domain.StatusRunning),
	}

	first, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)
	second, ok := BuildView("system-overview", records, nil)
	require.True(t, ok)

	assert.Equal(t, nodeIDs(first), nodeIDs(second))
	assert.Equal(t, edgeIDs(first), edgeIDs(second))
}

func TestEdgeEndpointsReferencePresentNodes(t *testing.T) {
	records := []domain.ContainerRecord{
		record("frontend-dashboard", domain.StatusRunning),
		record("application-gateway", domain.StatusRunning),
		record("aiml-memory", domain.StatusExited),
		record("val-validator-1", domain.StatusRunning),
		record("val-validator-2", domain.StatusRunning),
	}

	for _, id := range []string{"system-overview", "val-overview", "application-gateway"} {
		fc, ok := BuildView(id, records, nil)
		require.True(t, ok, id)
		present := map[string]bool{}
		for _, n := range fc.Nodes {
			present[n.ID] = true
		}
		for _, e := range fc.Edges {
			assert.True(t, present[e.Source], "%s: edge source %s", id, e.Source)
			assert.True(t, present[e.Target], "%s: edge target %s", id, e.Target)
		}
	}
}

func TestNumericSuffix(t *testing.T) {
	assert.Equal(t, 10, numericSuffix("val-validator-10"))
	assert.Equal(t, 0, numericSuffix("no-number-here"))
	assert.Equal(t, 0, numericSuffix("plain"))
}
