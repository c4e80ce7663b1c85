package domain

// NodeType distinguishes single services from category groups.
type NodeType string

const (
	NodeService NodeType = "service"
	NodeGroup   NodeType = "group"
)

// ConnectionType classifies an edge between two flowchart nodes.
type ConnectionType string

const (
	ConnectionPrimary   ConnectionType = "primary"
	ConnectionSecondary ConnectionType = "secondary"
	ConnectionData      ConnectionType = "data"
	ConnectionControl   ConnectionType = "control"
	ConnectionNetwork   ConnectionType = "network"
	ConnectionVolume    ConnectionType = "volume"
	ConnectionDepends   ConnectionType = "depends"
)

// FlowchartNode is a single node in a navigable view. ChildFlowchart, when
// set, is the id of the view the dashboard drills into on click.
type FlowchartNode struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Status         ContainerStatus `json:"status"`
	NodeType       NodeType        `json:"nodeType"`
	Category       ServiceCategory `json:"category"`
	Port           *uint16         `json:"port,omitempty"`
	ChildFlowchart string          `json:"childFlowchart,omitempty"`
	Stats          *ResourceSample `json:"stats,omitempty"`
}

// FlowchartEdge is a directed connection between two nodes of the same
// flowchart. Source and Target always reference node ids present in it.
type FlowchartEdge struct {
	ID             string         `json:"id"`
	Source         string         `json:"source"`
	Target         string         `json:"target"`
	Label          string         `json:"label,omitempty"`
	ConnectionType ConnectionType `json:"connectionType"`
}

// Flowchart is one navigable graph view. The edge list serializes under
// "connections", the name the dashboard's types use for it.
type Flowchart struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Nodes       []FlowchartNode `json:"nodes"`
	Edges       []FlowchartEdge `json:"connections"`
	ParentID    string          `json:"parentId,omitempty"`
}
