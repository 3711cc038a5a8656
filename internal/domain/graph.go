package domain

// Node identifiers are namespaced by origin so the three independent name
// spaces cannot collide: code nodes use the raw file path, business nodes
// use "entity:<name>", infrastructure nodes use "service:<name>".
const (
	NodeTypeCode  = "code"
	NodeTypeBiz   = "business"
	NodeTypeInfra = "infrastructure"
)

// Edge type tags describe which pass produced the edge.
const (
	EdgeImplicit    = "implicit"
	EdgeAssociation = "association"
	EdgeRequires    = "requires"
	EdgeCrossLayer  = "cross_layer"
)

// EntityNodeID returns the graph id for a business entity name.
func EntityNodeID(name string) string { return "entity:" + name }

// ServiceNodeID returns the graph id for an infrastructure service name.
func ServiceNodeID(name string) string { return "service:" + name }

// Node is a vertex in the dependency graph.
type Node struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Edge is a directed connection between two existing nodes.
type Edge struct {
	Source string            `json:"source"`
	Target string            `json:"target"`
	Type   string            `json:"type,omitempty"`
	Attrs  map[string]string `json:"attrs,omitempty"`
}

// Graph is the unified dependency graph across code, business, and
// infrastructure layers.
type Graph struct {
	Nodes map[string]*Node `json:"nodes"`
	Edges []*Edge          `json:"edges"`
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{Nodes: make(map[string]*Node)}
}

// AddNode adds a node, replacing any node with the same id.
func (g *Graph) AddNode(n *Node) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	g.Nodes[n.ID] = n
}

// HasNode reports whether a node with the given id exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// AddEdge adds an edge if both endpoints exist. An edge referencing an
// unknown node is dropped; it never creates the missing node. Returns
// whether the edge was added.
func (g *Graph) AddEdge(e *Edge) bool {
	if !g.HasNode(e.Source) || !g.HasNode(e.Target) {
		return false
	}
	g.Edges = append(g.Edges, e)
	return true
}
