package graphalg

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"archlens/internal/domain"
)

// Cycles returns the groups of node ids that participate in dependency
// cycles, each group sorted lexically, groups sorted by first member. The
// output is deterministic for a given graph.
func Cycles(g *domain.Graph) [][]string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	dg := simple.NewDirectedGraph()
	toGonum := make(map[string]int64, len(ids))
	toName := make(map[int64]string, len(ids))
	for i, id := range ids {
		gid := int64(i)
		toGonum[id] = gid
		toName[gid] = id
		dg.AddNode(simple.Node(gid))
	}

	for _, e := range g.Edges {
		from, to := toGonum[e.Source], toGonum[e.Target]
		if from == to {
			continue // self edges are not cycles worth reporting
		}
		if !dg.HasEdgeFromTo(from, to) {
			dg.SetEdge(dg.NewEdge(dg.Node(from), dg.Node(to)))
		}
	}

	var cycles [][]string
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		group := make([]string, len(scc))
		for i, n := range scc {
			group[i] = toName[n.ID()]
		}
		sort.Strings(group)
		cycles = append(cycles, group)
	}
	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}
