// Package prefgraph implements the Preference Graph Analyzer (spec.md
// §4.2): a directed graph over participants where each vertex has
// out-degree <= 1 (one optional preferred partner), and the detection of
// simple cycles ("preference loops") in that graph.
//
// Grounded on the teacher's internal/graph/graph.go adjacency-map
// ConflictGraph (Nodes / AdjacencyList / Copy), specialized to a directed
// out-degree-1 structure and written in the traversal idiom of
// katalvlaran-lvlath/graph/core: an explicit Graph struct with small,
// single-purpose methods and a visited/on-stack traversal rather than a
// general-purpose SCC algorithm (spec.md §9 calls the latter needless
// overkill for an out-degree-1 graph).
package prefgraph

import (
	"sort"

	"github.com/udp-cs/groupassign/internal/domain"
)

// Graph is V = participant emails, E = preferred-partner edges. Out-degree
// per vertex is at most 1, so edges is a plain map rather than an
// adjacency list.
type Graph struct {
	nodes map[string]*domain.Student
	edges map[string]string // email -> preferred partner email
}

// Build constructs the graph from the participant set: an edge u->v exists
// iff u's preferred partner resolves to v.
func Build(participants []*domain.Student) *Graph {
	g := &Graph{
		nodes: make(map[string]*domain.Student, len(participants)),
		edges: make(map[string]string),
	}
	for _, p := range participants {
		g.nodes[p.Email] = p
	}
	for _, p := range participants {
		if p.PreferredPartnerEmail == "" {
			continue
		}
		if _, ok := g.nodes[p.PreferredPartnerEmail]; ok {
			g.edges[p.Email] = p.PreferredPartnerEmail
		}
	}
	return g
}

// NumVertices returns |V|.
func (g *Graph) NumVertices() int { return len(g.nodes) }

// successor returns the out-neighbor of email, or "" if it has none.
func (g *Graph) successor(email string) string {
	return g.edges[email]
}

// FindLoops returns all simple directed cycles of length >= 2 (spec.md
// §4.2). Because out-degree <= 1, every weakly connected component
// contains at most one cycle, so a single visited/on-stack traversal per
// unvisited vertex suffices — no general SCC algorithm is needed.
func FindLoops(g *Graph) []domain.PreferenceLoop {
	visited := make(map[string]bool, len(g.nodes))
	var loops []domain.PreferenceLoop

	// Deterministic traversal order for reproducibility (P9/P10): sort
	// vertex emails once up front.
	emails := make([]string, 0, len(g.nodes))
	for e := range g.nodes {
		emails = append(emails, e)
	}
	sort.Strings(emails)

	for _, start := range emails {
		if visited[start] {
			continue
		}

		// Walk the out-degree-1 chain from start, recording position on
		// the current path so we can detect a back-edge into it.
		path := []string{}
		onPath := make(map[string]int, 4)
		cur := start
		for cur != "" && !visited[cur] {
			if idx, ok := onPath[cur]; ok {
				cycle := path[idx:]
				if len(cycle) >= 2 {
					loops = append(loops, toLoop(g, canonicalize(cycle)))
				}
				break
			}
			onPath[cur] = len(path)
			path = append(path, cur)
			cur = g.successor(cur)
		}
		for _, v := range path {
			visited[v] = true
		}
	}

	return loops
}

// canonicalize rotates a cycle to begin at its lexicographically smallest
// email, preserving edge direction (spec.md §4.2).
func canonicalize(cycle []string) []string {
	minIdx := 0
	for i, e := range cycle {
		if e < cycle[minIdx] {
			minIdx = i
		}
	}
	out := make([]string, len(cycle))
	for i := range cycle {
		out[i] = cycle[(minIdx+i)%len(cycle)]
	}
	return out
}

func toLoop(g *Graph, emails []string) domain.PreferenceLoop {
	members := make([]*domain.Student, len(emails))
	for i, e := range emails {
		members[i] = g.nodes[e]
	}
	return domain.PreferenceLoop{Members: members}
}
