// Package molecule coding=utf-8
// @Project : go-bigsmiles
// @Time    : 2025/12/03 11:12
// @Author  : chengxiang.luo
// @Email   : chengxiang.luo@foxmail.com
// @File    : graph.go
// @Software: GoLand
package molecule

import (
	"sort"

	bits "github.com/willf/bitset"
)

// Ring is a simple cycle, stored as the ordered sequence of node indices.
type Ring struct {
	Nodes []uint16
}

// Size returns the number of atoms (equivalently bonds) in the ring.
func (r Ring) Size() int {
	return len(r.Nodes)
}

// edgeKey is an unordered node pair, normalised source < target.
type edgeKey struct {
	a, b uint16
}

func makeEdgeKey(u, v uint16) edgeKey {
	if u > v {
		u, v = v, u
	}
	return edgeKey{a: u, b: v}
}

// AromaticRings returns all minimal aromatic rings of the molecule.
//
// The aromatic subgraph keeps edges whose bond kind is aromatic and whose
// endpoints are both aromatic; for each such edge the shortest cycle through
// it is found by a BFS that refuses the direct edge. Rings are deduplicated
// by node set and sorted by size.
func (m *Molecule) AromaticRings() []Ring {
	n := len(m.Nodes)
	if n == 0 {
		return nil
	}

	adj := make([][]uint16, n)
	edges := make([]edgeKey, 0)
	seen := make(map[edgeKey]struct{})

	for _, bond := range m.Bonds {
		if bond.Kind != BOND_AROMATIC {
			continue
		}
		if !m.Nodes[bond.Source].Aromatic || !m.Nodes[bond.Target].Aromatic {
			continue
		}
		adj[bond.Source] = append(adj[bond.Source], bond.Target)
		adj[bond.Target] = append(adj[bond.Target], bond.Source)
		key := makeEdgeKey(bond.Source, bond.Target)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			edges = append(edges, key)
		}
	}

	return findRingsInSubgraph(adj, edges, n)
}

// findRingsInSubgraph finds the minimal ring through every edge of a
// subgraph and deduplicates by node set. Shared by AromaticRings and the
// Kekulé ring detection in the canonical writer.
func findRingsInSubgraph(adj [][]uint16, edges []edgeKey, n int) []Ring {
	var rings []Ring
	var ringSets []*bits.BitSet

	for _, e := range edges {
		path := shortestPathExcludingEdge(e.a, e.b, adj, n)
		if path == nil {
			continue
		}
		set := bits.New(uint(n))
		for _, node := range path {
			set.Set(uint(node))
		}
		duplicate := false
		for _, existing := range ringSets {
			if existing.Equal(set) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			ringSets = append(ringSets, set)
			rings = append(rings, Ring{Nodes: path})
		}
	}

	sort.SliceStable(rings, func(i, j int) bool {
		return len(rings[i].Nodes) < len(rings[j].Nodes)
	})
	return rings
}

// shortestPathExcludingEdge runs a BFS from u to v that refuses the direct
// edge (u,v). The returned path, combined with the excluded edge, forms the
// minimal cycle through that edge; nil when no cycle exists.
func shortestPathExcludingEdge(u, v uint16, adj [][]uint16, n int) []uint16 {
	visited := bits.New(uint(n))
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = -1
	}

	queue := make([]uint16, 0, n)
	visited.Set(uint(u))
	queue = append(queue, u)
	found := false

bfs:
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adj[curr] {
			if curr == u && next == v {
				continue // the excluded direct edge
			}
			if visited.Test(uint(next)) {
				continue
			}
			visited.Set(uint(next))
			parent[next] = int32(curr)
			if next == v {
				found = true
				break bfs
			}
			queue = append(queue, next)
		}
	}

	if !found {
		return nil
	}

	var path []uint16
	node := v
	for {
		path = append(path, node)
		if node == u {
			break
		}
		p := parent[node]
		if p < 0 {
			return nil
		}
		node = uint16(p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
