// Package spf computes shortest paths over two graphs built from the
// LSDB: an intra-area router graph (L1) and an inter-area area-virtual-node
// graph (L2). Scheduling is debounced (SpfDelay,
// SpfHoldDown) so a burst of LSDB changes triggers one run, not one per
// change.
//
// The Dijkstra mechanics (container/heap priority queue, a DijkstraNode
// with a Fix-based decrease-key) are grounded on a reachability walk
// generalized from a fixed LSDB-shaped graph to a
// plain adjacency map so the same engine serves both L1 and L2, with
// neighbor lookup via an actual map instead of a linear scan.
package spf

import "container/heap"

// Edge is one directed link in a graph, weighted by metric.
type Edge struct {
	To     uint32
	Metric uint32
}

// Graph maps each vertex to its outgoing edges.
type Graph map[uint32][]Edge

// Path is the result of shortest-path computation for one destination
// vertex: the cumulative metric and the first-hop vertex from the source.
type Path struct {
	Metric  uint32
	NextHop uint32
}

type node struct {
	id      uint32
	dist    uint32
	nextHop uint32
	known   bool
	index   int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

const infinite = ^uint32(0)

// ShortestPaths runs Dijkstra from source over graph, returning the
// shortest-path metric and first-hop vertex for every vertex reachable
// from source. source itself and unreachable vertices are omitted.
func ShortestPaths(graph Graph, source uint32) map[uint32]Path {
	nodes := make(map[uint32]*node)
	ensure := func(id uint32) *node {
		n, ok := nodes[id]
		if !ok {
			n = &node{id: id, dist: infinite}
			nodes[id] = n
		}
		return n
	}

	ensure(source).dist = 0
	for from, edges := range graph {
		ensure(from)
		for _, e := range edges {
			ensure(e.To)
		}
	}

	h := make(nodeHeap, 0, len(nodes))
	for _, n := range nodes {
		h = append(h, n)
	}
	heap.Init(&h)

	for h.Len() > 0 {
		cur := heap.Pop(&h).(*node)
		cur.known = true
		if cur.dist == infinite {
			continue
		}

		for _, e := range graph[cur.id] {
			next := nodes[e.To]
			if next.known {
				continue
			}
			candidate := cur.dist + e.Metric
			if candidate < next.dist {
				next.dist = candidate
				if cur.id == source {
					next.nextHop = e.To
				} else {
					next.nextHop = cur.nextHop
				}
				heap.Fix(&h, next.index)
			}
		}
	}

	out := make(map[uint32]Path, len(nodes))
	for id, n := range nodes {
		if id == source || n.dist == infinite {
			continue
		}
		out[id] = Path{Metric: n.dist, NextHop: n.nextHop}
	}
	return out
}
