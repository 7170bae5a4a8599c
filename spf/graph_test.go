package spf

import "testing"

func TestShortestPathsChain(t *testing.T) {
	// 1 -- 2 -- 3, each link metric 1.
	graph := Graph{
		1: {{To: 2, Metric: 1}},
		2: {{To: 1, Metric: 1}, {To: 3, Metric: 1}},
		3: {{To: 2, Metric: 1}},
	}

	paths := ShortestPaths(graph, 1)
	if paths[2].Metric != 1 || paths[2].NextHop != 2 {
		t.Errorf("got %+v, want metric 1 nextHop 2", paths[2])
	}
	if paths[3].Metric != 2 || paths[3].NextHop != 2 {
		t.Errorf("got %+v, want metric 2 nextHop 2", paths[3])
	}
}

func TestShortestPathsPrefersCheaperPath(t *testing.T) {
	// 1 -> 2 (metric 10), 1 -> 3 (metric 1) -> 2 (metric 1): cheaper via 3.
	graph := Graph{
		1: {{To: 2, Metric: 10}, {To: 3, Metric: 1}},
		3: {{To: 2, Metric: 1}},
	}

	paths := ShortestPaths(graph, 1)
	if paths[2].Metric != 2 || paths[2].NextHop != 3 {
		t.Errorf("got %+v, want metric 2 nextHop 3", paths[2])
	}
}

func TestShortestPathsOmitsUnreachable(t *testing.T) {
	graph := Graph{
		1: {{To: 2, Metric: 1}},
		3: {{To: 4, Metric: 1}},
	}

	paths := ShortestPaths(graph, 1)
	if _, ok := paths[3]; ok {
		t.Error("expected vertex 3 to be unreachable from 1")
	}
	if _, ok := paths[4]; ok {
		t.Error("expected vertex 4 to be unreachable from 1")
	}
}

func TestShortestPathsOmitsSource(t *testing.T) {
	graph := Graph{1: {{To: 2, Metric: 1}}}
	paths := ShortestPaths(graph, 1)
	if _, ok := paths[1]; ok {
		t.Error("expected source to be omitted from results")
	}
}
