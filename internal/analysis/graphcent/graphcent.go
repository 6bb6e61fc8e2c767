// Package graphcent scores accounts by their position in the reply graph.
// Coordinated account clusters show up as tight cliques with high mutual
// centrality; isolated broadcasters show high out-degree with no clustering.
package graphcent

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"observatory/internal/config"
)

// Edge is one aggregated interaction: From replied to or engaged To a total
// of Weight times.
type Edge struct {
	From   string
	To     string
	Weight float64
}

// Centrality is the per-account graph position. The normalized fields are
// scaled by the graph-wide maximum, so the most central account scores 1.
type Centrality struct {
	PageRank      float64 `json:"pagerank"`
	Betweenness   float64 `json:"betweenness"`
	Clustering    float64 `json:"clustering_coef"`
	InDegreeNorm  float64 `json:"in_degree_norm"`
	OutDegreeNorm float64 `json:"out_degree_norm"`
	InDegree      int     `json:"in_degree"`
	OutDegree     int     `json:"out_degree"`
	NetworkScore  float64 `json:"network_score"`
}

const (
	pageRankDamping   = 0.85
	pageRankTolerance = 1e-6
)

// Analyzer computes centrality under a fixed threshold set.
type Analyzer struct {
	th config.Thresholds
}

// NewAnalyzer creates a graph centrality analyzer.
func NewAnalyzer(th config.Thresholds) *Analyzer {
	return &Analyzer{th: th}
}

// Compute builds the directed interaction graph and scores every node.
// Returns ok=false when the graph has fewer nodes than the minimum, in which
// case no account gets a network score.
func (a *Analyzer) Compute(edges []Edge) (map[string]Centrality, bool) {
	g := simple.NewWeightedDirectedGraph(0, 0)
	ids := make(map[string]int64)
	names := make(map[int64]string)

	nodeFor := func(name string) int64 {
		if id, ok := ids[name]; ok {
			return id
		}
		id := int64(len(ids))
		ids[name] = id
		names[id] = name
		g.AddNode(simple.Node(id))
		return id
	}

	for _, e := range edges {
		if e.From == "" || e.To == "" || e.From == e.To {
			continue
		}
		from, to := nodeFor(e.From), nodeFor(e.To)
		w := e.Weight
		if w <= 0 {
			w = 1
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(from), T: simple.Node(to), W: w})
	}

	if len(ids) < a.th.GraphMinNodes {
		return nil, false
	}

	pr := network.PageRank(g, pageRankDamping, pageRankTolerance)

	var bc map[int64]float64
	if len(ids) > a.th.BetweennessExactMax {
		bc = pivotBetweenness(g, pivotNodes(names, a.th.BetweennessPivots))
	} else {
		bc = network.Betweenness(g)
	}

	cc := localClustering(g)
	inDeg, outDeg := degrees(g)

	maxPR := maxValue(pr)
	maxBC := maxValue(bc)
	maxIn := maxIntValue(inDeg)
	maxOut := maxIntValue(outDeg)

	out := make(map[string]Centrality, len(ids))
	for name, id := range ids {
		c := Centrality{
			PageRank:      round4(norm(pr[id], maxPR)),
			Betweenness:   round4(norm(bc[id], maxBC)),
			Clustering:    round4(cc[id]),
			InDegreeNorm:  round4(norm(float64(inDeg[id]), float64(maxIn))),
			OutDegreeNorm: round4(norm(float64(outDeg[id]), float64(maxOut))),
			InDegree:      inDeg[id],
			OutDegree:     outDeg[id],
		}
		c.NetworkScore = round4(0.35*c.PageRank + 0.25*c.Betweenness + 0.15*c.Clustering +
			0.15*c.InDegreeNorm + 0.10*c.OutDegreeNorm)
		out[name] = c
	}
	return out, true
}

// pivotNodes picks an evenly spaced deterministic sample of node IDs by
// username order.
func pivotNodes(names map[int64]string, k int) []int64 {
	ordered := make([]int64, 0, len(names))
	for id := range names {
		ordered = append(ordered, id)
	}
	sort.Slice(ordered, func(i, j int) bool { return names[ordered[i]] < names[ordered[j]] })

	if len(ordered) <= k {
		return ordered
	}
	pivots := make([]int64, 0, k)
	step := float64(len(ordered)) / float64(k)
	for i := 0; i < k; i++ {
		pivots = append(pivots, ordered[int(float64(i)*step)])
	}
	return pivots
}

// degrees returns in and out degree per node.
func degrees(g *simple.WeightedDirectedGraph) (in, out map[int64]int) {
	in = make(map[int64]int)
	out = make(map[int64]int)
	nodes := g.Nodes()
	for nodes.Next() {
		id := nodes.Node().ID()
		in[id] = g.To(id).Len()
		out[id] = g.From(id).Len()
	}
	return in, out
}

func maxValue(m map[int64]float64) float64 {
	var max float64
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}

func maxIntValue(m map[int64]int) int {
	var max int
	for _, v := range m {
		if v > max {
			max = v
		}
	}
	return max
}

func norm(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return v / max
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
