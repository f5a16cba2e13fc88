package claim

import "sort"

// RouteEdge is a trading-route connection between two territories in the
// same cluster. Proximity-only connections are not recorded because they
// need no bridge geometry.
type RouteEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ClusterResult is one connected component of a guild's territories.
type ClusterResult struct {
	Names      []string
	RouteEdges []RouteEdge
}

// FindConnectedClusters partitions the given territory names into connected
// components. Two territories are connected when they are near (edge distance
// at most threshold) or linked by an explicit trading route. Traversal is
// breadth first over the name set in sorted order, so the component list and
// the order of names within each component are deterministic.
//
// Names without a matching entry in tm still form singleton components so the
// partition invariant (every input name lands in exactly one cluster) holds.
func FindConnectedClusters(names []string, tm TerritoryMap, static RouteTable, threshold float64) []ClusterResult {
	if len(names) == 0 {
		return nil
	}

	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	index := newTerritoryIndex(sorted, tm)

	visited := make(map[string]bool, len(sorted))
	queued := make(map[string]bool, len(sorted))

	var clusters []ClusterResult
	for _, start := range sorted {
		if queued[start] {
			continue
		}

		var cluster ClusterResult
		queue := []string{start}
		queued[start] = true

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			visited[current] = true
			cluster.Names = append(cluster.Names, current)

			ct := tm[current]

			// Candidate pruning for the proximity test only; trading routes
			// are not spatial, so every unvisited name is still checked for
			// a link. Names already sitting in the queue are checked too,
			// because a route between two members first reached through
			// proximity still needs its edge recorded for bridge geometry.
			nearbySet := make(map[string]bool)
			if ct != nil {
				for _, n := range index.nearby(ct.Rect(), threshold) {
					nearbySet[n] = true
				}
			}

			for _, other := range sorted {
				if visited[other] {
					continue
				}

				near := false
				if ct != nil && nearbySet[other] {
					near = IsNear(ct, tm[other], threshold)
				}
				linked := IsLinked(current, other, tm, static)

				if !near && !linked {
					continue
				}
				if linked {
					cluster.RouteEdges = append(cluster.RouteEdges, RouteEdge{From: current, To: other})
				}
				if !queued[other] {
					queue = append(queue, other)
					queued[other] = true
				}
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
