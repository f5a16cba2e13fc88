package claim

import "sort"

// precluster is one guild cluster before geometry is built: the member
// rectangles, the bridges implied by its trading-route edges, and the raw
// area used for exclusion ordering.
type precluster struct {
	guild   Guild
	names   []string
	rects   []Rect
	bridges []Rect
	area    float64
}

// BuildClaims runs the full pass over the live dataset: cluster every guild's
// territories, merge each cluster into one outlined shape, punch out smaller
// claims overlapped by larger ones, and place a label per shape.
//
// Clusters are processed in ascending order of raw area, territories plus
// bridges. Each cluster's geometry excludes the raw rectangles and bridges of
// every smaller cluster processed before it, so when a small guild sits
// inside a large guild's footprint the large claim gets a hole instead of
// painting over it.
//
// The result order equals the processing order, which is fully determined by
// the input data, so repeated runs over the same dataset produce identical
// output.
func BuildClaims(tm TerritoryMap, static RouteTable, cfg EngineConfig, colors *ColorResolver) []ClaimShape {
	cfg.applyDefaults()

	pre := buildPreclusters(tm, static, cfg)

	var shapes []ClaimShape
	var carved []Rect

	for _, pc := range pre {
		filled := make([]Rect, 0, len(pc.rects)+len(pc.bridges))
		for _, r := range pc.rects {
			filled = append(filled, r.Expand(cfg.ExpandMargin))
		}
		filled = append(filled, pc.bridges...)

		excluded := make([]Rect, len(carved))
		copy(excluded, carved)

		// The cluster's own raw rectangles and bridges join the carved set
		// regardless of whether its outline survived, so later clusters
		// still avoid all ground it occupies.
		carved = append(carved, pc.rects...)
		carved = append(carved, pc.bridges...)

		outline, ok := BuildUnionOutline(filled, excluded, cfg.GapCloseThreshold)
		if !ok {
			continue
		}

		shape := ClaimShape{
			Guild:       pc.guild,
			Territories: pc.names,
			Path:        outline.Path,
			Loops:       outline.Loops,
			Label:       PlaceLabel(&outline, pc.guild.Tag, cfg),
			Area:        pc.area,
		}
		if colors != nil {
			shape.Color = colors.Resolve(pc.guild)
		}
		shapes = append(shapes, shape)
	}

	return shapes
}

// buildPreclusters partitions every guild's territories into connected
// clusters and sorts the combined list by ascending raw area. Ties break on
// guild name, then on the first territory name, so the order never depends on
// map iteration.
func buildPreclusters(tm TerritoryMap, static RouteTable, cfg EngineConfig) []precluster {
	groups := tm.GuildTerritories()

	guilds := make([]Guild, 0, len(groups))
	for g := range groups {
		guilds = append(guilds, g)
	}
	sort.Slice(guilds, func(i, j int) bool {
		if guilds[i].Name != guilds[j].Name {
			return guilds[i].Name < guilds[j].Name
		}
		return guilds[i].Tag < guilds[j].Tag
	})

	var pre []precluster
	for _, g := range guilds {
		for _, cluster := range FindConnectedClusters(groups[g], tm, static, cfg.ProximityThreshold) {
			pre = append(pre, newPrecluster(g, cluster, tm, cfg))
		}
	}

	sort.SliceStable(pre, func(i, j int) bool {
		if pre[i].area != pre[j].area {
			return pre[i].area < pre[j].area
		}
		if pre[i].guild.Name != pre[j].guild.Name {
			return pre[i].guild.Name < pre[j].guild.Name
		}
		return pre[i].names[0] < pre[j].names[0]
	})
	return pre
}

func newPrecluster(g Guild, cluster ClusterResult, tm TerritoryMap, cfg EngineConfig) precluster {
	pc := precluster{guild: g, names: cluster.Names}

	rectByName := make(map[string]Rect, len(cluster.Names))
	for _, name := range cluster.Names {
		t := tm[name]
		if t == nil {
			continue
		}
		r := t.Rect()
		rectByName[name] = r
		pc.rects = append(pc.rects, r)
		pc.area += r.Area()
	}

	for _, edge := range cluster.RouteEdges {
		a, okA := rectByName[edge.From]
		b, okB := rectByName[edge.To]
		if !okA || !okB {
			continue
		}
		if bridge, ok := BridgeRect(a, b, cfg.BridgeWidthRatio); ok {
			pc.bridges = append(pc.bridges, bridge)
			pc.area += bridge.Area()
		}
	}
	return pc
}
