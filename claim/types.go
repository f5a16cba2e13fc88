package claim

import "sort"

// Point is a 2D coordinate in map plane units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in map plane units.
type Rect struct {
	MinX float64 `json:"minX"`
	MaxX float64 `json:"maxX"`
	MinY float64 `json:"minY"`
	MaxY float64 `json:"maxY"`
}

// NewRect builds a Rect from two corner points, normalizing so that
// Min <= Max on both axes regardless of the corner order in the source data.
func NewRect(x1, y1, x2, y2 float64) Rect {
	r := Rect{MinX: x1, MaxX: x2, MinY: y1, MaxY: y2}
	if r.MinX > r.MaxX {
		r.MinX, r.MaxX = r.MaxX, r.MinX
	}
	if r.MinY > r.MaxY {
		r.MinY, r.MaxY = r.MaxY, r.MinY
	}
	return r
}

// Width returns the X extent of the rectangle.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the Y extent of the rectangle.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Area returns the rectangle area.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Center returns the rectangle center point.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Expand grows the rectangle by margin on all four sides.
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		MinX: r.MinX - margin,
		MaxX: r.MaxX + margin,
		MinY: r.MinY - margin,
		MaxY: r.MaxY + margin,
	}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// Contains reports whether the point lies inside or on the rectangle boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// ContainsRect reports whether o lies entirely inside r, boundary included.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX && o.MaxX <= r.MaxX && o.MinY >= r.MinY && o.MaxY <= r.MaxY
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	out := r
	if o.MinX < out.MinX {
		out.MinX = o.MinX
	}
	if o.MinY < out.MinY {
		out.MinY = o.MinY
	}
	if o.MaxX > out.MaxX {
		out.MaxX = o.MaxX
	}
	if o.MaxY > out.MaxY {
		out.MaxY = o.MaxY
	}
	return out
}

// Guild identifies the faction owning one or more territories.
type Guild struct {
	Name string `json:"name"`
	Tag  string `json:"prefix"`
}

// Territory is an owned, axis-aligned rectangular map region. Start and End
// are the two corner points as delivered by the upstream dataset; they are
// not guaranteed to be ordered.
type Territory struct {
	Name          string     `json:"name"`
	Start         [2]float64 `json:"start"`
	End           [2]float64 `json:"end"`
	Guild         Guild      `json:"guild"`
	TradingRoutes []string   `json:"tradingRoutes,omitempty"`
}

// Rect returns the territory's normalized rectangle.
func (t *Territory) Rect() Rect {
	return NewRect(t.Start[0], t.Start[1], t.End[0], t.End[1])
}

// TerritoryMap is the live territory dataset keyed by territory name.
type TerritoryMap map[string]*Territory

// RouteTable is the static trading-route fallback dataset keyed by territory
// name. It is consulted only when a territory's live route list is empty.
type RouteTable map[string][]string

// GuildTerritories groups territory names by owning guild. Names within each
// guild are sorted so downstream traversal order is deterministic.
// Territories with an empty guild name are unowned and skipped.
func (tm TerritoryMap) GuildTerritories() map[Guild][]string {
	groups := make(map[Guild][]string)
	for name, t := range tm {
		if t == nil || t.Guild.Name == "" {
			continue
		}
		groups[t.Guild] = append(groups[t.Guild], name)
	}
	for g := range groups {
		sort.Strings(groups[g])
	}
	return groups
}

// LabelBox is the computed label anchor and the maximum label extent that
// fits inside the claim polygon at that anchor.
type LabelBox struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	MaxWidth  float64 `json:"maxWidth"`
	MaxHeight float64 `json:"maxHeight"`
}

// Ring is a closed rectilinear loop of outline vertices. The first vertex is
// not repeated at the end.
type Ring []Point

// ClaimShape is the per-cluster output of a render pass: one merged
// rectilinear polygon with a label placement, ready for a vector renderer.
type ClaimShape struct {
	Guild       Guild    `json:"guild"`
	Color       string   `json:"color"`
	Territories []string `json:"territories"`

	// Path uses only M/H/V/Z commands and may contain several closed loops
	// for multiply-connected or disjoint claim regions.
	Path  string   `json:"path"`
	Loops []Ring   `json:"-"`
	Label LabelBox `json:"label"`

	// Area is the total unexpanded rectangle area of the cluster, territory
	// rectangles plus synthesized bridges, the key used by the exclusion
	// ordering.
	Area float64 `json:"area"`
}

// Default engine tuning values. These were calibrated against the production
// map's pixel scale; a different coordinate scale needs recalibration.
const (
	// DefaultProximityThreshold is the maximum edge-to-edge distance (plane
	// units) for two territories to count as spatially adjacent.
	DefaultProximityThreshold = 100.0

	// DefaultExpandMargin is added to every rectangle side before the union
	// so touching territories fuse visually.
	DefaultExpandMargin = 3.0

	// DefaultGapCloseThreshold is the widest unfilled row/column gap that is
	// closed during the union step.
	DefaultGapCloseThreshold = 100.0

	// DefaultBridgeWidthRatio sizes a diagonal bridge as a fraction of the
	// smaller participant's smallest dimension.
	DefaultBridgeWidthRatio = 0.6

	// DefaultLabelMaxScale caps label growth at four times the base size.
	DefaultLabelMaxScale = 4.0

	// DefaultLabelSearchStep is the radial step of the ring search around
	// the cluster centroid.
	DefaultLabelSearchStep = 12.0

	// DefaultLabelCharWidth and DefaultLabelBaseHeight define the baseline
	// (1x) label box for a guild tag.
	DefaultLabelCharWidth  = 14.0
	DefaultLabelBaseHeight = 24.0
)

// EngineConfig holds the geometry tuning values. Zero fields are replaced by
// the Default* constants, so a partial YAML section is valid.
type EngineConfig struct {
	ProximityThreshold float64 `yaml:"proximityThreshold,omitempty" json:"proximityThreshold,omitempty"`
	ExpandMargin       float64 `yaml:"expandMargin,omitempty" json:"expandMargin,omitempty"`
	GapCloseThreshold  float64 `yaml:"gapCloseThreshold,omitempty" json:"gapCloseThreshold,omitempty"`
	BridgeWidthRatio   float64 `yaml:"bridgeWidthRatio,omitempty" json:"bridgeWidthRatio,omitempty"`
	LabelMaxScale      float64 `yaml:"labelMaxScale,omitempty" json:"labelMaxScale,omitempty"`
	LabelSearchStep    float64 `yaml:"labelSearchStep,omitempty" json:"labelSearchStep,omitempty"`
	LabelCharWidth     float64 `yaml:"labelCharWidth,omitempty" json:"labelCharWidth,omitempty"`
	LabelBaseHeight    float64 `yaml:"labelBaseHeight,omitempty" json:"labelBaseHeight,omitempty"`
}

// DefaultEngineConfig returns an EngineConfig with all defaults applied.
func DefaultEngineConfig() EngineConfig {
	var c EngineConfig
	c.applyDefaults()
	return c
}

func (c *EngineConfig) applyDefaults() {
	if c.ProximityThreshold <= 0 {
		c.ProximityThreshold = DefaultProximityThreshold
	}
	if c.ExpandMargin <= 0 {
		c.ExpandMargin = DefaultExpandMargin
	}
	if c.GapCloseThreshold <= 0 {
		c.GapCloseThreshold = DefaultGapCloseThreshold
	}
	if c.BridgeWidthRatio <= 0 {
		c.BridgeWidthRatio = DefaultBridgeWidthRatio
	}
	if c.LabelMaxScale <= 0 {
		c.LabelMaxScale = DefaultLabelMaxScale
	}
	if c.LabelSearchStep <= 0 {
		c.LabelSearchStep = DefaultLabelSearchStep
	}
	if c.LabelCharWidth <= 0 {
		c.LabelCharWidth = DefaultLabelCharWidth
	}
	if c.LabelBaseHeight <= 0 {
		c.LabelBaseHeight = DefaultLabelBaseHeight
	}
}

// GuildColorConfig assigns a display color to a guild from the config file.
type GuildColorConfig struct {
	Name  string `yaml:"name" json:"name"`
	Tag   string `yaml:"tag,omitempty" json:"tag,omitempty"`
	Color string `yaml:"color" json:"color"`
}

// MQTTConfig holds MQTT connection settings.
type MQTTConfig struct {
	Broker           string `yaml:"broker,omitempty" json:"broker,omitempty"`
	ClientID         string `yaml:"clientId,omitempty" json:"clientId,omitempty"`
	Username         string `yaml:"username,omitempty" json:"username,omitempty"`
	Password         string `yaml:"password,omitempty" json:"password,omitempty"`
	TerritoriesTopic string `yaml:"territoriesTopic,omitempty" json:"territoriesTopic,omitempty"`
	PublishPrefix    string `yaml:"publishPrefix,omitempty" json:"publishPrefix,omitempty"`
}

// SourceConfig points at the territory and trading-route datasets.
type SourceConfig struct {
	TerritoriesURL  string `yaml:"territoriesUrl,omitempty" json:"territoriesUrl,omitempty"`
	TerritoriesFile string `yaml:"territoriesFile,omitempty" json:"territoriesFile,omitempty"`
	RoutesFile      string `yaml:"routesFile,omitempty" json:"routesFile,omitempty"`
}

// Config is the full configuration file.
type Config struct {
	HTTPPort int                `yaml:"httpPort,omitempty" json:"httpPort,omitempty"`
	MQTT     MQTTConfig         `yaml:"mqtt,omitempty" json:"mqtt,omitempty"`
	Sources  SourceConfig       `yaml:"sources,omitempty" json:"sources,omitempty"`
	Engine   EngineConfig       `yaml:"engine,omitempty" json:"engine,omitempty"`
	Guilds   []GuildColorConfig `yaml:"guilds,omitempty" json:"guilds,omitempty"`
}

// GetGuildByName returns the color config entry for the given guild name.
func (c *Config) GetGuildByName(name string) *GuildColorConfig {
	for i := range c.Guilds {
		if c.Guilds[i].Name == name {
			return &c.Guilds[i]
		}
	}
	return nil
}
