package claim

import (
	"encoding/binary"
	"encoding/json"
	"hash/fnv"
	"sync"
	"time"
)

// ClaimTracker holds the latest ingested datasets and memoizes the computed
// claim list. The claim pass is pure, so the cached result stays valid until
// one of its inputs changes; changes are detected by hashing the inputs
// rather than by flags so redundant updates (an MQTT retransmit of the same
// dataset) do not trigger a rebuild.
type ClaimTracker struct {
	mu          sync.RWMutex
	territories TerritoryMap
	routes      RouteTable
	cfg         EngineConfig
	colors      *ColorResolver

	claims     []ClaimShape
	claimsHash uint64
	updatedAt  time.Time
}

// NewClaimTracker creates a tracker with the given engine tuning and color
// table. Defaults are applied to zero config fields.
func NewClaimTracker(cfg EngineConfig, colors *ColorResolver) *ClaimTracker {
	cfg.applyDefaults()
	return &ClaimTracker{cfg: cfg, colors: colors}
}

// SetTerritories replaces the live territory dataset.
func (ct *ClaimTracker) SetTerritories(tm TerritoryMap) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.territories = tm
	ct.updatedAt = time.Now()
}

// SetRoutes replaces the static trading-route fallback table.
func (ct *ClaimTracker) SetRoutes(rt RouteTable) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.routes = rt
	ct.updatedAt = time.Now()
}

// Territories returns the current territory dataset. The returned map is
// shared; callers must treat it as read only.
func (ct *ClaimTracker) Territories() TerritoryMap {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.territories
}

// HasTerritories reports whether a dataset has been ingested.
func (ct *ClaimTracker) HasTerritories() bool {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return len(ct.territories) > 0
}

// LastUpdated returns the time of the most recent dataset change.
func (ct *ClaimTracker) LastUpdated() time.Time {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.updatedAt
}

// Claims returns the claim shapes for the current datasets, rebuilding only
// when an input changed since the last call. The returned slice is shared;
// callers must treat it as read only.
func (ct *ClaimTracker) Claims() []ClaimShape {
	ct.mu.RLock()
	hash := inputHash(ct.territories, ct.routes, ct.cfg)
	if ct.claims != nil && hash == ct.claimsHash {
		claims := ct.claims
		ct.mu.RUnlock()
		return claims
	}
	tm := ct.territories
	rt := ct.routes
	cfg := ct.cfg
	colors := ct.colors
	ct.mu.RUnlock()

	claims := BuildClaims(tm, rt, cfg, colors)
	if claims == nil {
		claims = []ClaimShape{}
	}

	ct.mu.Lock()
	ct.claims = claims
	ct.claimsHash = hash
	ct.mu.Unlock()
	return claims
}

// inputHash fingerprints the datasets and tuning. Map keys are sorted during
// JSON encoding, so equal inputs always hash equal.
func inputHash(tm TerritoryMap, rt RouteTable, cfg EngineConfig) uint64 {
	h := fnv.New64a()
	if data, err := json.Marshal(tm); err == nil {
		_, _ = h.Write(data)
	}
	if data, err := json.Marshal(rt); err == nil {
		_, _ = h.Write(data)
	}
	for _, v := range [...]float64{
		cfg.ProximityThreshold, cfg.ExpandMargin, cfg.GapCloseThreshold,
		cfg.BridgeWidthRatio, cfg.LabelMaxScale, cfg.LabelSearchStep,
		cfg.LabelCharWidth, cfg.LabelBaseHeight,
	} {
		_ = binary.Write(h, binary.LittleEndian, v)
	}
	return h.Sum64()
}
