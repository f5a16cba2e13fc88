package claim

import (
	"encoding/json"
	"fmt"
)

// territoryRecord is the wire shape of one entry in the live territory
// dataset. The route list key carries a space because that is how the
// upstream API spells it.
type territoryRecord struct {
	Guild struct {
		Name   string `json:"name"`
		Prefix string `json:"prefix"`
	} `json:"guild"`
	Location struct {
		Start [2]float64 `json:"start"`
		End   [2]float64 `json:"end"`
	} `json:"location"`
	TradingRoutes []string `json:"Trading Routes"`
}

// ParseTerritories decodes the live territory dataset, a JSON object keyed by
// territory name. Entries without a location are rejected; entries without a
// guild are kept as unowned so route lookups through them still work.
func ParseTerritories(data []byte) (TerritoryMap, error) {
	var raw map[string]territoryRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing territories JSON: %w", err)
	}

	tm := make(TerritoryMap, len(raw))
	for name, rec := range raw {
		if name == "" {
			continue
		}
		if rec.Location.Start == rec.Location.End {
			return nil, fmt.Errorf("territory %q: degenerate location", name)
		}
		tm[name] = &Territory{
			Name:          name,
			Start:         rec.Location.Start,
			End:           rec.Location.End,
			Guild:         Guild{Name: rec.Guild.Name, Tag: rec.Guild.Prefix},
			TradingRoutes: rec.TradingRoutes,
		}
	}
	return tm, nil
}

// ParseRouteTable decodes the static trading-route fallback dataset, a JSON
// object keyed by territory name with a "Trading Routes" list per entry.
func ParseRouteTable(data []byte) (RouteTable, error) {
	var raw map[string]struct {
		TradingRoutes []string `json:"Trading Routes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing route table JSON: %w", err)
	}

	table := make(RouteTable, len(raw))
	for name, rec := range raw {
		if name == "" || len(rec.TradingRoutes) == 0 {
			continue
		}
		table[name] = rec.TradingRoutes
	}
	return table, nil
}
