// Package geo joins district statistics onto boundary features.
package geo

import (
	"encoding/json"
	"fmt"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Merge returns a deep copy of fc where every feature carries the statistics of its PDQ.
// Features whose PDQ has no incidents, and unassigned features, receive an all-zero DistrictStats. The caller's
// collection and statistics are never modified.
func Merge(fc schema.GeoFeatureCollection, byDistrict map[int]*schema.DistrictStats) schema.GeoFeatureCollection {
	merged := schema.GeoFeatureCollection{Features: make([]schema.GeoFeature, len(fc.Features))}
	for i, f := range fc.Features {
		out := schema.GeoFeature{
			ID:         f.ID,
			PDQ:        f.PDQ,
			Unassigned: f.Unassigned,
			Name:       f.Name,
			Properties: copyProperties(f.Properties),
			Geometry:   cloneGeometry(f.Geometry),
		}
		if stats, ok := byDistrict[f.PDQ]; ok && stats != nil && !f.Unassigned {
			out.CrimeStats = CloneStats(stats)
		} else {
			out.CrimeStats = schema.NewDistrictStats(nil, nil)
		}
		merged.Features[i] = out
	}
	return merged
}

// Unmatched returns the districts present in byDistrict without a boundary feature.
func Unmatched(fc schema.GeoFeatureCollection, byDistrict map[int]*schema.DistrictStats) []int {
	known := make(map[int]struct{}, len(fc.Features))
	for _, f := range fc.Features {
		if !f.Unassigned {
			known[f.PDQ] = struct{}{}
		}
	}
	var missing []int
	for _, id := range (schema.AggregationResult{ByDistrict: byDistrict}).Districts() {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// CloneStats returns an independent copy of s.
func CloneStats(s *schema.DistrictStats) *schema.DistrictStats {
	out := &schema.DistrictStats{
		Total:             s.Total,
		ByCategory:        make(map[string]int, len(s.ByCategory)),
		ByYear:            make(map[int]int, len(s.ByYear)),
		ByCategoryAndYear: make(map[string]map[int]int, len(s.ByCategoryAndYear)),
	}
	for k, v := range s.ByCategory {
		out.ByCategory[k] = v
	}
	for k, v := range s.ByYear {
		out.ByYear[k] = v
	}
	for c, perYear := range s.ByCategoryAndYear {
		inner := make(map[int]int, len(perYear))
		for y, v := range perYear {
			inner[y] = v
		}
		out.ByCategoryAndYear[c] = inner
	}
	return out
}

// copyProperties deep copies a JSON-like property tree.
func copyProperties(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyProperties(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}

// cloneGeometry copies a geometry so the result shares no coordinates with g.
func cloneGeometry(g geom.T) geom.T {
	switch t := g.(type) {
	case nil:
		return nil
	case *geom.Polygon:
		if t == nil {
			return nil
		}
		return t.Clone()
	case *geom.MultiPolygon:
		if t == nil {
			return nil
		}
		return t.Clone()
	case *geom.Point:
		if t == nil {
			return nil
		}
		return t.Clone()
	case *geom.LineString:
		if t == nil {
			return nil
		}
		return t.Clone()
	case *geom.MultiPoint:
		if t == nil {
			return nil
		}
		return t.Clone()
	case *geom.MultiLineString:
		if t == nil {
			return nil
		}
		return t.Clone()
	default:
		// Round trip through GeoJSON for collections.
		data, err := geojson.Marshal(g)
		if err != nil {
			return g
		}
		var out geom.T
		if err := geojson.Unmarshal(data, &out); err != nil {
			return g
		}
		return out
	}
}

// ToGeoJSON encodes a merged collection as a GeoJSON FeatureCollection.
// Each feature's properties carry PDQ, NOM_PDQ and crimeStats. Unassigned features get no PDQ.
func ToGeoJSON(fc schema.GeoFeatureCollection) ([]byte, error) {
	out := geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(fc.Features))}
	for _, f := range fc.Features {
		props := copyProperties(f.Properties)
		if props == nil {
			props = make(map[string]any)
		}
		if !f.Unassigned {
			props[PDQProperty] = f.PDQ
		}
		if f.Name != "" {
			props[NameProperty] = f.Name
		}
		if f.CrimeStats != nil {
			props[StatsProperty] = f.CrimeStats
		}
		out.Features = append(out.Features, &geojson.Feature{
			ID:         f.ID,
			Geometry:   f.Geometry,
			Properties: props,
		})
	}
	data, err := json.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode feature collection: %w", err)
	}
	return data, nil
}

// Property names used in boundary files.
const (
	PDQProperty   = "PDQ"
	NameProperty  = "NOM_PDQ"
	StatsProperty = "crimeStats"
)
