package loader

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mtlpdq/pdqstats/core/geo"
	"github.com/mtlpdq/pdqstats/schema"
	"github.com/rs/zerolog/log"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// ParseBoundaries decodes a PDQ boundary FeatureCollection.
// Features without a usable PDQ property are kept as unassigned so their geometry survives a merge.
func ParseBoundaries(data []byte) (schema.GeoFeatureCollection, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return schema.GeoFeatureCollection{}, fmt.Errorf("failed to decode boundary GeoJSON: %w", err)
	}

	out := schema.GeoFeatureCollection{Features: make([]schema.GeoFeature, 0, len(fc.Features))}
	for i, f := range fc.Features {
		if f == nil {
			continue
		}
		pdq, ok := districtProperty(f.Properties)
		if !ok {
			log.Debug().Int("feature", i).Str("id", f.ID).Msg("Boundary feature without PDQ")
		}
		name, _ := f.Properties[geo.NameProperty].(string)
		out.Features = append(out.Features, schema.GeoFeature{
			ID:         f.ID,
			PDQ:        pdq,
			Unassigned: !ok,
			Name:       strings.TrimSpace(name),
			Properties: f.Properties,
			Geometry:   f.Geometry,
		})
	}
	return out, nil
}

// districtProperty reads the PDQ property, accepting numbers and numeric strings.
func districtProperty(props map[string]any) (int, bool) {
	v, ok := props[geo.PDQProperty]
	if !ok {
		v, ok = props[strings.ToLower(geo.PDQProperty)]
	}
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	default:
		return 0, false
	}
}
