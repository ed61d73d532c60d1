package schema

// Dataset is the loaded input of a run.
type Dataset struct {
	Records    []IncidentRecord      `json:"-"`
	Rows       int                   `json:"rows"`      // data rows read from the incident file
	Malformed  int                   `json:"malformed"` // rows the loader could not use
	Digest     string                `json:"digest"`    // sha256 of the incident file
	Boundaries *GeoFeatureCollection `json:"-"`         // nil without a boundary file
}

// DistrictsReport is the ranked per-PDQ summary of a filtered dataset.
type DistrictsReport struct {
	Criteria  string           `json:"criteria"`
	Records   int              `json:"records"`
	Skipped   int              `json:"skipped"`
	Scale     ColorScale       `json:"scale"`
	Districts []DistrictResult `json:"districts"`
	Unmatched []int            `json:"unmatched,omitempty"`
}

// HeatPoint is one located incident, weighted for a heat map layer.
type HeatPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Weight    float64 `json:"weight"`
}

// HeatBounds is the bounding box of a set of heat points.
type HeatBounds struct {
	MinLatitude  float64 `json:"minLatitude"`
	MinLongitude float64 `json:"minLongitude"`
	MaxLatitude  float64 `json:"maxLatitude"`
	MaxLongitude float64 `json:"maxLongitude"`
}

// HeatmapReport holds the located incidents of a filtered dataset.
type HeatmapReport struct {
	Criteria string      `json:"criteria"`
	Records  int         `json:"records"` // filtered records, located or not
	Bounds   *HeatBounds `json:"bounds,omitempty"`
	Points   []HeatPoint `json:"points"`
}

// ScaleReport is a color scale with its legend.
type ScaleReport struct {
	Criteria  string        `json:"criteria"`
	Districts int           `json:"districts"`
	Scale     ColorScale    `json:"scale"`
	Legend    []LegendEntry `json:"legend"`
}

// EnrichedDistrictResult adds presentation data to a DistrictResult.
type EnrichedDistrictResult struct {
	Rank  int    `json:"rank"`
	Color string `json:"color"`
	DistrictResult
}

// EnrichedImpactScore adds presentation data to an ImpactScore.
type EnrichedImpactScore struct {
	Rank     int    `json:"rank"`
	Quadrant string `json:"quadrant,omitempty"`
	ImpactScore
}

// EnrichDistricts adds rank and bucket color to a list of district results.
func EnrichDistricts(rows []DistrictResult, scale ColorScale) []EnrichedDistrictResult {
	output := make([]EnrichedDistrictResult, len(rows))
	for i, r := range rows {
		output[i] = EnrichedDistrictResult{
			Rank:           i + 1,
			Color:          scale.Colors[r.Bucket],
			DistrictResult: r,
		}
	}
	return output
}

// EnrichImpact adds rank and quadrant to a list of impact scores.
func EnrichImpact(scores []ImpactScore, quadrants map[string]string) []EnrichedImpactScore {
	output := make([]EnrichedImpactScore, len(scores))
	for i, s := range scores {
		output[i] = EnrichedImpactScore{
			Rank:        i + 1,
			Quadrant:    quadrants[s.Category],
			ImpactScore: s,
		}
	}
	return output
}
