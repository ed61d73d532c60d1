package schema

import "github.com/twpayne/go-geom"

// GeoFeature is one police district boundary.
type GeoFeature struct {
	ID         string         `json:"id,omitempty"`
	PDQ        int            `json:"pdq"`
	Unassigned bool           `json:"unassigned,omitempty"` // no PDQ property; never joined
	Name       string         `json:"name,omitempty"` // NOM_PDQ
	Properties map[string]any `json:"properties,omitempty"`
	Geometry   geom.T         `json:"-"`
	CrimeStats *DistrictStats `json:"crimeStats,omitempty"`
}

// GeoFeatureCollection is the boundary dataset.
type GeoFeatureCollection struct {
	Features []GeoFeature `json:"features"`
}

// Names maps each PDQ to its display name.
func (fc GeoFeatureCollection) Names() map[int]string {
	names := make(map[int]string, len(fc.Features))
	for _, f := range fc.Features {
		if f.Name != "" && !f.Unassigned {
			names[f.PDQ] = f.Name
		}
	}
	return names
}
