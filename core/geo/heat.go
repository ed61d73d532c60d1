package geo

import (
	"math"

	"github.com/mtlpdq/pdqstats/schema"
	"github.com/twpayne/go-geom"
)

// HeatPoints returns one weight 1 point per record with usable coordinates, in record order.
// Missing, NaN, zero and out of range coordinates are skipped.
func HeatPoints(records []schema.IncidentRecord) []schema.HeatPoint {
	points := make([]schema.HeatPoint, 0)
	for _, r := range records {
		if !validCoordinate(r.Latitude, 90) || !validCoordinate(r.Longitude, 180) {
			continue
		}
		points = append(points, schema.HeatPoint{Latitude: *r.Latitude, Longitude: *r.Longitude, Weight: 1})
	}
	return points
}

func validCoordinate(v *float64, limit float64) bool {
	return v != nil && !math.IsNaN(*v) && *v != 0 && math.Abs(*v) <= limit
}

// HeatPointBounds returns the bounding box of points, or nil when there are none.
func HeatPointBounds(points []schema.HeatPoint) *schema.HeatBounds {
	if len(points) == 0 {
		return nil
	}
	flat := make([]float64, 0, 2*len(points))
	for _, p := range points {
		flat = append(flat, p.Longitude, p.Latitude)
	}
	b := geom.NewMultiPointFlat(geom.XY, flat).Bounds()
	return &schema.HeatBounds{
		MinLatitude:  b.Min(1),
		MinLongitude: b.Min(0),
		MaxLatitude:  b.Max(1),
		MaxLongitude: b.Max(0),
	}
}
