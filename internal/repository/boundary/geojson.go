package boundary

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/oceancolor-service/internal/domain"
)

// loadGeoJSON разворачивает все Polygon/MultiPolygon коллекции
// в плоский список колец.
func loadGeoJSON(path string) ([]domain.Ring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read geojson: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geojson: %w", err)
	}

	var rings []domain.Ring
	for _, feature := range fc.Features {
		switch geom := feature.Geometry.(type) {
		case orb.Polygon:
			rings = append(rings, polygonRings(geom)...)
		case orb.MultiPolygon:
			for _, polygon := range geom {
				rings = append(rings, polygonRings(polygon)...)
			}
		}
	}

	return rings, nil
}

func polygonRings(polygon orb.Polygon) []domain.Ring {
	rings := make([]domain.Ring, 0, len(polygon))
	for _, orbRing := range polygon {
		ring := make(domain.Ring, 0, len(orbRing))
		for _, point := range orbRing {
			ring = append(ring, domain.LonLat{Lon: point.Lon(), Lat: point.Lat()})
		}
		rings = append(rings, ring)
	}
	return rings
}
