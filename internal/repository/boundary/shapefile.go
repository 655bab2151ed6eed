package boundary

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"

	"github.com/oceancolor-service/internal/domain"
)

// loadShapefile разворачивает все части всех полигонов shapefile
// в плоский список колец. Координаты ожидаются в WGS84.
func loadShapefile(path string) ([]domain.Ring, error) {
	shape, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open shapefile: %w", err)
	}
	defer shape.Close()

	var rings []domain.Ring
	for shape.Next() {
		_, p := shape.Shape()

		polygon, ok := p.(*shp.Polygon)
		if !ok {
			continue
		}

		for partIdx := 0; partIdx < len(polygon.Parts); partIdx++ {
			start := int(polygon.Parts[partIdx])
			end := len(polygon.Points)
			if partIdx+1 < len(polygon.Parts) {
				end = int(polygon.Parts[partIdx+1])
			}

			ring := make(domain.Ring, 0, end-start)
			for i := start; i < end; i++ {
				point := polygon.Points[i]
				ring = append(ring, domain.LonLat{Lon: point.X, Lat: point.Y})
			}
			rings = append(rings, ring)
		}
	}

	return rings, nil
}
