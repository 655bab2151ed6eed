package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/pkg/geo"
)

func TestTileAt_KnownPoints(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		zoom     int
		col, row int
	}{
		{"origin at zoom 0", 0, 0, 0, 0, 0},
		{"greenwich equator zoom 1", 0, 0, 1, 1, 1},
		{"east china sea zoom 7", 30.0, 122.0, 7, 107, 52},
		{"west hemisphere", 40.7, -74.0, 10, 301, 385},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, row := geo.TileAt(tt.lat, tt.lon, tt.zoom)
			assert.Equal(t, tt.col, col)
			assert.Equal(t, tt.row, row)
		})
	}
}

func TestTileAt_Deterministic(t *testing.T) {
	c1, r1 := geo.TileAt(30.5, 122.3, 7)
	c2, r2 := geo.TileAt(30.5, 122.3, 7)
	assert.Equal(t, c1, c2)
	assert.Equal(t, r1, r2)
}

// Рост долготы никогда не уменьшает индекс столбца при фиксированном zoom.
func TestTileAt_MonotonicLongitude(t *testing.T) {
	for zoom := 1; zoom <= 10; zoom++ {
		prev := -1
		for lon := -179.5; lon < 180; lon += 0.5 {
			col, _ := geo.TileAt(30.0, lon, zoom)
			assert.GreaterOrEqual(t, col, prev, "zoom=%d lon=%f", zoom, lon)
			prev = col
		}
	}
}

func TestTileAt_ClampsLatitudeWithoutPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		_, rowTop := geo.TileAt(89.9, 0, 5)
		_, rowBottom := geo.TileAt(-89.9, 0, 5)
		assert.GreaterOrEqual(t, rowTop, 0)
		assert.LessOrEqual(t, rowBottom, 31)
	})
}

func TestMosaicPixel_OriginTileCorner(t *testing.T) {
	// Северо-западный угол тайла (origin) должен отобразиться в (0, 0).
	zoom := 7
	col, row := geo.TileAt(31.0, 121.0, zoom)

	// Географические координаты северо-западного угла этого тайла.
	n := float64(int(1) << zoom)
	lonNW := float64(col)/n*360.0 - 180.0

	x, _ := geo.MosaicPixel(31.0, lonNW, zoom, col, row)
	assert.Equal(t, 0, x)
}

func TestRasterPixel_CornerRoundTrip(t *testing.T) {
	b := domain.Bounds{North: 31.290, South: 29.400, West: 121.200, East: 123.400}
	const w, h = 500, 430

	x, y := geo.RasterPixel(b.North, b.West, b, w, h)
	assert.Equal(t, 0, x, "northwest corner x")
	assert.Equal(t, 0, y, "northwest corner y")

	x, y = geo.RasterPixel(b.South, b.East, b, w, h)
	assert.Equal(t, w, x, "southeast corner x")
	assert.Equal(t, h, y, "southeast corner y")
}

func TestRasterPixel_MercatorLatitudeIsNonlinear(t *testing.T) {
	// В широкой по широте области середина диапазона широт не должна
	// попадать точно в середину растра: Mercator растягивает север.
	b := domain.Bounds{North: 60.0, South: 0.0, West: 0.0, East: 10.0}
	_, y := geo.RasterPixel(30.0, 5.0, b, 100, 1000)
	assert.NotEqual(t, 500, y)
	assert.Greater(t, y, 500, "mid latitude lands below raster midline")
}

func TestMercatorY_SignAndOrder(t *testing.T) {
	assert.InDelta(t, 0, geo.MercatorY(0), 1e-12)
	assert.Greater(t, geo.MercatorY(45), geo.MercatorY(30))
	assert.InDelta(t, -geo.MercatorY(30), geo.MercatorY(-30), 1e-12)
}
