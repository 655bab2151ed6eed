// Package raster содержит растровые примитивы конвейера: заливку полигонов
// в маску, цветовые преобразования, выравнивание контраста и масштабирование.
package raster

import (
	"image"
	"sort"
)

// FillPolygon закрашивает полигон pts значением value в одноканальном
// растре dst (scanline-заливка по правилу чётности). Заливка идемпотентна:
// повторная закраска того же контура ничего не меняет, поэтому порядок
// колец не важен.
func FillPolygon(dst *image.Gray, pts []image.Point, value uint8) {
	if len(pts) < 3 {
		return
	}

	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minY < dst.Rect.Min.Y {
		minY = dst.Rect.Min.Y
	}
	if maxY >= dst.Rect.Max.Y {
		maxY = dst.Rect.Max.Y - 1
	}

	xs := make([]float64, 0, 8)
	for y := minY; y <= maxY; y++ {
		// Пересечения рёбер с горизонталью через центр строки.
		scan := float64(y) + 0.5
		xs = xs[:0]
		j := len(pts) - 1
		for i := 0; i < len(pts); i++ {
			a, b := pts[i], pts[j]
			ay, by := float64(a.Y), float64(b.Y)
			if (ay <= scan) != (by <= scan) {
				t := (scan - ay) / (by - ay)
				xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
			}
			j = i
		}
		sort.Float64s(xs)

		for k := 0; k+1 < len(xs); k += 2 {
			x0 := int(xs[k] + 0.5)
			x1 := int(xs[k+1] + 0.5)
			if x0 < dst.Rect.Min.X {
				x0 = dst.Rect.Min.X
			}
			if x1 > dst.Rect.Max.X {
				x1 = dst.Rect.Max.X
			}
			for x := x0; x < x1; x++ {
				dst.Pix[dst.PixOffset(x, y)] = value
			}
		}
	}
}
