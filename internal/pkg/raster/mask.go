package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// ApplyMask возвращает копию img, в которой пиксели вне маски (mask == 0)
// закрашены чёрным. Размеры img и mask обязаны совпадать.
func ApplyMask(img *image.RGBA, mask *image.Gray) *image.RGBA {
	dst := image.NewRGBA(img.Rect)
	draw.Draw(dst, dst.Rect, img, img.Rect.Min, draw.Src)
	for y := dst.Rect.Min.Y; y < dst.Rect.Max.Y; y++ {
		for x := dst.Rect.Min.X; x < dst.Rect.Max.X; x++ {
			if mask.Pix[mask.PixOffset(x-dst.Rect.Min.X+mask.Rect.Min.X, y-dst.Rect.Min.Y+mask.Rect.Min.Y)] == 0 {
				i := dst.PixOffset(x, y)
				dst.Pix[i] = 0
				dst.Pix[i+1] = 0
				dst.Pix[i+2] = 0
				dst.Pix[i+3] = 255
			}
		}
	}
	return dst
}

// AllBlack сообщает, являются ли все пиксели img под маской чёрными
// (признак "нет данных": источник отдал пустой снимок).
func AllBlack(img *image.RGBA, mask *image.Gray) bool {
	for y := 0; y < img.Rect.Dy(); y++ {
		for x := 0; x < img.Rect.Dx(); x++ {
			if mask.Pix[mask.PixOffset(mask.Rect.Min.X+x, mask.Rect.Min.Y+y)] == 0 {
				continue
			}
			i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
			if img.Pix[i] != 0 || img.Pix[i+1] != 0 || img.Pix[i+2] != 0 {
				return false
			}
		}
	}
	return true
}

// BlackTile возвращает непрозрачный чёрный тайл-заглушку заданного размера.
func BlackTile(size int) *image.RGBA {
	tile := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(tile, tile.Rect, image.NewUniform(color.RGBA{A: 255}), image.Point{}, draw.Src)
	return tile
}
