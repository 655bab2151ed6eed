package raster

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Upscale масштабирует растр в factor раз бикубическим фильтром
// (Catmull-Rom). Затратно по CPU, но повышает точность попиксельной
// классификации на мелких исходных тайлах. factor <= 1 возвращает src.
func Upscale(src *image.RGBA, factor float64) *image.RGBA {
	if factor <= 1.0 {
		return src
	}
	w := int(float64(src.Rect.Dx()) * factor)
	h := int(float64(src.Rect.Dy()) * factor)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Rect, src, src.Rect, xdraw.Src, nil)
	return dst
}

// Crop возвращает копию прямоугольника r растра src в собственной памяти
// (исходная мозаика после обрезки не удерживается).
func Crop(src *image.RGBA, r image.Rectangle) *image.RGBA {
	r = r.Intersect(src.Rect)
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	xdraw.Copy(dst, image.Point{}, src, r, xdraw.Src, nil)
	return dst
}
