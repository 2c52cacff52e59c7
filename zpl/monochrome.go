package zpl

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

// Monochrome готовит фото или логотип к печати: уменьшает изображение до
// maxWidth точек с сохранением пропорций, переводит в оттенки серого и
// дизерит методом Флойда-Стейнберга. Результат можно передать в FromImage
// с любым порогом от 1 до 255.
//
// При maxWidth <= 0 масштабирование не выполняется.
func Monochrome(img image.Image, maxWidth int) *image.Paletted {
	src := img.Bounds()
	width, height := src.Dx(), src.Dy()
	if maxWidth > 0 && width > maxWidth {
		height = max(height*maxWidth/width, 1)
		width = maxWidth
	}
	bounds := image.Rect(0, 0, width, height)

	scaled := image.NewRGBA(bounds)
	draw.Draw(scaled, bounds, image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(scaled, bounds, img, src, draw.Over, nil)

	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, scaled, image.Point{}, draw.Src)

	ditherer := dither.NewDitherer([]color.Color{color.Black, color.White})
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true

	return ditherer.DitherPaletted(gray)
}
