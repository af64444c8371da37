package surface

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/sldview/internal/view"
)

// Raster is a layer holding a transformed raster image.
type Raster struct {
	img *image.RGBA
}

// NewRaster creates an empty width x height raster layer.
func NewRaster(width, height int) *Raster {
	return &Raster{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Image implements Source.
func (r *Raster) Image() image.Image { return r.img }

// Clear makes the layer transparent.
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// Draw paints src under the view transform with nearest-neighbour
// sampling so image pixels stay sharp when zoomed in.
func (r *Raster) Draw(src image.Image, t view.Transform) {
	if src == nil {
		return
	}
	m := f64.Aff3{
		t.Scale, 0, t.OffsetX,
		0, t.Scale, t.OffsetY,
	}
	xdraw.NearestNeighbor.Transform(r.img, m, src, src.Bounds(), xdraw.Over, nil)
}

// Resize reallocates the layer.
func (r *Raster) Resize(width, height int) {
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
}
