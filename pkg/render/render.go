// Package render draws layouts as raster previews.
//
// The renderer maps grid units to pixels with the same position calculator
// the engine's callers use, so a preview is an exact picture of what a host
// container would show: margins between units, container padding, and one
// box per item. Static items are drawn in a distinct shade.
package render

import (
	"bytes"
	"image/png"
	"math"

	"github.com/fogleman/gg"

	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/position"
)

// =============================================================================
// Options
// =============================================================================

// Options configures a preview rendering.
type Options struct {
	// Calc supplies the grid-to-pixel geometry. Cols and ContainerWidth are
	// required; RowHeight defaults to 40 when unset.
	Calc position.Calc

	// Rows fixes the drawn grid height in rows. Zero sizes the image to the
	// layout's bottom edge plus one empty row.
	Rows int

	// ShowGrid draws the cell raster behind the items.
	ShowGrid bool

	// Labels draws each item's id centered in its box.
	Labels bool
}

func (o Options) rowHeight() float64 {
	if o.Calc.RowHeight <= 0 {
		return 40
	}
	return o.Calc.RowHeight
}

func (o Options) rows(l grid.Layout) int {
	if o.Rows > 0 {
		return o.Rows
	}
	return l.Bottom() + 1
}

// =============================================================================
// PNG
// =============================================================================

// Item fill, item border, static fill, grid line, background.
var (
	colorItem   = [3]float64{0.35, 0.55, 0.86}
	colorBorder = [3]float64{0.20, 0.33, 0.55}
	colorStatic = [3]float64{0.55, 0.55, 0.58}
	colorRaster = [3]float64{0.88, 0.89, 0.91}
	colorBack   = [3]float64{0.97, 0.97, 0.98}
)

// PNG renders the layout as a PNG image.
func PNG(l grid.Layout, opts Options) ([]byte, error) {
	calc := opts.Calc
	calc.RowHeight = opts.rowHeight()
	rows := opts.rows(l)

	width := int(math.Ceil(calc.ContainerWidth))
	height := int(math.Ceil(float64(rows)*(calc.RowHeight+calc.MarginY) - calc.MarginY))
	if height < 1 {
		height = 1
	}

	dc := gg.NewContext(width, height)
	dc.SetRGB(colorBack[0], colorBack[1], colorBack[2])
	dc.Clear()

	if opts.ShowGrid {
		drawRaster(dc, calc, rows)
	}

	for _, it := range l {
		r := calc.ToPixels(it.X, it.Y, it.W, it.H)
		fill := colorItem
		if it.Static {
			fill = colorStatic
		}

		dc.DrawRoundedRectangle(r.Left+calc.PaddingX, r.Top, r.Width, r.Height, 4)
		dc.SetRGB(fill[0], fill[1], fill[2])
		dc.FillPreserve()
		dc.SetRGB(colorBorder[0], colorBorder[1], colorBorder[2])
		dc.SetLineWidth(1.5)
		dc.Stroke()

		if opts.Labels {
			dc.SetRGB(1, 1, 1)
			dc.DrawStringAnchored(it.ID, r.Left+calc.PaddingX+r.Width/2, r.Top+r.Height/2, 0.5, 0.5)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawRaster draws the empty cell grid behind the items.
func drawRaster(dc *gg.Context, calc position.Calc, rows int) {
	dc.SetRGB(colorRaster[0], colorRaster[1], colorRaster[2])
	for y := 0; y < rows; y++ {
		for x := 0; x < calc.Cols; x++ {
			r := calc.ToPixels(x, y, 1, 1)
			dc.DrawRectangle(r.Left+calc.PaddingX, r.Top, r.Width, r.Height)
		}
	}
	dc.SetLineWidth(1)
	dc.Stroke()
}
