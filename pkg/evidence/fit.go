package evidence

import "math"

// Box is the maximum area an evidence image may occupy, in pixels.
type Box struct {
	Width  float64
	Height float64
}

// DefaultBox is the evidence bounding box used when none is configured.
var DefaultBox = Box{Width: 600, Height: 450}

// Dimensions are fitted image sizes before rounding.
type Dimensions struct {
	Width  float64
	Height float64
}

// Rounded returns the dimensions rounded to whole pixels.
func (d Dimensions) Rounded() (int, int) {
	return int(math.Round(d.Width)), int(math.Round(d.Height))
}

// Fit scales width first and then height so the result fits the box. The
// height pass sees the already scaled height, so both passes may apply.
// Images already inside the box are returned unchanged.
func Fit(width, height int, box Box) Dimensions {
	w, h := float64(width), float64(height)
	if w > box.Width {
		ratio := box.Width / w
		w = box.Width
		h *= ratio
	}
	if h > box.Height {
		ratio := box.Height / h
		h = box.Height
		w *= ratio
	}
	return Dimensions{Width: w, Height: h}
}
