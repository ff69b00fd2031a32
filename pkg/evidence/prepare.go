package evidence

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// native maps the decoder names of image.DecodeConfig to the formats the
// renderers embed without conversion.
var native = map[string]string{
	"png":  FormatPNG,
	"jpeg": FormatJPG,
	"gif":  FormatGIF,
}

// Prepared is an evidence image ready to embed.
type Prepared struct {
	Data   []byte
	Format string
	// Width and Height are the pixel dimensions of Data.
	Width  int
	Height int
	Fitted Dimensions
}

// Prepare inspects the payload and fits it into box. Images whose normalized
// format does not match their actual encoding, or whose encoding the renderers
// cannot embed, are re-encoded as PNG after EXIF orientation is applied.
func Prepare(p *Payload, box Box) (*Prepared, error) {
	if p == nil || len(p.Data) == 0 {
		return nil, fmt.Errorf("evidence payload is empty")
	}

	cfg, kind, err := image.DecodeConfig(bytes.NewReader(p.Data))
	if err != nil {
		return nil, fmt.Errorf("inspect evidence image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("evidence image has invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	if format, ok := native[kind]; ok && format == p.Format && !wideChannels(cfg.ColorModel) {
		return &Prepared{
			Data:   p.Data,
			Format: format,
			Width:  cfg.Width,
			Height: cfg.Height,
			Fitted: Fit(cfg.Width, cfg.Height, box),
		}, nil
	}

	return transcode(p.Data, box)
}

func transcode(data []byte, box Box) (*Prepared, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode evidence image: %w", err)
	}
	// NRGBA keeps the PNG encoder at 8 bits per channel; the PDF renderer
	// cannot read 16-bit PNGs.
	img = imaging.Clone(img)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode evidence image: %w", err)
	}
	bounds := img.Bounds()
	return &Prepared{
		Data:   buf.Bytes(),
		Format: FormatPNG,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Fitted: Fit(bounds.Dx(), bounds.Dy(), box),
	}, nil
}

// wideChannels reports whether the color model stores 16 bits per channel.
func wideChannels(m color.Model) bool {
	switch m {
	case color.RGBA64Model, color.NRGBA64Model, color.Gray16Model:
		return true
	default:
		return false
	}
}
