// Package evidence turns inline evidence photos into renderer-ready images.
package evidence

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	appErrors "github.com/noah-isme/teacher-evaluation-api/pkg/errors"
)

// Formats the document renderers embed natively.
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatGIF = "gif"
)

// coerced subtypes are relabelled as png before rendering.
var coerced = map[string]struct{}{
	"jpeg": {},
	"webp": {},
}

// Payload is a decoded evidence image.
type Payload struct {
	// Subtype is the media subtype declared by the data URL (or sniffed when absent).
	Subtype string
	// Format is the subtype after normalization.
	Format string
	Data   []byte
}

// Decode strips an optional "data:image/<subtype>;base64," prefix and decodes
// the remaining body. An empty input means no evidence is attached and yields
// (nil, nil). Malformed payloads return a DECODE_ERROR.
func Decode(raw string) (*Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	header, body := "", raw
	if idx := strings.Index(raw, ","); idx >= 0 {
		header, body = raw[:idx], raw[idx+1:]
	}

	data, err := decodeBase64(body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrDecode.Code, appErrors.ErrDecode.Status, appErrors.ErrDecode.Message)
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrDecode, "evidence image payload is empty")
	}

	subtype := declaredSubtype(header)
	if subtype == "" {
		subtype = sniffSubtype(data)
	}
	return &Payload{Subtype: subtype, Format: NormalizeFormat(subtype), Data: data}, nil
}

// NormalizeFormat maps subtypes the renderers do not label directly to png.
// Any other subtype is returned unchanged.
func NormalizeFormat(subtype string) string {
	subtype = strings.ToLower(strings.TrimSpace(subtype))
	if _, ok := coerced[subtype]; ok {
		return FormatPNG
	}
	return subtype
}

func declaredSubtype(header string) string {
	mediaType := strings.SplitN(header, ";", 2)[0]
	mediaType = strings.TrimPrefix(strings.TrimSpace(mediaType), "data:")
	_, subtype, ok := strings.Cut(mediaType, "/")
	if !ok {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(subtype))
}

func sniffSubtype(data []byte) string {
	detected := mimetype.Detect(data).String()
	if !strings.HasPrefix(detected, "image/") {
		return ""
	}
	return strings.TrimPrefix(detected, "image/")
}

// decodeBase64 accepts padded and unpadded bodies with embedded line breaks.
func decodeBase64(body string) ([]byte, error) {
	body = strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', ' ':
			return -1
		}
		return r
	}, body)
	if strings.HasSuffix(body, "=") || len(body)%4 == 0 {
		return base64.StdEncoding.DecodeString(body)
	}
	return base64.RawStdEncoding.DecodeString(body)
}
