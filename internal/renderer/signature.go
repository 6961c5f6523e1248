package renderer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"
)

const (
	signatureHeight   = 20 // mm on the page; width follows the aspect ratio
	maxSignatureWidth = 1200
)

// decodeSignature unwraps the data-URI/base64 envelope and decodes the
// signature image. Signature canvases export transparent PNGs, so the pixels
// are flattened onto white before the image is embedded.
func decodeSignature(dataURI string) (image.Image, error) {
	payload := dataURI
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if img.Bounds().Dx() > maxSignatureWidth {
		img = imaging.Resize(img, maxSignatureWidth, 0, imaging.Lanczos)
	}

	return flattenOnWhite(img), nil
}

func flattenOnWhite(img image.Image) image.Image {
	b := img.Bounds()
	ctx := gg.NewContext(b.Dx(), b.Dy())
	ctx.SetColor(color.White)
	ctx.Clear()
	ctx.DrawImage(img, -b.Min.X, -b.Min.Y)
	return ctx.Image()
}

// embedSignature places the decoded signature at the current cursor, fixed
// height and natural aspect width, advancing the cursor past it.
func embedSignature(pdf *gofpdf.Fpdf, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%w: signature encode: %v", ErrRender, err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("signature", opts, &buf)
	pdf.ImageOptions("signature", pdf.GetX(), 0, 0, signatureHeight, true, opts, 0, "")

	if pdf.Err() {
		return fmt.Errorf("%w: signature: %v", ErrRender, pdf.Error())
	}
	return nil
}
