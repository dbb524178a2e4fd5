package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	_ "golang.org/x/image/webp" // registers webp with image.Decode
)

// Format identifies a supported image container.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWEBP Format = "webp"
)

// SchemeKey is the metadata field duplicated into its own PNG text chunk so
// the convention in use can be inspected without parsing the full JSON.
const SchemeKey = "metadata_scheme"

const (
	// ParametersChunk carries the JSON-serialized metadata mapping.
	ParametersChunk = "parameters"
	// SchemeChunk carries the bare metadata scheme tag.
	SchemeChunk = "fooocus_scheme"
)

const (
	jpegQuality = 75
	webpQuality = 80
)

// NormalizeFormat maps an extension to a supported format, falling back to
// PNG for anything it does not recognize.
func NormalizeFormat(extension string) Format {
	switch Format(extension) {
	case FormatPNG, FormatJPEG, FormatWEBP:
		return Format(extension)
	default:
		return FormatPNG
	}
}

// Encode writes img to w in the given format. A non-empty meta mapping is
// embedded into PNG output as two tEXt chunks; JPEG and WEBP containers
// cannot carry the chunks, so meta is ignored for them.
func Encode(w io.Writer, img image.Image, format Format, meta map[string]any) error {
	switch format {
	case FormatJPEG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case FormatWEBP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, webpQuality)
		if err != nil {
			return fmt.Errorf("webp encoder options: %w", err)
		}
		return webp.Encode(w, img, opts)
	default:
		return encodePNG(w, img, meta)
	}
}

func encodePNG(w io.Writer, img image.Image, meta map[string]any) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return err
	}
	data := buf.Bytes()

	if len(meta) > 0 {
		scheme, ok := meta[SchemeKey].(string)
		if !ok {
			return fmt.Errorf("image metadata: %q must be present and a string", SchemeKey)
		}
		params, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("serialize image metadata: %w", err)
		}
		if data, err = embedText(data, ParametersChunk, string(params)); err != nil {
			return err
		}
		if data, err = embedText(data, SchemeChunk, scheme); err != nil {
			return err
		}
	}

	_, err := w.Write(data)
	return err
}

// Decode reads an image in any registered format (png, jpeg, webp).
func Decode(r io.Reader) (image.Image, error) {
	return imaging.Decode(r)
}
