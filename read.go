package dds

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

// Texture is a fully decoded DDS file: the parsed header, the
// classified format and one RGBA image per mip level, largest first.
// The value is immutable after construction and owned by the caller.
type Texture struct {
	Header Header
	Format Format
	Layers []*image.NRGBA
}

// DecodeTexture decodes a DDS stream into the full mip chain. The
// result is all-or-nothing: any malformed header, unsupported format or
// short read discards the partially decoded levels.
func DecodeTexture(r io.Reader) (*Texture, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	format, err := ClassifyFormat(&header.PixelFormat)
	if err != nil {
		return nil, err
	}

	layers := make([]*image.NRGBA, 0, header.MipMapCount)
	for level := 0; level < int(header.MipMapCount); level++ {
		width := mipDimension(int(header.Width), level)
		height := mipDimension(int(header.Height), level)

		layer, err := decodeLayer(r, format, &header.PixelFormat, width, height, level)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}

	return &Texture{Header: *header, Format: format, Layers: layers}, nil
}

// decodeLayer reads one mip level worth of bytes from the cursor and
// decodes them with the decoder matching format.
func decodeLayer(r io.Reader, format Format, pf *RawPixelFormat, width, height, level int) (*image.NRGBA, error) {
	length := layerByteLength(format, pf, width, height)
	data := make([]byte, length)
	if n, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: mipmap %d: expected %d bytes, got %d", ErrTruncatedData, level, length, n)
	}

	return decodeLayerData(data, format, pf, width, height), nil
}

func decodeLayerData(data []byte, format Format, pf *RawPixelFormat, width, height int) *image.NRGBA {
	if format == FormatUncompressed {
		return decodeLayerUncompressed(data, width, height, pf)
	}

	return decodeLayerDXT(data, width, height, format)
}

// Decode decodes the largest mip level of a DDS stream. It satisfies
// the image.Decode registration contract.
func Decode(r io.Reader) (image.Image, error) {
	texture, err := DecodeTexture(r)
	if err != nil {
		return nil, err
	}

	return texture.Layers[0], nil
}

// DecodeConfig reads DDS image metadata without decoding pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	if _, err := ClassifyFormat(&header.PixelFormat); err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}
