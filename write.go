package dds

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"io"
)

// EncodeUncompressed writes img as a single-level uncompressed 32-bit
// RGBA DDS (byte order R, G, B, A). It exists as the illustrative
// counterpart to Decode; compressed encoding and mip chain generation
// are out of scope.
func EncodeUncompressed(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	width, err := u32FromInt(bounds.Dx())
	if err != nil {
		return err
	}
	height, err := u32FromInt(bounds.Dy())
	if err != nil {
		return err
	}

	header := &RawHeader{
		Size:              HeaderSize,
		Flags:             FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat | FlagPitch,
		Height:            height,
		Width:             width,
		PitchOrLinearSize: width * 4,
		Caps:              CapsTexture,
		PixelFormat: RawPixelFormat{
			Size:        PixelFormatSize,
			Flags:       PFRGB | PFAlphaPixels,
			RGBBitCount: 32,
			RBitMask:    0x000000ff,
			GBitMask:    0x0000ff00,
			BBitMask:    0x00ff0000,
			ABitMask:    0xff000000,
		},
	}

	if _, err := io.WriteString(w, Magic); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHeader, err)
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) || nrgba.Stride != bounds.Dx()*4 {
		converted := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(converted, converted.Bounds(), img, bounds.Min, draw.Src)
		nrgba = converted
	}

	if _, err := w.Write(nrgba.Pix); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePixels, err)
	}

	return nil
}
