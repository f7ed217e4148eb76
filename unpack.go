package dds

import (
	"image"
	"math/bits"
)

// decodeLayerUncompressed reinterprets packed row-major pixel bytes as
// RGBA8 according to the channel bit masks of pf. A zero alpha mask
// yields fully opaque output; luminance formats replicate the single
// channel into R, G and B.
func decodeLayerUncompressed(data []byte, width, height int, pf *RawPixelFormat) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	stride := rowStride(width, pf.RGBBitCount)
	bytesPerPixel := int(pf.RGBBitCount) / 8
	luminance := (pf.Flags & PFLuminance) != 0

	for y := 0; y < height; y++ {
		row := data[y*stride:]
		for x := 0; x < width; x++ {
			var packed uint32
			for i := 0; i < bytesPerPixel; i++ {
				packed |= uint32(row[x*bytesPerPixel+i]) << (8 * uint(i))
			}

			r := maskedChannel(packed, pf.RBitMask)
			g := maskedChannel(packed, pf.GBitMask)
			b := maskedChannel(packed, pf.BBitMask)
			if luminance {
				g, b = r, r
			}
			a := uint8(255)
			if pf.ABitMask != 0 {
				a = maskedChannel(packed, pf.ABitMask)
			}

			offset := img.PixOffset(x, y)
			img.Pix[offset+0] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = b
			img.Pix[offset+3] = a
		}
	}

	return img
}

// maskedChannel extracts the channel selected by mask and normalizes it
// to 8 bits, scaling when the mask is narrower or wider than 8 bits.
func maskedChannel(packed, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}

	value := uint64((packed & mask) >> uint(bits.TrailingZeros32(mask)))
	maskWidth := uint(bits.OnesCount32(mask))
	if maskWidth == 8 {
		return uint8(value)
	}

	return uint8(value * 255 / (uint64(1)<<maskWidth - 1))
}
