package dds

import "fmt"

// Format is the closed set of pixel layouts the decoders handle.
//
// DXT2 classifies as FormatDXT3 and DXT4 as FormatDXT5: premultiplied
// vs. explicit alpha is a semantic distinction between those pairs, not
// a decode-time one. No un-premultiply pass is applied.
type Format int

const (
	// FormatUnknown is an unrecognized pixel format.
	FormatUnknown Format = iota
	// FormatUncompressed is a packed format described by channel bit masks.
	FormatUncompressed
	// FormatDXT1 is BC1: 8-byte color blocks with optional 1-bit alpha.
	FormatDXT1
	// FormatDXT3 is BC2 (four-cc DXT2 or DXT3): explicit 4-bit alpha.
	FormatDXT3
	// FormatDXT5 is BC3 (four-cc DXT4 or DXT5): interpolated alpha.
	FormatDXT5
)

func (f Format) String() string {
	switch f {
	case FormatUncompressed:
		return "uncompressed"
	case FormatDXT1:
		return "DXT1"
	case FormatDXT3:
		return "DXT2/3"
	case FormatDXT5:
		return "DXT4/5"
	default:
		return "unknown"
	}
}

// blockBytes returns the compressed block size, 0 for uncompressed formats.
func (f Format) blockBytes() int {
	switch f {
	case FormatDXT1:
		return 8
	case FormatDXT3, FormatDXT5:
		return 16
	default:
		return 0
	}
}

// ClassifyFormat maps a raw pixel format onto the closed Format set.
// Unrecognized four-cc codes or flag combinations fail with
// ErrUnsupportedFormat naming the offender.
func ClassifyFormat(pf *RawPixelFormat) (Format, error) {
	if (pf.Flags & PFFourCC) != 0 {
		fourCC := string(pf.FourCC[:])
		switch fourCC {
		case "DXT1":
			return FormatDXT1, nil
		case "DXT2", "DXT3":
			return FormatDXT3, nil
		case "DXT4", "DXT5":
			return FormatDXT5, nil
		default:
			return FormatUnknown, fmt.Errorf("%w: four-cc %q", ErrUnsupportedFormat, fourCC)
		}
	}

	if (pf.Flags & (PFRGB | PFLuminance | PFAlpha)) != 0 {
		switch pf.RGBBitCount {
		case 8, 16, 24, 32:
		default:
			return FormatUnknown, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, pf.RGBBitCount)
		}
		if overlappingMasks(pf) {
			return FormatUnknown, fmt.Errorf("%w: overlapping channel masks %#08x/%#08x/%#08x/%#08x",
				ErrUnsupportedFormat, pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask)
		}
		return FormatUncompressed, nil
	}

	return FormatUnknown, fmt.Errorf("%w: pixel format flags %#x", ErrUnsupportedFormat, pf.Flags)
}

func overlappingMasks(pf *RawPixelFormat) bool {
	var seen uint32
	for _, mask := range [4]uint32{pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask} {
		if seen&mask != 0 {
			return true
		}
		seen |= mask
	}
	return false
}

// rowStride is the byte length of one uncompressed pixel row, rounded up
// to a whole byte.
func rowStride(width int, bitCount uint32) int {
	return (width*int(bitCount) + 7) / 8
}

// layerByteLength computes the stored byte length of one mip level:
// block count times block size for compressed formats, row stride times
// height for uncompressed ones.
func layerByteLength(format Format, pf *RawPixelFormat, width, height int) int {
	if blockSize := format.blockBytes(); blockSize != 0 {
		blocksW := (width + 3) / 4
		blocksH := (height + 3) / 4
		return blocksW * blocksH * blockSize
	}

	return rowStride(width, pf.RGBBitCount) * height
}
