package dds

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// HeaderSize is the fixed size of the DDS header after the magic tag.
	HeaderSize = 124
	// PixelFormatSize is the fixed size of the embedded pixel format block.
	PixelFormatSize = 32
)

// Magic is the 4-byte tag every DDS file starts with.
const Magic = "DDS "

// DDS header flags.
const (
	FlagCaps        = 0x1
	FlagHeight      = 0x2
	FlagWidth       = 0x4
	FlagPitch       = 0x8
	FlagPixelFormat = 0x1000
	FlagMipMapCount = 0x20000
	FlagLinearSize  = 0x80000
	FlagDepth       = 0x800000
)

// Pixel format flags.
const (
	PFAlphaPixels = 0x1
	PFAlpha       = 0x2
	PFFourCC      = 0x4
	PFRGB         = 0x40
	PFYUV         = 0x200
	PFLuminance   = 0x20000
)

// Caps flags.
const (
	CapsComplex = 0x8
	CapsTexture = 0x1000
	CapsMipmap  = 0x400000
)

// RawPixelFormat mirrors the 32-byte DDS_PIXELFORMAT structure.
type RawPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      [4]byte
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// RawHeader mirrors the 124-byte DDS_HEADER structure that follows the
// magic tag, little-endian throughout.
type RawHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       RawPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// Header is the validated view of a DDS header with defaults applied.
type Header struct {
	// Width and Height of the level 0 image.
	Width  uint32
	Height uint32
	// Depth of a volume texture, 1 when the depth flag is unset.
	Depth uint32
	// MipMapCount is at least 1 even when the header declares none.
	MipMapCount uint32
	// FourCC is the four-character code, empty for uncompressed files.
	FourCC string
	// PixelFormat is the raw embedded pixel format block.
	PixelFormat RawPixelFormat
}

// ReadRawHeader reads the magic tag and the raw header from r, advancing
// it exactly past the 128 header bytes. The magic tag, the declared
// struct sizes and the image dimensions are validated; the pixel format
// content is left for ClassifyFormat.
func ReadRawHeader(r io.Reader) (*RawHeader, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: reading magic: %v", ErrMalformedHeader, err)
	}
	if string(magic[:]) != Magic {
		return nil, fmt.Errorf("%w: expected magic %q, got %q", ErrMalformedHeader, Magic, magic)
	}

	raw := new(RawHeader)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrMalformedHeader, err)
	}

	if raw.Size != HeaderSize {
		return nil, fmt.Errorf("%w: header size %d, expected %d", ErrMalformedHeader, raw.Size, HeaderSize)
	}
	if raw.PixelFormat.Size != PixelFormatSize {
		return nil, fmt.Errorf("%w: pixel format size %d, expected %d", ErrMalformedHeader, raw.PixelFormat.Size, PixelFormatSize)
	}
	if raw.Width == 0 || raw.Height == 0 {
		return nil, fmt.Errorf("%w: zero dimensions %dx%d", ErrMalformedHeader, raw.Width, raw.Height)
	}

	return raw, nil
}

// ReadHeader reads and validates a DDS header and applies the flag-driven
// defaults for mipmap count and depth.
func ReadHeader(r io.Reader) (*Header, error) {
	raw, err := ReadRawHeader(r)
	if err != nil {
		return nil, err
	}

	header := &Header{
		Width:       raw.Width,
		Height:      raw.Height,
		Depth:       1,
		MipMapCount: 1,
		PixelFormat: raw.PixelFormat,
	}

	if (raw.Flags&FlagMipMapCount) != 0 && raw.MipMapCount > 0 {
		header.MipMapCount = raw.MipMapCount
	}
	if (raw.Flags&FlagDepth) != 0 && raw.Depth > 0 {
		header.Depth = raw.Depth
	}
	if (raw.PixelFormat.Flags & PFFourCC) != 0 {
		header.FourCC = string(raw.PixelFormat.FourCC[:])
	}

	return header, nil
}
