package dds

import (
	"encoding/binary"
	"image"
)

// decodeLayerDXT decompresses one mip level of 4x4 blocks, left to
// right, top to bottom, into an RGBA image. Trailing blocks of images
// whose dimensions are not multiples of 4 are decoded in full but only
// in-bounds texels are written.
func decodeLayerDXT(data []byte, width, height int, format Format) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	blockSize := format.blockBytes()
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4

	var texels [16][4]uint8
	for blockY := 0; blockY < blocksH; blockY++ {
		for blockX := 0; blockX < blocksW; blockX++ {
			block := data[(blockY*blocksW+blockX)*blockSize:]
			switch format {
			case FormatDXT1:
				decodeBlockDXT1(block[:8], &texels)
			case FormatDXT3:
				decodeBlockDXT3(block[:16], &texels)
			case FormatDXT5:
				decodeBlockDXT5(block[:16], &texels)
			}
			writeBlockRGBA(img, blockX*4, blockY*4, &texels)
		}
	}

	return img
}

// expand565 widens packed 5-6-5 channels to 8 bits each.
func expand565(c uint16) (r, g, b uint32) {
	r = uint32(c>>11&0x1f) * 255 / 31
	g = uint32(c>>5&0x3f) * 255 / 63
	b = uint32(c&0x1f) * 255 / 31
	return r, g, b
}

// colorPalette builds the 4-entry palette of a color block. With
// oneBitAlpha (DXT1) and c0 <= c1 the palette holds 3 colors: c0, c1,
// their midpoint, and transparent black in slot 3. Otherwise slots 2
// and 3 hold the 1/3 and 2/3 interpolants between c0 and c1.
func colorPalette(block []byte, oneBitAlpha bool) [4][4]uint8 {
	c0 := binary.LittleEndian.Uint16(block[0:2])
	c1 := binary.LittleEndian.Uint16(block[2:4])
	r0, g0, b0 := expand565(c0)
	r1, g1, b1 := expand565(c1)

	var pal [4][4]uint8
	pal[0] = [4]uint8{uint8(r0), uint8(g0), uint8(b0), 255}
	pal[1] = [4]uint8{uint8(r1), uint8(g1), uint8(b1), 255}

	if oneBitAlpha && c0 <= c1 {
		pal[2] = [4]uint8{uint8((r0 + r1) / 2), uint8((g0 + g1) / 2), uint8((b0 + b1) / 2), 255}
		pal[3] = [4]uint8{0, 0, 0, 0}
		return pal
	}

	pal[2] = [4]uint8{uint8((2*r0 + r1) / 3), uint8((2*g0 + g1) / 3), uint8((2*b0 + b1) / 3), 255}
	pal[3] = [4]uint8{uint8((r0 + 2*r1) / 3), uint8((g0 + 2*g1) / 3), uint8((b0 + 2*b1) / 3), 255}
	return pal
}

// applyColorIndices fills the 16 texels from the row-major 2-bit index
// word at block[4:8], low bits first.
func applyColorIndices(block []byte, pal *[4][4]uint8, texels *[16][4]uint8) {
	indices := binary.LittleEndian.Uint32(block[4:8])
	for i := 0; i < 16; i++ {
		texels[i] = pal[indices>>(2*uint(i))&0x3]
	}
}

func decodeBlockDXT1(block []byte, texels *[16][4]uint8) {
	pal := colorPalette(block, true)
	applyColorIndices(block, &pal, texels)
}

func decodeBlockDXT3(block []byte, texels *[16][4]uint8) {
	pal := colorPalette(block[8:], false)
	applyColorIndices(block[8:], &pal, texels)

	// 16 explicit alpha nibbles, low nibble first, expanded to full range.
	for i := 0; i < 16; i++ {
		texels[i][3] = (block[i/2] >> (4 * uint(i&1)) & 0xf) * 17
	}
}

func decodeBlockDXT5(block []byte, texels *[16][4]uint8) {
	pal := colorPalette(block[8:], false)
	applyColorIndices(block[8:], &pal, texels)

	table := alphaTable(block[0], block[1])
	indices := uint64(binary.LittleEndian.Uint32(block[2:6])) |
		uint64(binary.LittleEndian.Uint16(block[6:8]))<<32
	for i := 0; i < 16; i++ {
		texels[i][3] = table[indices>>(3*uint(i))&0x7]
	}
}

// alphaTable builds the 8-entry DXT4/5 alpha gradient: 8 interpolated
// steps when a0 > a1, otherwise 6 steps plus literal 0 and 255.
func alphaTable(a0, a1 uint8) [8]uint8 {
	table := [8]uint8{a0, a1}
	w0, w1 := uint32(a0), uint32(a1)

	if a0 > a1 {
		for i := uint32(1); i <= 6; i++ {
			table[i+1] = uint8(((7-i)*w0 + i*w1) / 7)
		}
		return table
	}

	for i := uint32(1); i <= 4; i++ {
		table[i+1] = uint8(((5-i)*w0 + i*w1) / 5)
	}
	table[6] = 0
	table[7] = 255
	return table
}

// writeBlockRGBA copies a decoded 4x4 block into the destination raster
// at (x0, y0), clamping to the image bounds.
func writeBlockRGBA(img *image.NRGBA, x0, y0 int, texels *[16][4]uint8) {
	for texelY := 0; texelY < 4; texelY++ {
		y := y0 + texelY
		if y >= img.Rect.Max.Y {
			break
		}
		for texelX := 0; texelX < 4; texelX++ {
			x := x0 + texelX
			if x >= img.Rect.Max.X {
				break
			}
			offset := img.PixOffset(x, y)
			copy(img.Pix[offset:offset+4], texels[texelY*4+texelX][:])
		}
	}
}
