package dds

import (
	"encoding/binary"
	"testing"
)

// dxt1Block packs two 565 endpoints and a 2-bit index word.
func dxt1Block(c0, c1 uint16, indices uint32) []byte {
	block := make([]byte, 8)
	binary.LittleEndian.PutUint16(block[0:2], c0)
	binary.LittleEndian.PutUint16(block[2:4], c1)
	binary.LittleEndian.PutUint32(block[4:8], indices)

	return block
}

// uniformIndices repeats one 2-bit index for all 16 texels.
func uniformIndices(index uint32) uint32 {
	var indices uint32
	for i := uint(0); i < 16; i++ {
		indices |= index << (2 * i)
	}

	return indices
}

// uniformAlphaIndices repeats one 3-bit alpha index for all 16 texels.
func uniformAlphaIndices(index uint64) [6]byte {
	var field uint64
	for i := uint(0); i < 16; i++ {
		field |= index << (3 * i)
	}

	var packed [6]byte
	for i := range packed {
		packed[i] = byte(field >> (8 * uint(i)))
	}

	return packed
}

const (
	red565  = 0xf800
	blue565 = 0x001f
)

func TestDXT1RedBlueVector(t *testing.T) {
	t.Parallel()

	// c0 pure red, c1 pure blue, every index 0: all texels pure red, opaque.
	var texels [16][4]uint8
	decodeBlockDXT1(dxt1Block(red565, blue565, 0), &texels)

	for i, texel := range texels {
		if texel != [4]uint8{255, 0, 0, 255} {
			t.Fatalf("texel %d = %v, want pure opaque red", i, texel)
		}
	}
}

func TestDXT1FourColorOpaque(t *testing.T) {
	t.Parallel()

	// c0 > c1: four interpolated colors, every texel opaque.
	var texels [16][4]uint8
	decodeBlockDXT1(dxt1Block(red565, blue565, 0xe4e4e4e4), &texels) // rows of 0,1,2,3

	for i, texel := range texels {
		if texel[3] != 255 {
			t.Fatalf("texel %d alpha = %d, want 255", i, texel[3])
		}
	}

	// Index 2 is the 1/3 interpolant, index 3 the 2/3 interpolant.
	if texels[2] != [4]uint8{(2 * 255) / 3, 0, 255 / 3, 255} {
		t.Fatalf("index 2 texel = %v", texels[2])
	}
	if texels[3] != [4]uint8{255 / 3, 0, (2 * 255) / 3, 255} {
		t.Fatalf("index 3 texel = %v", texels[3])
	}
}

func TestDXT1OneBitAlpha(t *testing.T) {
	t.Parallel()

	// c0 <= c1: three colors plus transparent black in slot 3.
	var texels [16][4]uint8
	decodeBlockDXT1(dxt1Block(blue565, red565, 0xe4e4e4e4), &texels)

	for i, texel := range texels {
		if i%4 == 3 {
			if texel != [4]uint8{0, 0, 0, 0} {
				t.Fatalf("texel %d = %v, want transparent black", i, texel)
			}
			continue
		}
		if texel[3] != 255 {
			t.Fatalf("texel %d alpha = %d, want 255", i, texel[3])
		}
	}

	// Slot 2 is the midpoint.
	if texels[2] != [4]uint8{127, 0, 127, 255} {
		t.Fatalf("midpoint texel = %v", texels[2])
	}
}

func TestDXT1EqualEndpointsStillTransparent(t *testing.T) {
	t.Parallel()

	var texels [16][4]uint8
	decodeBlockDXT1(dxt1Block(red565, red565, uniformIndices(3)), &texels)

	for i, texel := range texels {
		if texel != [4]uint8{0, 0, 0, 0} {
			t.Fatalf("texel %d = %v, want transparent black", i, texel)
		}
	}
}

func TestDXT3ExplicitAlpha(t *testing.T) {
	t.Parallel()

	block := make([]byte, 16)
	// Alpha nibbles 0..15, low nibble first: texel i gets alpha i*17.
	for i := 0; i < 8; i++ {
		block[i] = byte(2*i+1)<<4 | byte(2*i)
	}
	binary.LittleEndian.PutUint16(block[8:10], red565)
	binary.LittleEndian.PutUint16(block[10:12], blue565)

	var texels [16][4]uint8
	decodeBlockDXT3(block, &texels)

	for i, texel := range texels {
		if want := uint8(i * 17); texel[3] != want {
			t.Fatalf("texel %d alpha = %d, want %d", i, texel[3], want)
		}
		if texel[0] != 255 || texel[2] != 0 {
			t.Fatalf("texel %d color = %v, want pure red", i, texel)
		}
	}
}

func TestDXT5AlphaEightStep(t *testing.T) {
	t.Parallel()

	const a0, a1 = 200, 100

	table := alphaTable(a0, a1)
	if table[0] != a0 || table[1] != a1 {
		t.Fatalf("endpoints modified: %v", table)
	}

	// Gradient order a0, steps, a1 must be strictly monotonic.
	gradient := []uint8{table[0], table[2], table[3], table[4], table[5], table[6], table[7], table[1]}
	for i := 1; i < len(gradient); i++ {
		if gradient[i] >= gradient[i-1] {
			t.Fatalf("gradient not monotonic at %d: %v", i, gradient)
		}
	}

	for k := uint32(2); k <= 7; k++ {
		want := uint8(((8-k)*a0 + (k-1)*a1) / 7)
		if table[k] != want {
			t.Fatalf("table[%d] = %d, want %d", k, table[k], want)
		}
	}
}

func TestDXT5AlphaSixStep(t *testing.T) {
	t.Parallel()

	const a0, a1 = 50, 250

	table := alphaTable(a0, a1)
	if table[0] != a0 || table[1] != a1 {
		t.Fatalf("endpoints modified: %v", table)
	}
	if table[6] != 0 || table[7] != 255 {
		t.Fatalf("fixed entries wrong: %v", table)
	}

	gradient := []uint8{table[0], table[2], table[3], table[4], table[5], table[1]}
	for i := 1; i < len(gradient); i++ {
		if gradient[i] <= gradient[i-1] {
			t.Fatalf("gradient not monotonic at %d: %v", i, gradient)
		}
	}

	for k := uint32(2); k <= 5; k++ {
		want := uint8(((6-k)*a0 + (k-1)*a1) / 5)
		if table[k] != want {
			t.Fatalf("table[%d] = %d, want %d", k, table[k], want)
		}
	}
}

func TestDXT5BlockAlphaIndices(t *testing.T) {
	t.Parallel()

	for index := uint64(0); index < 8; index++ {
		block := make([]byte, 16)
		block[0], block[1] = 50, 250
		packed := uniformAlphaIndices(index)
		copy(block[2:8], packed[:])
		binary.LittleEndian.PutUint16(block[8:10], red565)
		binary.LittleEndian.PutUint16(block[10:12], blue565)

		var texels [16][4]uint8
		decodeBlockDXT5(block, &texels)

		want := alphaTable(50, 250)[index]
		for i, texel := range texels {
			if texel[3] != want {
				t.Fatalf("index %d texel %d alpha = %d, want %d", index, i, texel[3], want)
			}
		}
	}
}

func TestDecodeLayerPartialBlocks(t *testing.T) {
	t.Parallel()

	// 2x3 image stored as one full 4x4 block: only in-bounds texels are
	// written and the raster stays 2x3.
	img := decodeLayerDXT(dxt1Block(red565, blue565, 0), 2, 3, FormatDXT1)

	bounds := img.Bounds()
	if bounds.Dx() != 2 || bounds.Dy() != 3 {
		t.Fatalf("unexpected bounds %v", bounds)
	}
	if len(img.Pix) != 2*3*4 {
		t.Fatalf("unexpected raster size %d", len(img.Pix))
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 2; x++ {
			offset := img.PixOffset(x, y)
			if img.Pix[offset] != 255 || img.Pix[offset+3] != 255 {
				t.Fatalf("texel (%d,%d) = %v", x, y, img.Pix[offset:offset+4])
			}
		}
	}
}

func TestExpand565(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		c       uint16
		r, g, b uint32
	}{
		{name: "black", c: 0x0000, r: 0, g: 0, b: 0},
		{name: "white", c: 0xffff, r: 255, g: 255, b: 255},
		{name: "red", c: red565, r: 255, g: 0, b: 0},
		{name: "green", c: 0x07e0, r: 0, g: 255, b: 0},
		{name: "blue", c: blue565, r: 0, g: 0, b: 255},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, g, b := expand565(tc.c)
			if r != tc.r || g != tc.g || b != tc.b {
				t.Fatalf("expand565(%#04x) = (%d,%d,%d), want (%d,%d,%d)", tc.c, r, g, b, tc.r, tc.g, tc.b)
			}
		})
	}
}
