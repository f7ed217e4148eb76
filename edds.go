package dds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed EDDS block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4-compressed EDDS block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024
)

type blockHeader struct {
	Magic string
	Size  int32
}

// DecodeEDDS decodes an EDDS (Enfusion DDS) container into the full mip
// chain. EDDS reuses the DDS header; the pixel data is replaced by a
// block table followed by per-mip COPY or LZ4 chunk-stream blocks,
// stored smallest level first. The returned Texture is ordered largest
// level first, same as DecodeTexture.
func DecodeEDDS(r io.Reader) (*Texture, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}

	format, err := ClassifyFormat(&header.PixelFormat)
	if err != nil {
		return nil, err
	}

	count := int(header.MipMapCount)
	table, err := readBlockTable(r, count)
	if err != nil {
		return nil, err
	}

	layers := make([]*image.NRGBA, count)
	for i, block := range table {
		level := count - 1 - i
		width := mipDimension(int(header.Width), level)
		height := mipDimension(int(header.Height), level)
		expected := layerByteLength(format, &header.PixelFormat, width, height)

		body, err := readBlockBody(r, block, level)
		if err != nil {
			return nil, err
		}

		data, err := decompressBlock(block.Magic, body, expected)
		if err != nil {
			return nil, fmt.Errorf("mipmap %d: %w", level, err)
		}

		layers[level] = decodeLayerData(data, format, &header.PixelFormat, width, height)
	}

	return &Texture{Header: *header, Format: format, Layers: layers}, nil
}

// readBlockTable reads one magic/size entry per mip level.
func readBlockTable(r io.Reader, mipMapCount int) ([]blockHeader, error) {
	table := make([]blockHeader, 0, mipMapCount)
	for i := 0; i < mipMapCount; i++ {
		var entry [8]byte
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBlockTableRead, i, err)
		}

		magic := string(entry[:4])
		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}

		size := int32(binary.LittleEndian.Uint32(entry[4:]))
		if size < 0 {
			return nil, fmt.Errorf("%w: entry %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		table = append(table, blockHeader{Magic: magic, Size: size})
	}

	return table, nil
}

// readBlockBody reads the payload of one table entry.
func readBlockBody(r io.Reader, block blockHeader, level int) ([]byte, error) {
	data := make([]byte, block.Size)
	if n, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: mipmap %d (%s): expected %d bytes, got %d", ErrTruncatedData, level, block.Magic, block.Size, n)
	}

	return data, nil
}

// decompressBlock inflates one EDDS block into raw mip data of the
// expected size. LZ4 blocks carry an optional leading uncompressed-size
// word followed by chunks of at most ChunkSize bytes, each prefixed by
// a 3-byte compressed length and a flag byte (0x80 marks the last
// chunk), sharing a rolling 64KB dictionary.
func decompressBlock(magic string, data []byte, expectedSize int) ([]byte, error) {
	if magic == BlockMagicCOPY {
		if len(data) != expectedSize {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, expectedSize, len(data))
		}
		out := make([]byte, len(data))
		copy(out, data)
		return out, nil
	}
	if magic != BlockMagicLZ4 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, magic)
	}

	targetSize := expectedSize
	if len(data) >= 8 {
		peek := int(binary.LittleEndian.Uint32(data[:4]))
		c0 := int(data[4]) | int(data[5])<<8 | int(data[6])<<16
		if peek == expectedSize && c0 > 0 && c0 < (1<<20) {
			data = data[4:]
		}
	}
	if targetSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTargetSize, targetSize)
	}

	const dictCap = 64 * 1024
	dict := make([]byte, dictCap)
	dictSize := 0

	target := make([]byte, targetSize)
	outIdx := 0

	r := bytes.NewReader(data)

	for {
		if r.Len() < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, r.Len())
		}

		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkHeaderRead, err)
		}

		cSize := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if (flags &^ 0x80) != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		compressed := make([]byte, cSize)
		if _, err := io.ReadFull(r, compressed); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkDataRead, err)
		}

		remaining := targetSize - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		want := ChunkSize
		if want > remaining {
			want = remaining
		}
		dst := target[outIdx : outIdx+want]

		n, err := lz4.UncompressBlockWithDict(compressed, dst, dict[:dictSize])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}

		outIdx += n

		decoded := target[outIdx-n : outIdx]
		if len(decoded) >= dictCap {
			copy(dict, decoded[len(decoded)-dictCap:])
			dictSize = dictCap
		} else {
			avail := dictCap - dictSize
			if len(decoded) <= avail {
				copy(dict[dictSize:], decoded)
				dictSize += len(decoded)
			} else {
				shift := len(decoded) - avail
				copy(dict, dict[shift:dictSize])
				copy(dict[dictCap-len(decoded):], decoded)
				dictSize = dictCap
			}
		}

		if (flags & 0x80) != 0 {
			break
		}
	}

	if outIdx != targetSize {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, targetSize, outIdx)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}
