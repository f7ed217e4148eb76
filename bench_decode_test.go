package dds

import (
	"bytes"
	"testing"
)

// benchPayload builds a deterministic pseudo-random payload of n bytes.
func benchPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte((i*31 + 7) & 0xff)
	}

	return data
}

// benchDXTFile prepares an in-memory single-level compressed file.
func benchDXTFile(b *testing.B, fourCC string, format Format, width, height int) []byte {
	b.Helper()

	payload := benchPayload(layerByteLength(format, &RawPixelFormat{}, width, height))

	return buildDDS(b, fourCCHeader(uint32(width), uint32(height), 1, fourCC), payload) //nolint:gosec // bounded
}

func benchmarkDecode(b *testing.B, data []byte) {
	b.Helper()
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := DecodeTexture(bytes.NewReader(data)); err != nil {
			b.Fatalf("DecodeTexture: %v", err)
		}
	}
}

func BenchmarkDecodeDXT1(b *testing.B) {
	benchmarkDecode(b, benchDXTFile(b, "DXT1", FormatDXT1, 256, 256))
}

func BenchmarkDecodeDXT5(b *testing.B) {
	benchmarkDecode(b, benchDXTFile(b, "DXT5", FormatDXT5, 256, 256))
}

func BenchmarkDecodeUncompressed(b *testing.B) {
	payload := benchPayload(256 * 256 * 4)
	benchmarkDecode(b, buildDDS(b, rgbaHeader(256, 256), payload))
}

func BenchmarkDecodeEDDSLZ4(b *testing.B) {
	payload := repeatingPayload(256 * 256 * 4)
	data := buildEDDS(b, rgbaHeader(256, 256), []eddsBlock{
		{magic: BlockMagicLZ4, body: lz4ChunkStream(b, payload)},
	})

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := DecodeEDDS(bytes.NewReader(data)); err != nil {
			b.Fatalf("DecodeEDDS: %v", err)
		}
	}
}
