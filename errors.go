package dds

import "errors"

var (
	// ErrMalformedHeader indicates a bad magic tag or header structure.
	ErrMalformedHeader = errors.New("malformed DDS header")
	// ErrUnsupportedFormat indicates an unhandled pixel format or four-cc.
	ErrUnsupportedFormat = errors.New("unsupported pixel format")
	// ErrTruncatedData indicates the source ended before a mip level was complete.
	ErrTruncatedData = errors.New("truncated pixel data")

	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrWriteHeader indicates DDS magic or header write failed.
	ErrWriteHeader = errors.New("writing DDS header failed")
	// ErrWritePixels indicates pixel payload write failed.
	ErrWritePixels = errors.New("writing pixel data failed")

	// ErrBlockTableRead indicates EDDS block table read failed.
	ErrBlockTableRead = errors.New("reading block table failed")
	// ErrBlockTableUnknownMagic indicates unknown block magic in the table.
	ErrBlockTableUnknownMagic = errors.New("unknown block magic in table")
	// ErrBlockTableInvalidSize indicates invalid block size in the table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrInvalidTargetSize indicates invalid decoded target size.
	ErrInvalidTargetSize = errors.New("invalid target size")
	// ErrChunkStreamTruncated indicates the LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrChunkHeaderRead indicates LZ4 chunk header read failed.
	ErrChunkHeaderRead = errors.New("reading chunk header failed")
	// ErrChunkDataRead indicates LZ4 chunk data read failed.
	ErrChunkDataRead = errors.New("reading chunk data failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrDecodeOverrun indicates decoded data overruns the target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockLengthMismatch indicates leftover bytes after decode.
	ErrBlockLengthMismatch = errors.New("LZ4 block length mismatch")
)
