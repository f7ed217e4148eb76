/*
Package dds decodes DirectDraw Surface (DDS) texture containers into
per-mip-level RGBA images.

Supported pixel data: packed uncompressed formats described by channel
bit masks (A8R8G8B8, R5G6B5, luminance and friends) and the DXT1-DXT5
(BC1-BC3) block-compressed formats. Decode produces the whole mip chain
as a Texture, largest level first; DecodeConfig probes the header only.
The package registers itself with the standard image package, so a
blank import is enough for image.Decode to handle DDS streams.

EDDS (Enfusion DDS, as used by Arma Reforger and DayZ) containers with
COPY or LZ4 chunk-stream mip blocks are handled by DecodeEDDS.

Encoding is out of scope except for EncodeUncompressed, which writes a
single-level uncompressed RGBA file suitable for round-tripping.
*/
package dds
