package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// xmpKeyword is the standard iTXt keyword under which XMP packets are
// stored in PNG files.
const xmpKeyword = "XML:com.adobe.xmp"

// EmbedPNGXMP inserts an XMP packet into an encoded PNG as an iTXt chunk
// directly after the IHDR chunk and returns the new file contents.
func EmbedPNGXMP(png []byte, packet string) ([]byte, error) {
	if !bytes.HasPrefix(png, pngSignature) {
		return nil, fmt.Errorf("embed xmp: not a PNG file")
	}
	// IHDR is mandatory and first: signature + length(4) + type(4) +
	// 13 data bytes + CRC(4).
	if len(png) < len(pngSignature)+8+13+4 {
		return nil, fmt.Errorf("embed xmp: truncated PNG")
	}
	ihdrLen := binary.BigEndian.Uint32(png[len(pngSignature):])
	if string(png[len(pngSignature)+4:len(pngSignature)+8]) != "IHDR" {
		return nil, fmt.Errorf("embed xmp: missing IHDR chunk")
	}
	insertAt := len(pngSignature) + 8 + int(ihdrLen) + 4

	chunk := buildITXtChunk(xmpKeyword, packet)

	out := make([]byte, 0, len(png)+len(chunk))
	out = append(out, png[:insertAt]...)
	out = append(out, chunk...)
	out = append(out, png[insertAt:]...)
	return out, nil
}

// buildITXtChunk assembles an uncompressed iTXt chunk:
// keyword NUL compression-flag compression-method NUL NUL text.
func buildITXtChunk(keyword, text string) []byte {
	data := make([]byte, 0, len(keyword)+len(text)+5)
	data = append(data, keyword...)
	data = append(data, 0, 0, 0) // NUL, no compression, method 0
	data = append(data, 0, 0)    // empty language tag, empty translated keyword
	data = append(data, text...)

	chunk := make([]byte, 8, 8+len(data)+4)
	binary.BigEndian.PutUint32(chunk[0:4], uint32(len(data)))
	copy(chunk[4:8], "iTXt")
	chunk = append(chunk, data...)

	crc := crc32.NewIEEE()
	crc.Write(chunk[4:])
	chunk = binary.BigEndian.AppendUint32(chunk, crc.Sum32())
	return chunk
}
