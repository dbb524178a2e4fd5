package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"strings"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// embedText splices a text chunk carrying key/value into an encoded PNG
// stream, directly after the IHDR chunk. A Latin-1-encodable value goes into
// a tEXt chunk; anything else gets an uncompressed iTXt chunk, which carries
// UTF-8.
func embedText(data []byte, key, value string) ([]byte, error) {
	if len(data) < 8+12 || !bytes.Equal(data[:8], pngSignature) {
		return nil, errors.New("not a png stream")
	}
	// signature + IHDR framing (length, type, crc) + IHDR payload
	insertAt := 8 + 12 + int(binary.BigEndian.Uint32(data[8:12]))
	if insertAt > len(data) {
		return nil, errors.New("truncated png stream")
	}

	typ, payload := textChunk(key, value)

	chunk := make([]byte, 0, 12+len(payload))
	chunk = binary.BigEndian.AppendUint32(chunk, uint32(len(payload)))
	chunk = append(chunk, typ...)
	chunk = append(chunk, payload...)
	crc := crc32.NewIEEE()
	crc.Write(chunk[4:])
	chunk = binary.BigEndian.AppendUint32(chunk, crc.Sum32())

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:insertAt]...)
	out = append(out, chunk...)
	out = append(out, data[insertAt:]...)
	return out, nil
}

// textChunk builds the chunk type and payload for a key/value pair.
func textChunk(key, value string) (string, []byte) {
	if latin1, ok := latin1Encode(value); ok {
		payload := make([]byte, 0, len(key)+1+len(latin1))
		payload = append(payload, key...)
		payload = append(payload, 0)
		payload = append(payload, latin1...)
		return "tEXt", payload
	}
	// keyword, null, compression flag and method (both zero), empty
	// language tag and translated keyword, then UTF-8 text.
	payload := make([]byte, 0, len(key)+5+len(value))
	payload = append(payload, key...)
	payload = append(payload, 0, 0, 0, 0, 0)
	payload = append(payload, value...)
	return "iTXt", payload
}

// TextChunks returns the tEXt and uncompressed iTXt key/value pairs carried
// by an encoded PNG.
func TextChunks(data []byte) (map[string]string, error) {
	if len(data) < 8+12 || !bytes.Equal(data[:8], pngSignature) {
		return nil, errors.New("not a png stream")
	}
	chunks := map[string]string{}
	off := 8
	for off+12 <= len(data) {
		length := binary.BigEndian.Uint32(data[off : off+4])
		typ := string(data[off+4 : off+8])
		// Bound the length before it reaches int arithmetic; a crafted
		// chunk can otherwise overflow on 32-bit platforms.
		if uint64(length) > uint64(len(data)-off-12) {
			return nil, fmt.Errorf("truncated %s chunk", typ)
		}
		end := off + 8 + int(length)
		payload := data[off+8 : end]
		switch typ {
		case "tEXt":
			if i := bytes.IndexByte(payload, 0); i >= 0 {
				chunks[string(payload[:i])] = latin1Decode(payload[i+1:])
			}
		case "iTXt":
			if key, text, ok := parseITXt(payload); ok {
				chunks[key] = text
			}
		case "IEND":
			return chunks, nil
		}
		off = end + 4
	}
	return chunks, nil
}

// parseITXt extracts the keyword and text of an uncompressed iTXt payload.
func parseITXt(payload []byte) (string, string, bool) {
	i := bytes.IndexByte(payload, 0)
	if i < 0 || len(payload) < i+4 {
		return "", "", false
	}
	key := string(payload[:i])
	if payload[i+1] != 0 { // compressed text is never produced here
		return "", "", false
	}
	rest := payload[i+3:]
	j := bytes.IndexByte(rest, 0) // language tag
	if j < 0 {
		return "", "", false
	}
	rest = rest[j+1:]
	k := bytes.IndexByte(rest, 0) // translated keyword
	if k < 0 {
		return "", "", false
	}
	return key, string(rest[k+1:]), true
}

func latin1Encode(s string) ([]byte, bool) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return nil, false
		}
		out = append(out, byte(r))
	}
	return out, true
}

func latin1Decode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(rune(c))
	}
	return sb.String()
}
