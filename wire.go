package ide

import "encoding/binary"

// packWords16 reinterprets a 16-bit word array as 32-bit little-endian
// words, two source words per destination word (low word first) — the
// same reinterpretation the hardware performs when an identify block or
// config register is written as a stream of 32-bit words.
func packWords16(words []uint16) []uint32 {
	out := make([]uint32, len(words)/2)
	for i := range out {
		out[i] = uint32(words[2*i]) | uint32(words[2*i+1])<<16
	}
	return out
}

// bytesToWords packs a byte buffer into little-endian 32-bit words for
// the bulk data window.
func bytesToWords(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

// wordsToBytes unpacks little-endian 32-bit words from the bulk data
// window into dst.
func wordsToBytes(words []uint32, dst []byte) {
	for i, w := range words {
		binary.LittleEndian.PutUint32(dst[i*4:], w)
	}
}
