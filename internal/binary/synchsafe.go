package binary

// MaxSynchsafe is the largest value a 4-byte synchsafe integer can hold.
const MaxSynchsafe = 1<<28 - 1

// DecodeSynchsafe decodes a 4-byte synchsafe integer (7 bits per byte).
// Returns 0 if b is not 4 bytes long.
func DecodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// EncodeSynchsafe encodes v as a 4-byte synchsafe integer.
// Bits above MaxSynchsafe are dropped.
func EncodeSynchsafe(v uint32) []byte {
	return []byte{
		byte(v>>21) & 0x7F,
		byte(v>>14) & 0x7F,
		byte(v>>7) & 0x7F,
		byte(v) & 0x7F,
	}
}

// IsSynchsafe reports whether every byte of b has its high bit clear.
func IsSynchsafe(b []byte) bool {
	for _, c := range b {
		if c&0x80 != 0 {
			return false
		}
	}
	return true
}
