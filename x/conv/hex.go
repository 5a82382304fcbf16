package conv

const hexd = "0123456789ABCDEF"

// U32Hex writes 8-digit uppercase hex without 0x, zero-padded.
func U32Hex(buf []byte, n uint32) []byte { return hexN(buf, uint64(n), 8) }

// U16Hex writes 4-digit uppercase hex without 0x, zero-padded, e.g. a pin mask.
func U16Hex(buf []byte, n uint16) []byte { return hexN(buf, uint64(n), 4) }

func hexN(buf []byte, n uint64, digits int) []byte {
	if len(buf) < digits {
		return buf[:0]
	}
	i := len(buf)
	for j := 0; j < digits; j++ {
		i--
		buf[i] = hexd[n&0xF]
		n >>= 4
	}
	return buf[i:]
}
