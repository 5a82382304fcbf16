package strconvx

// parseUint backs the stm32f4 Atoi; it is plain Go so host tests cover it.

type parseError struct{}

func (parseError) Error() string { return "invalid syntax" }

func parseUint(s string, base int) (uint64, error) {
	if len(s) == 0 {
		return 0, parseError{}
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		var d byte
		switch {
		case '0' <= c && c <= '9':
			d = c - '0'
		case 'a' <= c && c <= 'z':
			d = c - 'a' + 10
		case 'A' <= c && c <= 'Z':
			d = c - 'A' + 10
		default:
			return 0, parseError{}
		}
		if int(d) >= base {
			return 0, parseError{}
		}
		if v > (1<<64-1-uint64(d))/uint64(base) {
			return 0, parseError{}
		}
		v = v*uint64(base) + uint64(d)
	}
	return v, nil
}
