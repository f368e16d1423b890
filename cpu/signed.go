package cpu

// ToSigned reinterprets the low width bits of value as a two's complement
// integer: values below 2^(width-1) are returned as-is, the rest have
// 2^width subtracted.
func ToSigned(value uint16, width uint) int {
	v := int(value) & (1<<width - 1)
	if v < 1<<(width-1) {
		return v
	}
	return v - 1<<width
}

// SignExtend widens the low width bits of value to a 16-bit pattern by
// replicating bit width-1 into every higher bit.
func SignExtend(value uint16, width uint) uint16 {
	mask := uint16(1)<<width - 1
	value &= mask
	if (value>>(width-1))&1 != 0 {
		value |= ^mask
	}
	return value
}
