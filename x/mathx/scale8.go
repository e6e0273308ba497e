package mathx

// Scale8 scales v by (s+1)/256, the 8-bit video scaling law used for LED
// brightness and fades. Scale8(v, 255) == v; Scale8(v, 0) == 0.
func Scale8(v, s uint8) uint8 {
	return uint8((uint16(v) * (uint16(s) + 1)) >> 8)
}

// AddSat8 returns a+b saturated at 255.
func AddSat8(a, b uint8) uint8 {
	return uint8(Min(uint16(a)+uint16(b), 255))
}
