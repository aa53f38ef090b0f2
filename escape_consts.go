package tmplog

// SWAR masks over eight bytes at a time. Each chunk function returns a word
// whose high bit is set in every byte lane that matched.
const (
	asciiHighBitsMask    uint64 = 0x8080808080808080
	repeatOnes           uint64 = 0x0101010101010101
	jsonControlThreshold uint64 = 0x2020202020202020
	jsonQuoteMask        uint64 = 0x2222222222222222
	jsonBackslashMask    uint64 = 0x5c5c5c5c5c5c5c5c
	jsonLessMask         uint64 = 0x3c3c3c3c3c3c3c3c
	jsonApostropheMask   uint64 = 0x2727272727272727
	consoleSpaceMask     uint64 = 0x2020202020202020
	consoleDelMask       uint64 = 0x7f7f7f7f7f7f7f7f
)

func chunkEqualMask(chunk, target uint64) uint64 {
	x := chunk ^ target
	return (x - repeatOnes) & ^x & asciiHighBitsMask
}

// chunkControlMask flags bytes below 0x20. Bytes with the high bit set are
// never flagged.
func chunkControlMask(chunk uint64) uint64 {
	return (chunk - jsonControlThreshold) & ^chunk & asciiHighBitsMask
}

func chunkJSONUnsafeMask(chunk uint64) uint64 {
	mask := chunkControlMask(chunk)
	mask |= chunkEqualMask(chunk, jsonQuoteMask)
	mask |= chunkEqualMask(chunk, jsonBackslashMask)
	mask |= chunkEqualMask(chunk, jsonLessMask)
	mask |= chunkEqualMask(chunk, jsonApostropheMask)
	return mask
}

func chunkHasConsoleUnsafe(chunk uint64) bool {
	mask := chunkJSONUnsafeMask(chunk)
	mask |= chunkEqualMask(chunk, consoleSpaceMask)
	mask |= chunkEqualMask(chunk, consoleDelMask)
	return mask != 0
}
