package msgtemplate

// findBraceIndex returns the index of the first unescaped brace in
// format[start:end], or end when there is none. A run of doubled braces is an
// escape. An odd run resolves to its last '{' or its first '}', so "{{{A}}}"
// keeps the outer braces as literals around the placeholder.
func findBraceIndex(format string, brace byte, start, end int) int {
	braceIndex := end
	count := 0
	for scan := start; scan < end; scan++ {
		c := format[scan]
		if count > 0 && c != brace {
			if count%2 == 0 {
				count = 0
				braceIndex = end
				continue
			}
			break
		}
		if c == brace {
			if brace == '}' {
				if count == 0 {
					braceIndex = scan
				}
			} else {
				braceIndex = scan
			}
			count++
		}
	}
	return braceIndex
}

// findIndexOfAny returns the first index in format[start:end] holding one of
// chars, or end.
func findIndexOfAny(format string, chars string, start, end int) int {
	for i := start; i < end; i++ {
		c := format[i]
		for j := 0; j < len(chars); j++ {
			if c == chars[j] {
				return i
			}
		}
	}
	return end
}
