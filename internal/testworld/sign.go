package testworld

// wrapSignText splits a plot id across sign lines of at most lineChars
// characters, dropping whatever does not fit on maxLines lines.
func wrapSignText(text string, lineChars, maxLines int) []string {
	var lines []string
	for len(text) > 0 && len(lines) < maxLines {
		n := lineChars
		if n > len(text) {
			n = len(text)
		}
		lines = append(lines, text[:n])
		text = text[n:]
	}
	return lines
}
