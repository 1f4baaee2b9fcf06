package loader

// candidateDelimiters in preference order for ties.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

const delimiterSampleLines = 5

// DetectDelimiter picks the most frequent candidate delimiter in the first
// lines of data, outside double quotes. sampleSize bounds the bytes examined;
// zero or out of range means all of data. Defaults to a comma.
func DetectDelimiter(data []byte, sampleSize int) rune {
	if sampleSize <= 0 || sampleSize > len(data) {
		sampleSize = len(data)
	}
	sample := data[:sampleSize]

	counts := make(map[rune]int, len(candidateDelimiters))
	lines := 0
	inQuotes := false
	for i := 0; i < len(sample) && lines < delimiterSampleLines; i++ {
		c := sample[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			continue
		case inQuotes:
			continue
		case c == '\n':
			lines++
			continue
		}
		for _, delim := range candidateDelimiters {
			if c == byte(delim) {
				counts[delim]++
			}
		}
	}

	best := ','
	maxCount := 0
	for _, delim := range candidateDelimiters {
		if counts[delim] > maxCount {
			maxCount = counts[delim]
			best = delim
		}
	}
	return best
}
