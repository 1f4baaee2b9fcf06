package profiler

import "time"

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
	kindBool
	kindDate
)

var dateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02-Jan-2006",
	time.RFC3339,
}

func kindOf(value string) valueKind {
	switch {
	case isInt(value):
		return kindInt
	case isFloat(value):
		return kindFloat
	case value == "true" || value == "false":
		return kindBool
	case isDate(value):
		return kindDate
	default:
		return kindString
	}
}

// dominantKindCount returns how many values share the most common kind.
// Ints count towards floats when both appear, since they parse as floats.
func dominantKindCount(values []string) int {
	counts := make(map[valueKind]int)
	for _, v := range values {
		counts[kindOf(v)]++
	}
	if counts[kindFloat] > 0 {
		counts[kindFloat] += counts[kindInt]
		delete(counts, kindInt)
	}
	best := 0
	for _, n := range counts {
		if n > best {
			best = n
		}
	}
	return best
}

func allDates(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !isDate(v) {
			return false
		}
	}
	return true
}

func isInt(str string) bool {
	if len(str) == 0 {
		return false
	}

	i := 0
	if str[0] == '-' || str[0] == '+' {
		if len(str) == 1 {
			return false
		}
		i = 1
	}

	for ; i < len(str); i++ {
		c := str[i]
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isFloat accepts decimal and exponent forms; plain integers are not floats.
func isFloat(str string) bool {
	if len(str) == 0 {
		return false
	}

	hasDot := false
	hasExp := false
	hasDigit := false
	i := 0

	if str[0] == '-' || str[0] == '+' {
		if len(str) == 1 {
			return false
		}
		i = 1
	}

	for ; i < len(str); i++ {
		c := str[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c == '.':
			if hasDot || hasExp {
				return false
			}
			hasDot = true
		case c == 'e' || c == 'E':
			if hasExp || !hasDigit || i == len(str)-1 {
				return false
			}
			hasExp = true
			if next := str[i+1]; next == '-' || next == '+' {
				i++
				if i == len(str)-1 {
					return false
				}
			}
		default:
			return false
		}
	}
	return hasDigit && (hasDot || hasExp)
}

func isDate(value string) bool {
	for _, format := range dateFormats {
		if _, err := time.Parse(format, value); err == nil {
			return true
		}
	}
	return false
}
