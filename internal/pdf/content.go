package pdf

import "strings"

// pageText recovers the visible text of one decoded page content stream.
// String operands of the text-showing operators (Tj, ', ", TJ) are
// emitted in stream order; the line-moving operators (Td, TD, T*, ', ")
// and ET terminate the current line. Font encodings are not resolved,
// string bytes are taken as they appear in the stream.
func pageText(content []byte) string {
	var out strings.Builder
	var operands []string
	lineLen := 0

	emit := func() {
		for _, s := range operands {
			out.WriteString(s)
			lineLen += len(s)
		}
		operands = operands[:0]
	}
	breakLine := func() {
		if lineLen > 0 {
			out.WriteByte('\n')
			lineLen = 0
		}
	}

	i := 0
	for i < len(content) {
		c := content[i]
		switch {
		case isWhitespace(c):
			i++
		case c == '%':
			for i < len(content) && content[i] != '\n' && content[i] != '\r' {
				i++
			}
		case c == '(':
			var s string
			s, i = parseLiteralString(content, i)
			operands = append(operands, s)
		case c == '<':
			if i+1 < len(content) && content[i+1] == '<' {
				i += 2
				continue
			}
			var s string
			s, i = parseHexString(content, i)
			operands = append(operands, s)
		case c == '>':
			// closing dict delimiter
			if i+1 < len(content) && content[i+1] == '>' {
				i += 2
			} else {
				i++
			}
		case c == '[' || c == ']' || c == '{' || c == '}':
			// TJ array elements were already collected individually
			i++
		case c == '/':
			i++
			for i < len(content) && !isDelimiter(content[i]) {
				i++
			}
		default:
			start := i
			for i < len(content) && !isDelimiter(content[i]) {
				i++
			}
			tok := string(content[start:i])
			if isNumeric(tok) {
				continue
			}
			switch tok {
			case "Tj", "TJ":
				emit()
			case "'", "\"":
				breakLine()
				emit()
			case "Td", "TD", "T*", "ET":
				breakLine()
				operands = operands[:0]
			default:
				operands = operands[:0]
			}
		}
	}

	return strings.TrimRight(out.String(), "\n")
}

// parseLiteralString decodes a (...) string starting at content[i] == '('.
// Returns the decoded string and the index past the closing paren.
func parseLiteralString(content []byte, i int) (string, int) {
	var b strings.Builder
	depth := 1
	i++

	for i < len(content) && depth > 0 {
		c := content[i]
		switch c {
		case '\\':
			i++
			if i >= len(content) {
				break
			}
			switch e := content[i]; e {
			case 'n':
				b.WriteByte('\n')
				i++
			case 'r':
				b.WriteByte('\r')
				i++
			case 't':
				b.WriteByte('\t')
				i++
			case 'b':
				b.WriteByte('\b')
				i++
			case 'f':
				b.WriteByte('\f')
				i++
			case '\n':
				i++ // line continuation
			case '\r':
				i++
				if i < len(content) && content[i] == '\n' {
					i++
				}
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := 0
				for d := 0; d < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7'; d++ {
					v = v*8 + int(content[i]-'0')
					i++
				}
				b.WriteByte(byte(v))
			default:
				b.WriteByte(e)
				i++
			}
		case '(':
			depth++
			b.WriteByte(c)
			i++
		case ')':
			depth--
			if depth > 0 {
				b.WriteByte(c)
			}
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}

	return b.String(), i
}

// parseHexString decodes a <...> string starting at content[i] == '<'.
func parseHexString(content []byte, i int) (string, int) {
	var digits []byte
	i++
	for i < len(content) && content[i] != '>' {
		if isHexDigit(content[i]) {
			digits = append(digits, content[i])
		}
		i++
	}
	if i < len(content) {
		i++ // consume '>'
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	var b strings.Builder
	for j := 0; j+1 < len(digits); j += 2 {
		v := hexVal(digits[j])<<4 | hexVal(digits[j+1])
		// NUL bytes dropped: keeps the ASCII subset of UTF-16BE strings
		if v != 0 {
			b.WriteByte(byte(v))
		}
	}
	return b.String(), i
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return isWhitespace(c)
}

func isNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		switch c := tok[i]; {
		case c >= '0' && c <= '9':
		case c == '+' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
