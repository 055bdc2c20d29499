package extractor

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeString returns the value of a Python string literal given its source
// text. Byte strings, f-strings and t-strings are not plain strings and
// report false. Line endings are normalized to "\n".
func decodeString(raw string) (string, bool) {
	i := strings.IndexAny(raw, `"'`)
	if i < 0 {
		return "", false
	}
	prefix := strings.ToLower(raw[:i])
	if strings.ContainsAny(prefix, "bft") {
		return "", false
	}

	body := raw[i:]
	quote := body[:1]
	if strings.HasPrefix(body, `"""`) || strings.HasPrefix(body, `'''`) {
		quote = body[:3]
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}
	body = body[len(quote) : len(body)-len(quote)]
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")

	if strings.Contains(prefix, "r") {
		return body, true
	}
	return unescape(body), true
}

// unescape decodes the escape sequences of a non-raw Python string.
// Unknown escapes are kept verbatim, as Python does.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			n, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(n))
			i = j - 1
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if r, ok := hexRune(s, i+1, width); ok {
				b.WriteRune(r)
				i += width
				continue
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(s string, start, width int) (rune, bool) {
	if start+width > len(s) {
		return 0, false
	}
	n, err := strconv.ParseUint(s[start:start+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, false
	}
	return rune(n), true
}
