package komb

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// NumberFormat formats values written to the output file.
//
// It is built from a Python style format specification, which is how the
// number format is written in configuration files:
//
//	[:][[fill]align][sign][0][width][.precision][type]
//
// align is one of '<', '>', '^' and '=', sign is one of '+', '-' and ' ',
// and type is one of 'f', 'F', 'e', 'E', 'g', 'G' and '%'. Without type and
// precision a value is written in its shortest representation which reads
// back to the same value, for example "2.0" or "0.1".
type NumberFormat struct {
	fill      rune
	align     byte
	sign      byte
	width     int
	precision int
	verb      byte
}

// DefaultNumberFormat writes values in their shortest representation.
var DefaultNumberFormat = NumberFormat{fill: ' ', align: '>', sign: '-', precision: -1}

// ParseNumberFormat parses a Python style format specification.
func ParseNumberFormat(spec string) (NumberFormat, error) {
	f := DefaultNumberFormat
	s := strings.TrimSpace(spec)
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	orig := s

	// [[fill]align]
	fillSet, alignSet := false, false
	if r, size := utf8.DecodeRuneInString(s); size > 0 && len(s) > size && isAlign(s[size]) {
		f.fill = r
		f.align = s[size]
		s = s[size+1:]
		fillSet, alignSet = true, true
	} else if len(s) > 0 && isAlign(s[0]) {
		f.align = s[0]
		s = s[1:]
		alignSet = true
	}

	if len(s) > 0 && (s[0] == '+' || s[0] == '-' || s[0] == ' ') {
		f.sign = s[0]
		s = s[1:]
	}

	// A zero before the width pads with zeros after the sign, unless an
	// alignment is given. Then it only sets the fill.
	if len(s) > 0 && s[0] == '0' {
		if !fillSet {
			f.fill = '0'
		}
		if !alignSet {
			f.align = '='
		}
		s = s[1:]
	}

	n, s := leadingDigits(s)
	if n != "" {
		w, err := strconv.Atoi(n)
		if err != nil {
			return NumberFormat{}, fmt.Errorf("invalid number format %q: bad width", spec)
		}
		f.width = w
	}

	if len(s) > 0 && s[0] == '.' {
		n, s = leadingDigits(s[1:])
		if n == "" {
			return NumberFormat{}, fmt.Errorf("invalid number format %q: precision missing", spec)
		}
		p, err := strconv.Atoi(n)
		if err != nil {
			return NumberFormat{}, fmt.Errorf("invalid number format %q: bad precision", spec)
		}
		f.precision = p
	}

	if len(s) > 0 {
		switch s[0] {
		case 'f', 'F', 'e', 'E', 'g', 'G', '%':
			f.verb = s[0]
			s = s[1:]
		default:
			return NumberFormat{}, fmt.Errorf("invalid number format %q: unsupported type %q", spec, s[:1])
		}
	}
	if s != "" {
		return NumberFormat{}, fmt.Errorf("invalid number format %q: unexpected %q after %q", spec, s, strings.TrimSuffix(orig, s))
	}
	return f, nil
}

func isAlign(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '='
}

func leadingDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		i++
	}
	return s[:i], s[i:]
}

// Format returns the formatted string of v.
func (f NumberFormat) Format(v float64) string {
	neg := v < 0 || (v == 0 && 1/v < 0)
	if neg {
		v = -v
	}

	body := f.formatAbs(v)

	var sign string
	switch {
	case neg:
		sign = "-"
	case f.sign == '+':
		sign = "+"
	case f.sign == ' ':
		sign = " "
	}
	return f.pad(sign, body)
}

func (f NumberFormat) formatAbs(v float64) string {
	switch f.verb {
	case 'f', 'F':
		return strconv.FormatFloat(v, 'f', f.precisionOr(6), 64)
	case 'e', 'E':
		return strconv.FormatFloat(v, f.verb, f.precisionOr(6), 64)
	case 'g', 'G':
		p := f.precisionOr(6)
		if p == 0 {
			p = 1
		}
		return strconv.FormatFloat(v, f.verb, p, 64)
	case '%':
		return strconv.FormatFloat(v*100, 'f', f.precisionOr(6), 64) + "%"
	}

	if f.precision < 0 {
		return reprFloat(v)
	}
	return generalFloat(v, f.precision)
}

// generalFloat formats v >= 0 with p significant digits like 'g', except
// that fixed notation keeps at least one digit after the point. Scientific
// notation is used from exponent p-1 on, so that the extra digit does not
// exceed the precision.
func generalFloat(v float64, p int) string {
	if p == 0 {
		p = 1
	}
	e := strconv.FormatFloat(v, 'e', p-1, 64)
	i := strings.IndexByte(e, 'e')
	exp, _ := strconv.Atoi(e[i+1:])
	if exp < -4 || exp >= p-1 {
		mant := e[:i]
		if strings.IndexByte(mant, '.') >= 0 {
			mant = strings.TrimRight(strings.TrimRight(mant, "0"), ".")
		}
		return mant + e[i:]
	}
	s := strconv.FormatFloat(v, 'f', p-1-exp, 64)
	if strings.IndexByte(s, '.') >= 0 {
		s = strings.TrimRight(s, "0")
	}
	if strings.HasSuffix(s, ".") || !strings.Contains(s, ".") {
		s = strings.TrimSuffix(s, ".") + ".0"
	}
	return s
}

func (f NumberFormat) precisionOr(def int) int {
	if f.precision < 0 {
		return def
	}
	return f.precision
}

// reprFloat returns the shortest representation of v >= 0, switching to
// scientific notation for exponents below -4 or from 16 on.
func reprFloat(v float64) string {
	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if v != 0 && (exp < -4 || exp >= 16) {
		return e
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (f NumberFormat) pad(sign, body string) string {
	n := f.width - utf8.RuneCountInString(sign) - utf8.RuneCountInString(body)
	if n <= 0 {
		return sign + body
	}
	fill := strings.Repeat(string(f.fill), n)
	switch f.align {
	case '<':
		return sign + body + fill
	case '^':
		left := strings.Repeat(string(f.fill), n/2)
		right := strings.Repeat(string(f.fill), n-n/2)
		return left + sign + body + right
	case '=':
		return sign + fill + body
	default:
		return fill + sign + body
	}
}
