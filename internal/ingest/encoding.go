package ingest

import (
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding returns the text encoding called name.
//
// UTF-8 input may start with a byte order mark, which is removed.
// Latin-1 is ISO 8859-1 proper rather than the Windows-1252 superset that
// web browsers use for that label. Other names are looked up among the
// WHATWG labels and then the IANA names. Python style names such as
// "utf_8" and "latin_1" are accepted.
func LookupEncoding(name string) (encoding.Encoding, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	switch n {
	case "", "utf-8", "utf8", "utf-8-sig", "u8":
		return unicode.UTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1", "l1":
		return charmap.ISO8859_1, nil
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	}

	if e, err := htmlindex.Get(n); err == nil {
		return e, nil
	}
	e, err := ianaindex.IANA.Encoding(n)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown encoding %q", name)
	}
	if e == nil {
		return nil, errors.Newf("unsupported encoding %q", name)
	}
	return e, nil
}
