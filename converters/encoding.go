package converters

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pingcap/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// dropInvalidUTF8 deletes byte sequences that are not valid UTF-8.
func dropInvalidUTF8() transform.Transformer {
	return transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

// newDecoder wraps r so it yields UTF-8. label is a WHATWG encoding label
// such as "utf-8", "latin1" or "windows-1252"; empty means UTF-8.
func newDecoder(r io.Reader, label string) (io.Reader, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return transform.NewReader(r, dropInvalidUTF8()), nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, errors.Errorf("unsupported input encoding %q", label)
	}
	if name == "utf-8" {
		return transform.NewReader(r, dropInvalidUTF8()), nil
	}
	return transform.NewReader(r, transform.Chain(enc.NewDecoder(), dropInvalidUTF8())), nil
}

// normalizeNewline turns a CRLF terminator into LF.
func normalizeNewline(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2] + "\n"
	}
	return line
}
