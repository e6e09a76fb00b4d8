package request

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

func lookupCharset(charset string) (encoding.Encoding, string, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, "", fmt.Errorf("%w %q: %w", ErrUnknownCharset, charset, err)
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(charset)
	}

	return enc, name, nil
}

// formEncode renders params as application/x-www-form-urlencoded text,
// in insertion order, with names and values transcoded to enc first.
func formEncode(params *linkedhashmap.Map, enc encoding.Encoding) (string, error) {
	var sb strings.Builder

	it := params.Iterator()
	for it.Next() {
		name, err := encodeComponent(it.Key().(string), enc)
		if err != nil {
			return "", err
		}
		value, err := encodeComponent(it.Value().(string), enc)
		if err != nil {
			return "", err
		}

		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(value)
	}

	return sb.String(), nil
}

func encodeComponent(s string, enc encoding.Encoding) (string, error) {
	b, err := enc.NewEncoder().String(s)
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", s, err)
	}

	return url.QueryEscape(b), nil
}

// appendQuery joins query onto rawURL, extending an existing query string.
func appendQuery(rawURL, query string) string {
	if query == "" {
		return rawURL
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}

	return rawURL + sep + query
}
