package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// NewUTF8Reader wraps an io.Reader with character encoding detection and conversion to UTF-8.
// The charset comes from contentType when it names one, otherwise from
// <meta> tags, a byte order mark or heuristics.
func NewUTF8Reader(body io.Reader, contentType string) (io.Reader, error) {
	return charset.NewReader(body, contentType)
}

// DecodeErrorText turns an upstream error payload into text.
//
// When contentType names a known non UTF-8 charset the payload is transcoded,
// otherwise it is read as UTF-8 with invalid sequences replaced by U+FFFD.
func DecodeErrorText(body []byte, contentType string) string {
	if enc := lookupEncoding(contentType); enc != nil {
		if decoded, _, err := transform.Bytes(enc.NewDecoder(), body); err == nil {
			return string(decoded)
		}
	}
	return strings.ToValidUTF8(string(body), "�")
}

func lookupEncoding(contentType string) encoding.Encoding {
	_, params, found := strings.Cut(contentType, ";")
	if !found {
		return nil
	}
	for _, param := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(param), "=")
		if !ok || !strings.EqualFold(key, "charset") {
			continue
		}
		enc, name := charset.Lookup(strings.Trim(value, `"' `))
		if enc == nil || name == "utf-8" {
			return nil
		}
		return enc
	}
	return nil
}

// LooksLikeJSON reports whether chunk starts with '{' or '[' after ASCII whitespace.
func LooksLikeJSON(chunk []byte) bool {
	trimmed := bytes.TrimLeft(chunk, " \t\r\n\f\v")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// ProbeRejection extracts a status code and message from a structured error
// payload. Either value is zero when the payload does not carry it.
func ProbeRejection(text string) (code int, message string) {
	if !gjson.Valid(text) {
		return 0, ""
	}
	res := gjson.Parse(text)
	if c := res.Get("code"); c.Exists() {
		code = int(c.Int())
	}
	for _, key := range []string{"message", "msg", "error"} {
		if m := res.Get(key); m.Type == gjson.String {
			return code, m.String()
		}
	}
	return code, ""
}
