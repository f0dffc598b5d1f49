package actions

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Encode converts text to bytes in the named encoding. An empty name means
// UTF-8. Besides the WHATWG labels known to htmlindex, the Node.js buffer
// names are accepted: utf8, utf16le/ucs2, latin1/binary, ascii, base64 and
// hex. base64 and hex decode text rather than encode it.
func Encode(text, name string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf8", "utf-8":
		return []byte(text), nil
	case "utf16le", "utf-16le", "ucs2", "ucs-2":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(text))
	case "latin1", "binary", "ascii":
		// Node writes ascii exactly like latin1.
		return latin1(text)
	case "base64":
		return decodeBase64(text)
	case "hex":
		data, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("text is not valid hex: %w", err)
		}
		return data, nil
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	data, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode text as %s: %w", name, err)
	}
	return data, nil
}

// latin1 is ISO-8859-1; characters outside it become the ASCII SUB byte. The WHATWG
// "latin1" label means windows-1252, so it is not looked up in htmlindex.
func latin1(text string) ([]byte, error) {
	return encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(text))
}

// decodeBase64 accepts padded or unpadded input in the standard or URL-safe
// alphabet, ignoring whitespace, as Node's base64 decoder does.
func decodeBase64(text string) ([]byte, error) {
	text = strings.Join(strings.Fields(text), "")

	var firstErr error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		data, err := enc.DecodeString(text)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, fmt.Errorf("text is not valid base64: %w", firstErr)
}
