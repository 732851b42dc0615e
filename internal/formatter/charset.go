package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/desertthunder/mannschaft/internal/shared"
)

// Charset names accepted in the configuration.
const (
	CharsetAuto        = "auto"
	CharsetUTF8        = "utf-8"
	CharsetWindows1252 = "windows-1252"
	CharsetLatin1      = "iso-8859-1"
	CharsetLatin9      = "iso-8859-15"
)

const bom = "\ufeff"

var charmaps = map[string]*charmap.Charmap{
	CharsetWindows1252: charmap.Windows1252,
	CharsetLatin1:      charmap.ISO8859_1,
	CharsetLatin9:      charmap.ISO8859_15,
}

// lookup returns the single-byte charmap for name, or nil for UTF-8.
func lookup(name string) (*charmap.Charmap, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", CharsetUTF8, "utf8":
		return nil, nil
	case "cp1252":
		name = CharsetWindows1252
	case "latin1":
		name = CharsetLatin1
	}

	cm, ok := charmaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported charset %q", shared.ErrInvalidArgument, name)
	}
	return cm, nil
}

// EncodeText converts s to charset. Runes the charset cannot represent are
// replaced with its substitution byte.
func EncodeText(s, charset string) ([]byte, error) {
	cm, err := lookup(charset)
	if err != nil {
		return nil, err
	}
	if cm == nil {
		return []byte(s), nil
	}

	out, err := encoding.ReplaceUnsupported(cm.NewEncoder()).String(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode as %s: %w", charset, err)
	}
	return []byte(out), nil
}

// DecodeText converts data to a string.
//
// With [CharsetAuto], valid UTF-8 is taken as is and anything else is read as windows-1252.
func DecodeText(data []byte, charset string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(charset), CharsetAuto) {
		if utf8.Valid(data) {
			return strings.TrimPrefix(string(data), bom), nil
		}
		charset = CharsetWindows1252
	}

	cm, err := lookup(charset)
	if err != nil {
		return "", err
	}
	if cm == nil {
		return strings.TrimPrefix(string(data), bom), nil
	}

	out, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", charset, err)
	}
	return string(out), nil
}
