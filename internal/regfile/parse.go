package regfile

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dxkit/gpupref/internal/regstore"
)

// Value type identifiers as detected from the payload after the = sign.
// Only TypeString entries are meaningful under the preference key; the rest
// are carried through so callers can report what they skipped.
const (
	TypeString  = "string"
	TypeDWORD   = "dword"
	TypeBinary  = "binary"
	TypeUnknown = "unknown"
)

// Some .reg files carry huge single-line binary values.
const (
	scannerInitialBuffer = 64 * 1024
	scannerMaxLine       = 1024 * 1024
)

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
)

// Value is a single parsed value line.
type Value struct {
	Name   string // value name, "" for the default @ value
	Type   string // TypeString, TypeDWORD, TypeBinary, "hex(N)", or TypeUnknown
	Data   string // decoded string for TypeString, raw payload otherwise
	Delete bool   // "name"=- removes the value
}

// Key is a parsed [section] together with the value lines that followed it.
type Key struct {
	Path   string
	Delete bool // [-path] removes the whole key
	Values []Value
}

// File is the parsed form of a .reg document.
type File struct {
	Keys []*Key
}

// Parse reads a .reg document in any of the encodings regedit produces.
// A byte order mark selects UTF-16 decoding; BOM-less input is taken as
// UTF-8 when it validates and as Windows-1252 otherwise, which is what
// ANSI-era exports used.
func Parse(data []byte) (*File, error) {
	scanner := bufio.NewScanner(decodedReader(data))
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxLine)

	file := &File{}
	var current *Key

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, "Windows Registry Editor") || line == "REGEDIT4" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			path := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			current = &Key{Path: path}
			if strings.HasPrefix(path, "-") {
				current.Path = strings.TrimPrefix(path, "-")
				current.Delete = true
			}
			file.Keys = append(file.Keys, current)
			continue
		}

		if current == nil || !strings.Contains(line, "=") {
			continue
		}
		if v, ok := parseValue(line); ok {
			current.Values = append(current.Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning reg file: %w", err)
	}
	return file, nil
}

// IsPreferenceKey reports whether a parsed key path addresses the
// preference key, tolerating the HKCU abbreviation and case differences.
func IsPreferenceKey(path string) bool {
	for _, root := range []string{"HKEY_CURRENT_USER" + backslash, "HKCU" + backslash} {
		if len(path) > len(root) && strings.EqualFold(path[:len(root)], root) {
			return strings.EqualFold(path[len(root):], regstore.KeyPath)
		}
	}
	return false
}

// decodedReader sniffs the byte order mark and wraps data in the matching
// text decoder.
func decodedReader(data []byte) io.Reader {
	switch {
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16BEBOM):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		return transform.NewReader(bytes.NewReader(data), dec)
	case bytes.HasPrefix(data, utf8BOM):
		return bytes.NewReader(data[len(utf8BOM):])
	case utf8.Valid(data):
		return bytes.NewReader(data)
	default:
		return transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
	}
}

// parseValue parses one value line. Lines that do not start a value, such
// as hex continuation lines, report ok=false.
func parseValue(line string) (Value, bool) {
	if strings.HasPrefix(line, "@=") {
		return valueFrom("", line[len("@="):]), true
	}
	if !strings.HasPrefix(line, quote) {
		return Value{}, false
	}
	closing := findClosingQuote(line)
	if closing == -1 || closing+1 >= len(line) || line[closing+1] != '=' {
		return Value{}, false
	}
	name := unescapeString(line[1:closing])
	return valueFrom(name, line[closing+2:]), true
}

// valueFrom classifies the payload after the = sign.
func valueFrom(name, payload string) Value {
	v := Value{Name: name}
	switch {
	case payload == "-":
		v.Delete = true
	case strings.HasPrefix(payload, quote):
		v.Type = TypeString
		data := payload
		if len(data) >= 2 && data[len(data)-1] == '"' {
			data = data[1 : len(data)-1]
		}
		v.Data = unescapeString(data)
	case strings.HasPrefix(payload, "dword:"):
		v.Type = TypeDWORD
		v.Data = payload
	case strings.HasPrefix(payload, "hex("):
		v.Type = TypeUnknown
		if end := strings.Index(payload, ")"); end > len("hex(") {
			v.Type = payload[:end+1]
		}
		v.Data = payload
	case strings.HasPrefix(payload, "hex:"):
		v.Type = TypeBinary
		v.Data = payload
	default:
		v.Type = TypeUnknown
		v.Data = payload
	}
	return v
}

// findClosingQuote returns the index of the first unescaped quote after
// position 0, or -1. A quote preceded by an odd number of backslashes is
// escaped.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			continue
		}
		return i
	}
	return -1
}

// unescapeString reverses escapeString. The backslash scan keeps the common
// unescaped case allocation free.
func unescapeString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	s = strings.ReplaceAll(s, escapedBackslash, backslash)
	s = strings.ReplaceAll(s, escapedQuote, quote)
	return s
}
