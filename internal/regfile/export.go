// Package regfile reads and writes the preference key in the textual
// Windows Registry Editor 5.00 format, so pins can be saved as ordinary
// .reg backups that regedit itself can apply.
package regfile

import (
	"bytes"
	"errors"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/dxkit/gpupref/internal/regstore"
)

const (
	fileHeader = "Windows Registry Editor Version 5.00"
	crlf       = "\r\n"

	quote            = `"`
	backslash        = `\`
	escapedQuote     = `\"`
	escapedBackslash = `\\`
)

// Supported output encodings.
const (
	EncodingUTF16LE = "UTF-16LE"
	EncodingUTF8    = "UTF-8"
)

// RootedKeyPath is the preference key as regedit spells it.
const RootedKeyPath = "HKEY_CURRENT_USER" + backslash + regstore.KeyPath

var errUnsupportedEncoding = errors.New("unsupported output encoding")

// ExportOptions control the byte encoding of an exported file.
type ExportOptions struct {
	// Encoding selects the output encoding. Empty means UTF-16LE, which is
	// what regedit exports natively.
	Encoding string

	// NoBOM omits the byte order mark from UTF-16LE output.
	NoBOM bool
}

// Export renders the given preferences as a .reg document restoring the
// whole key. Entries are sorted by executable path so exports diff cleanly.
func Export(prefs map[string]string, opts ExportOptions) ([]byte, error) {
	names := make([]string, 0, len(prefs))
	for name := range prefs {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString(fileHeader + crlf + crlf)
	buf.WriteString("[" + RootedKeyPath + "]" + crlf)
	for _, name := range names {
		buf.WriteString(quote + escapeString(name) + quote + "=")
		buf.WriteString(quote + escapeString(prefs[name]) + quote + crlf)
	}
	buf.WriteString(crlf)

	switch strings.ToUpper(opts.Encoding) {
	case "", EncodingUTF16LE:
		bom := unicode.UseBOM
		if opts.NoBOM {
			bom = unicode.IgnoreBOM
		}
		return unicode.UTF16(unicode.LittleEndian, bom).NewEncoder().Bytes(buf.Bytes())
	case EncodingUTF8:
		return buf.Bytes(), nil
	default:
		return nil, errUnsupportedEncoding
	}
}

// escapeString escapes backslashes and quotes for a quoted .reg token.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, backslash, escapedBackslash)
	s = strings.ReplaceAll(s, quote, escapedQuote)
	return s
}
