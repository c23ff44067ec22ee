// Package charset resolves the character encoding of raw document payloads.
// Resolution is total: every byte sequence yields text, by falling through a
// cascade of strict decodes down to a lossy best-effort conversion.
package charset

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Well-known charset labels reported by the resolver.
const (
	LabelUTF8   = "utf-8"
	LabelLatin1 = "iso-8859-1"

	// LabelBestEffort marks text recovered by replacing invalid sequences
	// with U+FFFD. Character loss is possible.
	LabelBestEffort = "utf-8 (best effort)"
)

// prologueWindow bounds how many leading bytes are inspected for an XML
// declaration. Declarations live in the first line; 200 bytes is plenty.
const prologueWindow = 200

// declPattern matches the encoding pseudo-attribute of an XML declaration.
// This is a bounded scan, not a parse: well-formedness is checked later.
var declPattern = regexp.MustCompile(`encoding=["']([A-Za-z][A-Za-z0-9._-]*)["']`)

// Result pairs decoded text with the charset label that produced it.
type Result struct {
	Text    string `json:"text"`
	Charset string `json:"charset"`
}

// Resolver turns opaque byte buffers into text. The zero value resolves
// without heuristic detection; use WithDetector to plug one in.
type Resolver struct {
	detector Detector
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithDetector plugs in a heuristic charset detector, consulted when
// neither strict UTF-8 nor a declared encoding decodes the input.
func WithDetector(d Detector) Option {
	return func(r *Resolver) {
		r.detector = d
	}
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve decodes b. It never fails: the cascade tries strict UTF-8, then
// the encoding declared in the XML prologue, then the heuristic detector
// when one is configured, then ISO-8859-1, which accepts every byte value.
// The final lossy UTF-8 conversion keeps Resolve total even if every
// earlier step is skipped.
func (r *Resolver) Resolve(b []byte) Result {
	if utf8.Valid(b) {
		return Result{Text: string(b), Charset: LabelUTF8}
	}

	if name := DeclaredEncoding(b); name != "" {
		if text, ok := decodeStrict(b, name); ok {
			return Result{Text: text, Charset: strings.ToLower(name)}
		}
	}

	if r.detector != nil {
		if name, err := r.detector.DetectBest(b); err == nil && name != "" {
			if text, ok := decodeStrict(b, name); ok {
				return Result{Text: text, Charset: strings.ToLower(name)}
			}
		}
	}

	// ISO-8859-1 maps every byte to the code point of the same value, so
	// this step cannot fail on any input.
	if text, err := charmap.ISO8859_1.NewDecoder().Bytes(b); err == nil {
		return Result{Text: string(text), Charset: LabelLatin1}
	}

	return Result{
		Text:    strings.ToValidUTF8(string(b), string(utf8.RuneError)),
		Charset: LabelBestEffort,
	}
}

// DeclaredEncoding scans the leading bytes of b for an XML declaration and
// returns the declared encoding name, or "" when none is present.
func DeclaredEncoding(b []byte) string {
	head := b
	if len(head) > prologueWindow {
		head = head[:prologueWindow]
	}
	m := declPattern.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return string(m[1])
}

// decodeStrict decodes b under the IANA charset name. It reports failure
// for unknown names and for inputs the charset cannot represent: x/text
// decoders substitute U+FFFD for unmappable bytes rather than erroring,
// so a replacement rune in the output means the decode was not clean.
func decodeStrict(b []byte, name string) (string, bool) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", false
	}
	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	text := string(decoded)
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", false
	}
	return text, true
}
