package charset

import (
	"errors"
	"testing"
)

// fakeDetector returns a fixed answer, standing in for a statistical detector.
type fakeDetector struct {
	name string
	err  error
}

func (d fakeDetector) DetectBest(_ []byte) (string, error) {
	return d.name, d.err
}

func TestResolve_ValidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"plain ascii", []byte(`<Root><Code>6A</Code></Root>`)},
		{"multibyte runes", []byte("<Root>caf\xc3\xa9 \xe2\x82\xac</Root>")},
		{"empty input", []byte{}},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.input)
			if got.Charset != LabelUTF8 {
				t.Errorf("charset = %q, want %q", got.Charset, LabelUTF8)
			}
			if got.Text != string(tt.input) {
				t.Errorf("text = %q, want exact decoding %q", got.Text, string(tt.input))
			}
		})
	}
}

func TestResolve_DeclaredEncoding(t *testing.T) {
	tests := []struct {
		name        string
		input       []byte
		wantCharset string
		wantText    string
	}{
		{
			name:        "declared iso-8859-1",
			input:       []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Root>caf\xe9</Root>"),
			wantCharset: "iso-8859-1",
			wantText:    "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Root>caf\xc3\xa9</Root>",
		},
		{
			name:        "declared windows-1252",
			input:       []byte("<?xml version=\"1.0\" encoding=\"windows-1252\"?><Root>\x80</Root>"),
			wantCharset: "windows-1252",
			wantText:    "<?xml version=\"1.0\" encoding=\"windows-1252\"?><Root>\xe2\x82\xac</Root>",
		},
	}

	r := NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.input)
			if got.Charset != tt.wantCharset {
				t.Errorf("charset = %q, want %q", got.Charset, tt.wantCharset)
			}
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
		})
	}
}

func TestResolve_DeclaredButValidUTF8(t *testing.T) {
	// Strict UTF-8 wins over the declaration when the bytes are valid UTF-8.
	input := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><Root/>")
	got := NewResolver().Resolve(input)
	if got.Charset != LabelUTF8 {
		t.Errorf("charset = %q, want %q", got.Charset, LabelUTF8)
	}
}

func TestResolve_UnknownDeclaredEncoding(t *testing.T) {
	input := []byte("<?xml version=\"1.0\" encoding=\"x-no-such-charset\"?><Root>\xe9</Root>")
	got := NewResolver().Resolve(input)
	if got.Charset != LabelLatin1 {
		t.Errorf("charset = %q, want fallback %q", got.Charset, LabelLatin1)
	}
}

func TestResolve_Latin1Fallback(t *testing.T) {
	// 0xE9 is invalid as UTF-8 and there is no declaration.
	got := NewResolver().Resolve([]byte("<Root>caf\xe9</Root>"))
	if got.Charset != LabelLatin1 {
		t.Errorf("charset = %q, want %q", got.Charset, LabelLatin1)
	}
	if got.Text != "<Root>caf\xc3\xa9</Root>" {
		t.Errorf("text = %q, want latin-1 decoding", got.Text)
	}
}

func TestResolve_DetectorConsulted(t *testing.T) {
	r := NewResolver(WithDetector(fakeDetector{name: "windows-1252"}))
	got := r.Resolve([]byte("<Root>\x80</Root>"))
	if got.Charset != "windows-1252" {
		t.Errorf("charset = %q, want detector guess %q", got.Charset, "windows-1252")
	}
	if got.Text != "<Root>\xe2\x82\xac</Root>" {
		t.Errorf("text = %q, want windows-1252 decoding", got.Text)
	}
}

func TestResolve_DetectorFailureFallsThrough(t *testing.T) {
	r := NewResolver(WithDetector(fakeDetector{err: errors.New("no guess")}))
	got := r.Resolve([]byte("<Root>\xe9</Root>"))
	if got.Charset != LabelLatin1 {
		t.Errorf("charset = %q, want %q", got.Charset, LabelLatin1)
	}
}

func TestResolve_TotalOverAllByteValues(t *testing.T) {
	r := NewResolver()
	for i := 0; i < 256; i++ {
		got := r.Resolve([]byte{byte(i)})
		if got.Text == "" {
			t.Fatalf("byte 0x%02X: empty text", i)
		}
		if got.Charset == "" {
			t.Fatalf("byte 0x%02X: empty charset label", i)
		}
	}
}

func TestDeclaredEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "standard declaration",
			input: `<?xml version="1.0" encoding="UTF-8"?><Root/>`,
			want:  "UTF-8",
		},
		{
			name:  "single quotes",
			input: `<?xml version='1.0' encoding='ISO-8859-1'?><Root/>`,
			want:  "ISO-8859-1",
		},
		{
			name:  "no declaration",
			input: `<Root/>`,
			want:  "",
		},
		{
			name:  "declaration beyond the sniff window is ignored",
			input: `<Root attr="` + string(make([]byte, prologueWindow)) + `"/><!-- encoding="UTF-8" -->`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeclaredEncoding([]byte(tt.input)); got != tt.want {
				t.Errorf("DeclaredEncoding() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewChardetDetector(t *testing.T) {
	d := NewChardetDetector()
	name, err := d.DetectBest([]byte("plain ascii text, long enough for the detector to work with"))
	if err != nil {
		t.Fatalf("DetectBest() error = %v", err)
	}
	if name == "" {
		t.Error("expected a non-empty charset guess")
	}
}
