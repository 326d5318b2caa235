package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"bytemomo/manta/internal/domain"
)

var (
	pngHeader  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}
	jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	mp4Header  = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm'}
	mkvHeader  = []byte{0x1a, 0x45, 0xdf, 0xa3, 0x01, 0x00, 0x00, 0x00}
	aviHeader  = append([]byte("RIFF\x24\x00\x00\x00"), []byte("AVI LIST")...)
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClassifyBySignature(t *testing.T) {
	c := NewSignatureClassifier()

	tests := []struct {
		name string
		data []byte
		want domain.MediaKind
	}{
		{"image.png", pngHeader, domain.PNG},
		{"photo.jpg", jpegHeader, domain.JPEG},
		{"clip.mp4", mp4Header, domain.Video},
		{"clip.mkv", mkvHeader, domain.Video},
		{"clip.avi", aviHeader, domain.Video},
		{"noise.bin", []byte{0xde, 0xad, 0xbe, 0xef}, domain.Unknown},
	}

	for _, tt := range tests {
		path := writeFile(t, tt.name, tt.data)
		if got := c.Classify(path); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestSignatureBeatsExtension(t *testing.T) {
	c := NewSignatureClassifier()

	// PNG bytes behind a .jpg name: signature wins.
	path := writeFile(t, "mislabeled.jpg", pngHeader)
	if got := c.Classify(path); got != domain.PNG {
		t.Errorf("expected png for PNG bytes with .jpg extension, got %q", got)
	}

	// MP4 bytes behind a .png name.
	path = writeFile(t, "mislabeled.png", mp4Header)
	if got := c.Classify(path); got != domain.Video {
		t.Errorf("expected video for ftyp bytes with .png extension, got %q", got)
	}
}

func TestExtensionFallback(t *testing.T) {
	c := NewSignatureClassifier()

	// Too short to carry a signature, but the extension is telling.
	path := writeFile(t, "tiny.png", []byte{0x01})
	if got := c.Classify(path); got != domain.PNG {
		t.Errorf("expected png via extension fallback, got %q", got)
	}
}

func TestClassifyNeverErrors(t *testing.T) {
	c := NewSignatureClassifier()

	if got := c.Classify(filepath.Join(t.TempDir(), "does-not-exist.webm")); got != domain.Video {
		t.Errorf("unreadable file should fall back to extension, got %q", got)
	}
	if got := c.Classify(filepath.Join(t.TempDir(), "does-not-exist")); got != domain.Unknown {
		t.Errorf("unreadable file without extension should be unknown, got %q", got)
	}

	empty := writeFile(t, "empty", nil)
	if got := c.Classify(empty); got != domain.Unknown {
		t.Errorf("empty file should be unknown, got %q", got)
	}
}
