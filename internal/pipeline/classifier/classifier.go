// Package classifier determines the container format of an input file.
// Signature bytes take precedence over the file extension; anything
// unreadable or unrecognized classifies as Unknown rather than erroring,
// so classification is a total function over all inputs.
package classifier

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"bytemomo/manta/internal/domain"
)

// Classifier maps an input file to its MediaKind.
type Classifier interface {
	Classify(path string) domain.MediaKind
}

// sniffLen covers the longest signature checked plus the MP4 ftyp box,
// which sits at offset 4.
const sniffLen = 16

type signature struct {
	offset int
	magic  []byte
	kind   domain.MediaKind
}

var signatures = []signature{
	{0, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, domain.PNG},
	{0, []byte{0xff, 0xd8, 0xff}, domain.JPEG},
	// ISO BMFF (MP4, MOV, M4V): size box then "ftyp".
	{4, []byte("ftyp"), domain.Video},
	// Matroska / WebM EBML header.
	{0, []byte{0x1a, 0x45, 0xdf, 0xa3}, domain.Video},
}

var extensions = map[string]domain.MediaKind{
	".png":  domain.PNG,
	".jpg":  domain.JPEG,
	".jpeg": domain.JPEG,
	".mp4":  domain.Video,
	".m4v":  domain.Video,
	".mov":  domain.Video,
	".avi":  domain.Video,
	".mkv":  domain.Video,
	".webm": domain.Video,
}

// SignatureClassifier classifies by magic bytes with an extension
// fallback for files too short or too exotic to sniff.
type SignatureClassifier struct{}

// NewSignatureClassifier creates a new signature-based classifier.
func NewSignatureClassifier() *SignatureClassifier {
	return &SignatureClassifier{}
}

// Classify returns the MediaKind for the file at path. It never returns
// an error; unreadable input is Unknown.
func (c *SignatureClassifier) Classify(path string) domain.MediaKind {
	f, err := os.Open(path)
	if err != nil {
		return classifyByExtension(path)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, _ := f.Read(head)
	head = head[:n]

	if kind, ok := classifyBySignature(head); ok {
		return kind
	}
	return classifyByExtension(path)
}

func classifyBySignature(head []byte) (domain.MediaKind, bool) {
	for _, sig := range signatures {
		end := sig.offset + len(sig.magic)
		if len(head) >= end && bytes.Equal(head[sig.offset:end], sig.magic) {
			return sig.kind, true
		}
	}
	// RIFF container: only the AVI form type is media handled here; WAV
	// and friends fall through to the extension check.
	if len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("AVI ")) {
		return domain.Video, true
	}
	return domain.Unknown, false
}

func classifyByExtension(path string) domain.MediaKind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := extensions[ext]; ok {
		return kind
	}
	return domain.Unknown
}
