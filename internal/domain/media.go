package domain

// MediaKind is the canonical classification of an input file's container
// format. It is derived once per input and never changes afterwards.
type MediaKind string

const (
	// PNG is a Portable Network Graphics image.
	PNG MediaKind = "png"
	// JPEG is a JFIF/Exif JPEG image.
	JPEG MediaKind = "jpeg"
	// Video is any recognized video container (MP4, AVI, Matroska/WebM).
	Video MediaKind = "video"
	// Unknown is the terminal class for unreadable or unrecognized input.
	Unknown MediaKind = "unknown"
)

// ParseMediaKind maps a config string to a MediaKind. Unrecognized values
// map to Unknown so a registry file cannot introduce a kind the pipeline
// has no tools or classifier rules for.
func ParseMediaKind(s string) MediaKind {
	switch MediaKind(s) {
	case PNG, JPEG, Video:
		return MediaKind(s)
	}
	return Unknown
}
