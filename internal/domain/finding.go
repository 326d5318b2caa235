package domain

// Category tags the payload variant a Finding carries.
type Category string

const (
	CategoryHexRegion       Category = "hex_region"
	CategoryStringMatch     Category = "string_match"
	CategoryMetadataField   Category = "metadata_field"
	CategoryEntropySample   Category = "entropy_sample"
	CategoryHistogramBucket Category = "histogram_bucket"
	CategoryFrequencySample Category = "frequency_sample"
)

// HexRegion is a byte range of interest, typically an embedded structure
// or a raw dump row.
type HexRegion struct {
	Offset      int64  `json:"offset"`
	Length      int    `json:"length,omitempty"`
	Bytes       string `json:"bytes,omitempty"`
	ASCII       string `json:"ascii,omitempty"`
	Description string `json:"description,omitempty"`
}

// StringMatch is a readable string extracted from the file or from a
// decoded bit plane. Location names where the match came from when the
// tool reports it (e.g. a zsteg channel spec).
type StringMatch struct {
	Value    string `json:"value"`
	Location string `json:"location,omitempty"`
}

// MetadataField is one key/value pair from a metadata extractor.
type MetadataField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EntropySample is a byte-entropy measurement in bits per byte.
type EntropySample struct {
	BitsPerByte float64 `json:"bits_per_byte"`
}

// HistogramBucket is the occurrence count of one byte value.
type HistogramBucket struct {
	Byte  byte  `json:"byte"`
	Count int64 `json:"count"`
}

// FrequencySample is the relative frequency of one byte value.
type FrequencySample struct {
	Byte     byte    `json:"byte"`
	Fraction float64 `json:"fraction"`
}

// Finding is one normalized observation extracted from a tool's output.
// Exactly one payload pointer is set, matching Category, so the serialized
// form is self-describing for the visualization layer. Findings are never
// mutated after creation.
type Finding struct {
	Category   Category `json:"category"`
	Tool       string   `json:"tool"`
	Confidence *float64 `json:"confidence,omitempty"`

	Hex       *HexRegion       `json:"hex_region,omitempty"`
	String    *StringMatch     `json:"string_match,omitempty"`
	Metadata  *MetadataField   `json:"metadata_field,omitempty"`
	Entropy   *EntropySample   `json:"entropy_sample,omitempty"`
	Histogram *HistogramBucket `json:"histogram_bucket,omitempty"`
	Frequency *FrequencySample `json:"frequency_sample,omitempty"`
}

// Conf is a convenience for building optional confidence values.
func Conf(v float64) *float64 { return &v }
