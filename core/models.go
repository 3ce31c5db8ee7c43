package core

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// Well-known patent record fields. Source files are not guaranteed to
// populate any of them.
const (
	FieldDocNumber      = "doc_number"
	FieldTitle          = "title"
	FieldAbstract       = "abstract"
	FieldClaims         = "claims"
	FieldClassification = "classification"
)

// Document is a single patent record as decoded from a source JSON file.
// Field sets vary between publication batches, so records stay schemaless
// and accessors coerce the handful of fields the engine relies on.
type Document map[string]any

// ID returns the document identifier from the doc_number field, coerced
// to a string. Empty when the field is absent.
func (d Document) ID() string {
	return d.StringField(FieldDocNumber)
}

// Title returns the patent title, or "No Title" when absent or empty.
func (d Document) Title() string {
	if t := d.StringField(FieldTitle); t != "" {
		return t
	}
	return "No Title"
}

// Field returns the raw value stored under name and whether it is present.
func (d Document) Field(name string) (any, bool) {
	v, ok := d[name]
	return v, ok
}

// StringField returns the value stored under name coerced to a string.
// Absent values coerce to "".
func (d Document) StringField(name string) string {
	return Stringify(d[name])
}

// Stringify coerces a decoded JSON value to a string. It is total over
// the shapes encoding/json produces: nil, string, number, bool, and
// sequences thereof. Sequence elements are joined with single spaces and
// empty elements are dropped. Integral numbers render without a decimal
// point, so document numbers survive the float64 round-trip intact.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if e != "" {
				parts = append(parts, e)
			}
		}
		return strings.Join(parts, " ")
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := Stringify(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// RiskLevel grades how closely an indexed patent matches a query.
type RiskLevel string

const (
	// RiskHigh marks scores above 0.7.
	RiskHigh RiskLevel = "HIGH"
	// RiskMedium marks scores above 0.4 up to and including 0.7.
	RiskMedium RiskLevel = "MEDIUM"
	// RiskLow marks everything else.
	RiskLow RiskLevel = "LOW"
)

const (
	highRiskThreshold   = 0.7
	mediumRiskThreshold = 0.4
)

// RiskFromScore maps a similarity score to its risk label. The boundary
// values 0.7 and 0.4 map to MEDIUM and LOW respectively.
func RiskFromScore(score float64) RiskLevel {
	switch {
	case score > highRiskThreshold:
		return RiskHigh
	case score > mediumRiskThreshold:
		return RiskMedium
	default:
		return RiskLow
	}
}

// SearchResult is one ranked hit from the similarity engine.
type SearchResult struct {
	PatentID string
	Title    string
	Score    float64
	Risk     RiskLevel

	// SearchTimeMS carries the wall-clock duration of a hybrid search,
	// attached to the first result only.
	SearchTimeMS float64

	// Err marks a failed lookup reported as data. A result with Err set
	// carries no score or risk.
	Err error
}

// NotFound reports whether the result is a not-found marker produced by
// a similarity lookup for an unknown document.
func (r SearchResult) NotFound() bool {
	return errors.Is(r.Err, ErrPatentNotFound)
}

// Fingerprint identifies a corpus snapshot or a built index.
type Fingerprint uint64

// FingerprintFromContent generates a deterministic fingerprint from text
// content using BLAKE2b hashing. Identical content always produces the
// identical fingerprint.
func FingerprintFromContent(parts ...string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// String renders the fingerprint as hex.
func (f Fingerprint) String() string {
	return "0x" + strconv.FormatUint(uint64(f), 16)
}
