package domain

// EntityMatch is a detected PII span. Start and End are half-open byte
// offsets into the text the detection ran over: the pre-redaction chunk
// text. Persisted records keep these offsets unchanged even though the
// stored chunk text is the redacted form, so consumers must not use
// them to slice the stored text.
type EntityMatch struct {
	// Type is the detection category.
	Type Category `json:"type"`

	// Start is the inclusive byte offset of the span.
	Start int `json:"start"`

	// End is the exclusive byte offset of the span.
	End int `json:"end"`
}

// Valid reports whether the match offsets are coherent for a text of
// the given byte length: 0 <= Start < End <= length.
func (e EntityMatch) Valid(length int) bool {
	return e.Start >= 0 && e.Start < e.End && e.End <= length
}
