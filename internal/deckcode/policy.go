package deckcode

// PaddingPolicy selects how the padding descriptor's alphabet position N
// (1-based) is turned into a count of trailing bits to discard. Known
// revisions of the encoder's counterpart disagree on the formula, so the
// choice is explicit and pinned by tests rather than silently unified.
type PaddingPolicy int

const (
	// PaddingModulo discards (8 - N mod 8) mod 8 bits. This is the
	// default: it is the inverse of padding a 6-bit stream out to a
	// byte boundary.
	PaddingModulo PaddingPolicy = iota

	// PaddingLegacy discards 8 - (floor(N/8) + 1) bits unless N is a
	// multiple of 8, in which case it discards none. Matches older
	// revisions of the decoder.
	PaddingLegacy
)

func (p PaddingPolicy) trimBits(n int) int {
	switch p {
	case PaddingLegacy:
		if n%8 == 0 {
			return 0
		}
		return 8 - (n/8 + 1)
	default:
		return (8 - n%8) % 8
	}
}

// TrimPolicy selects how a digit string whose length is not a multiple
// of five is shortened. The two observed revisions differ whenever
// placeholder characters and real digits are interleaved near the end.
type TrimPolicy int

const (
	// TrimPlaceholderFirst removes placeholder characters scanning
	// backwards from the end, up to the excess length, and only then
	// drops real trailing digits for any remainder. The default.
	TrimPlaceholderFirst TrimPolicy = iota

	// TrimStrict unconditionally drops the trailing excess characters.
	TrimStrict
)

// Option configures a Decoder.
type Option func(*Decoder)

// WithPaddingPolicy overrides the padding-trim formula.
func WithPaddingPolicy(p PaddingPolicy) Option {
	return func(d *Decoder) { d.padding = p }
}

// WithTrimPolicy overrides the digit-string trim policy.
func WithTrimPolicy(t TrimPolicy) Option {
	return func(d *Decoder) { d.trim = t }
}
