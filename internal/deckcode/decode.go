// Package deckcode decodes the compact "KCG-" deck-code text encoding
// into an ordered list of card identifiers.
//
// A deck code is the marker followed by a payload of alphabet symbols.
// The first payload symbol is a padding descriptor; the rest carry six
// bits each. The assembled bit string, minus the descriptor's trailing
// padding, is read in ten-bit two's-complement groups, each rendered as
// a width-three decimal token, and the concatenated tokens are split
// into five-digit chunks that expand into card identifiers with repeat
// counts. Chunks carrying out-of-range data are dropped silently; only
// the code's shape can make a decode fail.
package deckcode

import "strconv"

const (
	groupBits = 10

	// placeholder pads decimal tokens to width three. It lives outside
	// '0'..'9' so trimming can still tell padding apart from genuine
	// zeros; it collapses to '0' only after trimming.
	placeholder = 'P'
)

// Decoder decodes deck codes under a fixed pair of policies. The zero
// value is not ready for use; construct one with NewDecoder. Decoders
// are immutable and safe for concurrent use.
type Decoder struct {
	padding PaddingPolicy
	trim    TrimPolicy
}

// NewDecoder returns a Decoder with the default policies, modified by
// any options.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{padding: PaddingModulo, trim: TrimPlaceholderFirst}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode decodes a deck code under the default policies. See
// Decoder.Decode.
func Decode(code string) ([]string, error) {
	return defaultDecoder.Decode(code)
}

// Decode turns a deck code into card identifiers, in order, each
// repeated by its encoded count. A well-formed code whose chunks all
// carry invalid data yields an empty, non-nil slice and no error.
func (d *Decoder) Decode(code string) ([]string, error) {
	payload, err := validatePayload(code)
	if err != nil {
		return nil, err
	}

	descriptor, _ := symbolValue(payload[0])
	trim := d.padding.trimBits(descriptor + 1)

	bits := assembleBits(payload[1:])
	if trim >= len(bits) {
		bits = bits[:0]
	} else {
		bits = bits[:len(bits)-trim]
	}

	digits := decodeGroups(bits)
	digits = trimDigits(digits, d.trim)
	for i, c := range digits {
		if c == placeholder {
			digits[i] = '0'
		}
	}
	if len(digits)%5 != 0 {
		return nil, formatErr("digit string is not chunk-aligned")
	}

	return expandChunks(digits), nil
}

// validatePayload checks the code's shape and returns the payload.
func validatePayload(code string) (string, error) {
	if len(code) < len(Marker) || code[:len(Marker)] != Marker {
		return "", formatErr("missing marker prefix")
	}
	payload := code[len(Marker):]
	if payload == "" {
		return "", formatErr("empty payload")
	}
	// Rune-wise so a multi-byte character is reported whole, not as its
	// first byte. The alphabet itself is ASCII only.
	for _, r := range payload {
		if r > 0x7f {
			return "", formatErrf("symbol outside alphabet", string(r))
		}
		if _, ok := symbolValue(byte(r)); !ok {
			return "", formatErrf("symbol outside alphabet", string(r))
		}
	}
	return payload, nil
}

// assembleBits concatenates the six-bit values of the data symbols into
// one bit string, most significant bit first.
func assembleBits(data string) []byte {
	bits := make([]byte, 0, len(data)*6)
	for i := 0; i < len(data); i++ {
		v, _ := symbolValue(data[i])
		for shift := 5; shift >= 0; shift-- {
			bits = append(bits, byte(v>>uint(shift))&1)
		}
	}
	return bits
}

// decodeGroups reads consecutive ten-bit groups as two's-complement
// integers, maps each value v to 500-v, and renders the results as
// width-three tokens padded with the placeholder. Leftover bits shorter
// than a group are discarded.
func decodeGroups(bits []byte) []byte {
	digits := make([]byte, 0, len(bits)/groupBits*3)
	for i := 0; i+groupBits <= len(bits); i += groupBits {
		u := 0
		for _, b := range bits[i : i+groupBits] {
			u = u<<1 | int(b)
		}
		if bits[i] == 1 {
			u -= 1024
		}
		tok := strconv.Itoa(500 - u)
		for pad := 3 - len(tok); pad > 0; pad-- {
			digits = append(digits, placeholder)
		}
		digits = append(digits, tok...)
	}
	return digits
}

// trimDigits shortens the digit string to a multiple of five under the
// given policy.
func trimDigits(digits []byte, policy TrimPolicy) []byte {
	r := len(digits) % 5
	if r == 0 {
		return digits
	}
	if policy == TrimStrict {
		return digits[:len(digits)-r]
	}

	// Drop up to r placeholders scanning backwards, then real trailing
	// characters for whatever is left.
	kept := make([]byte, 0, len(digits)-r)
	removed := 0
	for i := len(digits) - 1; i >= 0; i-- {
		if removed < r && digits[i] == placeholder {
			removed++
			continue
		}
		kept = append(kept, digits[i])
	}
	for l, h := 0, len(kept)-1; l < h; l, h = l+1, h-1 {
		kept[l], kept[h] = kept[h], kept[l]
	}
	if removed < r {
		kept = kept[:len(kept)-(r-removed)]
	}
	return kept
}

// expandChunks expands each surviving five-digit chunk into its card
// identifier repeated by its count. Invalid chunks contribute nothing.
func expandChunks(digits []byte) []string {
	ids := make([]string, 0, len(digits)/5)
	for i := 0; i+5 <= len(digits); i += 5 {
		id, count, ok := expandChunk(digits[i : i+5])
		if !ok {
			continue
		}
		for n := 0; n < count; n++ {
			ids = append(ids, id)
		}
	}
	return ids
}

// expandChunk decodes one chunk into an identifier and repeat count.
// ok is false when any selector or the card number is out of range.
func expandChunk(chunk []byte) (id string, count int, ok bool) {
	var c [5]int
	for i, b := range chunk {
		if b < '0' || b > '9' {
			return "", 0, false
		}
		c[i] = int(b - '0')
	}

	var table string
	switch {
	case c[4] >= 1 && c[4] <= 4:
		table = tableA
	case c[4] >= 6 && c[4] <= 9:
		table = tableB
	default:
		return "", 0, false
	}
	set := setCode(table[c[0]])

	var kind string
	switch c[1] {
	case 1:
		kind = "A"
	case 2:
		kind = "S"
	case 3:
		kind = "M"
	case 4:
		kind = "D"
	default:
		return "", 0, false
	}

	number := c[2]*10 + c[3]
	if number < 1 || number > 50 {
		return "", 0, false
	}

	return set + kind + "-" + strconv.Itoa(number), c[4] % 5, true
}
