package deckcode

// Marker is the fixed prefix every deck code starts with.
const Marker = "KCG-"

// alphabet is the 64-symbol wire alphabet. A symbol's position is its
// 6-bit value; the order is the codec's contract and must never change.
const alphabet = "AIQYgow5BJRZhpx6CKSaiqy7DLTbjrz8EMUcks19FNVdlt2!GOWemu3?HPXfnv4/"

// Expansion tables mapping a chunk digit (0-9) to a card-set symbol.
// The first symbol of each table stands for a multi-letter set code:
// 'e' for "ex" and 'p' for "prm".
const (
	tableA = "eABCDEFGHI"
	tableB = "pJKLMNOPQR"
)

const invalidSymbol = 0xFF

// symbolValues maps a byte to its alphabet position, or invalidSymbol.
var symbolValues [256]byte

func init() {
	if len(alphabet) != 64 {
		panic("deck code alphabet is not 64 symbols long")
	}
	for i := range symbolValues {
		symbolValues[i] = invalidSymbol
	}
	for i := 0; i < len(alphabet); i++ {
		if symbolValues[alphabet[i]] != invalidSymbol {
			panic("deck code alphabet contains a duplicate symbol")
		}
		symbolValues[alphabet[i]] = byte(i)
	}
}

// symbolValue returns the 6-bit value of c and whether c is in the alphabet.
func symbolValue(c byte) (int, bool) {
	v := symbolValues[c]
	if v == invalidSymbol {
		return 0, false
	}
	return int(v), true
}

// setCode expands a table symbol to its card-set code.
func setCode(symbol byte) string {
	switch symbol {
	case 'e':
		return "ex"
	case 'p':
		return "prm"
	default:
		return string(symbol)
	}
}
