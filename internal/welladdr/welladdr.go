package welladdr

import (
	"iter"
	"strconv"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
)

const (
	// Rows is the number of rows on a microplate.
	Rows = 8

	// Columns is the number of columns on a microplate.
	Columns = 12

	// Count is the number of wells on a microplate.
	Count = Rows * Columns
)

const rowLetters = "ABCDEFGH"

// ToIndex converts a well address such as "C10" into its row-major index.
// The row letter is case-insensitive.
func ToIndex(name string) (int, error) {
	if len(name) < 2 {
		return 0, modelerr.NewInvalidAddress(name)
	}

	letter := name[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	row := int(letter) - 'A'
	if row < 0 || row >= Rows {
		return 0, modelerr.NewInvalidAddress(name)
	}

	digits := name[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, modelerr.NewInvalidAddress(name)
		}
	}
	col, err := strconv.Atoi(digits)
	if err != nil || col < 1 || col > Columns {
		return 0, modelerr.NewInvalidAddress(name)
	}

	return row*Columns + col - 1, nil
}

// ToName converts a row-major index into its canonical well address.
func ToName(index int) (string, error) {
	if index < 0 || index >= Count {
		return "", modelerr.NewOutOfRange("well", index, Count)
	}
	return string(rowLetters[index/Columns]) + strconv.Itoa(index%Columns+1), nil
}

// Canonical returns the canonical (upper-case row) spelling of an address.
func Canonical(name string) (string, error) {
	index, err := ToIndex(name)
	if err != nil {
		return "", err
	}
	return ToName(index)
}

// Names yields the 96 canonical addresses in row-major order, A1..H12.
// The sequence can be ranged over any number of times.
func Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for index := 0; index < Count; index++ {
			name, _ := ToName(index)
			if !yield(name) {
				return
			}
		}
	}
}
