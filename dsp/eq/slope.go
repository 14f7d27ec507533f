package eq

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSlope is returned for slopes outside 12..48 dB/oct.
var ErrInvalidSlope = errors.New("eq: invalid slope")

// Slope selects the steepness of a cut filter. The value is the choice index
// exposed to hosts: Slope12 is 0, Slope48 is 3.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// MaxStages is the number of second-order stages a cut cascade can hold,
// enough for the steepest slope.
const MaxStages = int(Slope48) + 1

// Slopes lists every valid slope in ascending steepness.
var Slopes = [...]Slope{Slope12, Slope24, Slope36, Slope48}

// Valid reports whether s is one of the four defined slopes.
func (s Slope) Valid() bool {
	return s >= Slope12 && s <= Slope48
}

// Stages returns how many second-order stages are active for s.
func (s Slope) Stages() int {
	return int(s) + 1
}

// Order returns the Butterworth filter order designed for s.
func (s Slope) Order() int {
	return 2 * s.Stages()
}

// DBPerOctave returns the asymptotic roll-off of s.
func (s Slope) DBPerOctave() int {
	return 12 * s.Stages()
}

func (s Slope) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slope(%d)", int(s))
	}

	return fmt.Sprintf("%d dB/Oct", s.DBPerOctave())
}

// SlopeFromDB maps a roll-off in dB/oct (12, 24, 36 or 48) to a Slope.
func SlopeFromDB(db int) (Slope, error) {
	if db%12 != 0 {
		return 0, fmt.Errorf("%w: %d dB/oct", ErrInvalidSlope, db)
	}

	s := Slope(db/12 - 1)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d dB/oct", ErrInvalidSlope, db)
	}

	return s, nil
}

// ParseSlope parses "24", "24db", "24 dB/Oct" and similar spellings.
func ParseSlope(text string) (Slope, error) {
	t := strings.ToLower(strings.ReplaceAll(text, " ", ""))
	t = strings.TrimSuffix(t, "/oct")
	t = strings.TrimSuffix(t, "db")

	db, err := strconv.Atoi(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSlope, text)
	}

	return SlopeFromDB(db)
}

// MarshalText encodes s as its dB/oct value.
func (s Slope) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSlope, int(s))
	}

	return []byte(strconv.Itoa(s.DBPerOctave())), nil
}

// UnmarshalText accepts any spelling understood by [ParseSlope].
func (s *Slope) UnmarshalText(text []byte) error {
	v, err := ParseSlope(string(text))
	if err != nil {
		return err
	}

	*s = v

	return nil
}
