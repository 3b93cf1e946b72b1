package geometry

import (
	"errors"
	"fmt"
)

// Family identifies the spatial topology of the homogeneous 4-geometry.
// The set is closed: exactly three families exist and every switch over
// Family handles all of them.
type Family int

const (
	// Round is the (squashed) 3-sphere crossed with a circle, S³×S¹.
	Round Family = iota

	// Flat is the 3-torus crossed with a circle, T³×S¹. Its frame is
	// abelian: every structure constant vanishes.
	Flat

	// Nilpotent is the Heisenberg nilmanifold crossed with a circle,
	// Nil³×S¹.
	Nilpotent
)

// familyNames keeps String and ParseFamily in sync.
var familyNames = map[Family]string{
	Round:     "round",
	Flat:      "flat",
	Nilpotent: "nilpotent",
}

// String returns the lowercase family name used in configs and CSV output.
func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}

	return fmt.Sprintf("family(%d)", int(f))
}

// Valid reports whether f is one of the three known families.
func (f Family) Valid() bool {
	_, ok := familyNames[f]

	return ok
}

// ParseFamily maps a lowercase family name back to its tag.
func ParseFamily(name string) (Family, error) {
	for f, n := range familyNames {
		if n == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("geometry: %w: %q", ErrUnknownFamily, name)
}

var (
	// ErrUnknownFamily is returned when a Family tag or name is outside
	// the closed three-member set.
	ErrUnknownFamily = errors.New("geometry: unknown family")

	// ErrScaleDomain is returned when the scale parameter is not a
	// finite positive number.
	ErrScaleDomain = errors.New("geometry: scale must be finite and > 0")

	// ErrAnisotropyDomain is returned when the anisotropy parameter is
	// not finite or does not exceed -1 (the frame degenerates there).
	ErrAnisotropyDomain = errors.New("geometry: anisotropy must be finite and > -1")

	// ErrCircumferenceDomain is returned when the circle circumference
	// is not a finite positive number.
	ErrCircumferenceDomain = errors.New("geometry: circumference must be finite and > 0")
)
