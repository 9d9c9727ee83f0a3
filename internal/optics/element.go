package optics

import (
	"fmt"
	"strings"

	"github.com/san-kum/physkit/internal/phys"
)

// Element is one component of an optical train.
type Element interface {
	Matrix() (Matrix, error)
	Kind() ElementKind
}

// ElementKind enumerates the supported element types.
type ElementKind int

const (
	KindFreeSpace ElementKind = iota
	KindThinLens
	KindFlatInterface
)

func (k ElementKind) String() string {
	switch k {
	case KindFreeSpace:
		return "free_space"
	case KindThinLens:
		return "thin_lens"
	case KindFlatInterface:
		return "flat_interface"
	default:
		return fmt.Sprintf("ElementKind(%d)", int(k))
	}
}

// ParseElementKind accepts the snake_case names and a few short aliases.
func ParseElementKind(s string) (ElementKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free_space", "space", "d":
		return KindFreeSpace, nil
	case "thin_lens", "lens", "f":
		return KindThinLens, nil
	case "flat_interface", "interface", "refraction", "n":
		return KindFlatInterface, nil
	}
	return 0, phys.Errorf("optics.ParseElementKind", phys.ErrInvalidInput, "unknown element %q", s)
}

// FreeSpace is propagation over Distance metres.
type FreeSpace struct {
	Distance float64
}

func (e FreeSpace) Kind() ElementKind { return KindFreeSpace }

func (e FreeSpace) Matrix() (Matrix, error) {
	return Matrix{A: 1, B: e.Distance, C: 0, D: 1}, nil
}

// ThinLens has focal length FocalLength metres (negative for diverging).
type ThinLens struct {
	FocalLength float64
}

func (e ThinLens) Kind() ElementKind { return KindThinLens }

func (e ThinLens) Matrix() (Matrix, error) {
	if e.FocalLength == 0 {
		return Matrix{}, phys.Errorf("optics.ThinLens", phys.ErrDivisionByZero, "focal length is zero")
	}
	m := Matrix{A: 1, B: 0, C: -1 / e.FocalLength, D: 1}
	if !m.Finite() {
		return Matrix{}, phys.Errorf("optics.ThinLens", phys.ErrOutOfRange, "focal length %g gives non-finite power", e.FocalLength)
	}
	return m, nil
}

// FlatInterface is refraction at a plane boundary from index NIn to NOut.
type FlatInterface struct {
	NIn  float64
	NOut float64
}

func (e FlatInterface) Kind() ElementKind { return KindFlatInterface }

func (e FlatInterface) Matrix() (Matrix, error) {
	if e.NOut == 0 {
		return Matrix{}, phys.Errorf("optics.FlatInterface", phys.ErrDivisionByZero, "output index is zero")
	}
	m := Matrix{A: 1, B: 0, C: 0, D: e.NIn / e.NOut}
	if !m.Finite() {
		return Matrix{}, phys.Errorf("optics.FlatInterface", phys.ErrOutOfRange, "index ratio %g/%g is not finite", e.NIn, e.NOut)
	}
	return m, nil
}
