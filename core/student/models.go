package student

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

// Class levels
const (
	LevelL1 = "L1"
	LevelL2 = "L2"
	LevelL3 = "L3"
	LevelM1 = "M1"
	LevelM2 = "M2"

	// filter pseudo-levels matching every student
	AllLevels    = "All"
	AllLevelsFR  = "Tous"
	UnknownLabel = "Élève inconnu"
)

var ClassLevels = []string{LevelL1, LevelL2, LevelL3, LevelM1, LevelM2}

type Student struct {
	ID        int        `json:"id"`
	LastName  string     `json:"nom"`
	FirstName string     `json:"prenom"`
	Class     string     `json:"classe"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// FullName returns "prenom nom", or UnknownLabel when both are blank.
func (s Student) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
	if name == "" {
		return UnknownLabel
	}
	return name
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	LastName  string `json:"nom" validate:"required,notblank"`
	FirstName string `json:"prenom" validate:"required,notblank"`
	Class     string `json:"classe" validate:"required,notblank"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.LastName = core.CleanString(ns.LastName)
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.Class = core.CleanString(ns.Class)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	LastName  *string `json:"nom,omitempty" validate:"omitempty,notblank"`
	FirstName *string `json:"prenom,omitempty" validate:"omitempty,notblank"`
	Class     *string `json:"classe,omitempty" validate:"omitempty,notblank"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	cleanPtr(us.LastName)
	cleanPtr(us.FirstName)
	cleanPtr(us.Class)
	return validate.Struct(us)
}

// Apply returns s with the fields set in us.
func (us UpdateStudent) Apply(s Student) Student {
	if us.LastName != nil {
		s.LastName = *us.LastName
	}
	if us.FirstName != nil {
		s.FirstName = *us.FirstName
	}
	if us.Class != nil {
		s.Class = *us.Class
	}
	return s
}

func cleanPtr(s *string) {
	if s != nil {
		*s = core.CleanString(*s)
	}
}
