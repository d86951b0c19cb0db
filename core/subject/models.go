package subject

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

// UnknownLabel is displayed when a subject cannot be resolved.
const UnknownLabel = "Matière inconnue"

type Subject struct {
	ID   int    `json:"id"`
	Name string `json:"nom"`
}

// Label returns the subject name, or UnknownLabel when blank.
func (s Subject) Label() string {
	if name := core.CleanString(s.Name); name != "" {
		return name
	}
	return UnknownLabel
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name string `json:"nom" validate:"required,notblank"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
type UpdateSubject struct {
	Name *string `json:"nom,omitempty" validate:"omitempty,notblank"`
}

func (us *UpdateSubject) Validate(validate *validator.Validate) error {
	if us.Name != nil {
		*us.Name = core.CleanString(*us.Name)
	}
	return validate.Struct(us)
}

// Apply returns s with the fields set in us.
func (us UpdateSubject) Apply(s Subject) Subject {
	if us.Name != nil {
		s.Name = *us.Name
	}
	return s
}

// Search does a case-insensitive match of query on the subject names.
func Search(subjects []Subject, query string) []Subject {
	query = core.CleanString(query)
	if query == "" {
		return subjects
	}
	filtered := make([]Subject, 0, len(subjects))
	for _, s := range subjects {
		if core.ContainsFold(s.Name, query) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
