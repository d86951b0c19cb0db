package grade

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MinValue = 0
	MaxValue = 20
)

type Grade struct {
	ID        int     `json:"id"`
	StudentID int     `json:"eleve_id"`
	ExamID    int     `json:"examen_id"`
	SubjectID int     `json:"matiere_id"`
	Value     float64 `json:"valeur"`
}

// NewGrade contains information needed to create a new Grade.
type NewGrade struct {
	StudentID int     `json:"eleve_id" validate:"required,min=1"`
	ExamID    int     `json:"examen_id" validate:"required,min=1"`
	SubjectID int     `json:"matiere_id" validate:"required,min=1"`
	Value     float64 `json:"valeur" validate:"gradevalue"`
}

func (ng NewGrade) Validate(validate *validator.Validate) error { return validate.Struct(ng) }

// UpdateGrade defines what information may be provided to modify an existing Grade.
type UpdateGrade struct {
	StudentID *int     `json:"eleve_id,omitempty" validate:"omitempty,min=1"`
	ExamID    *int     `json:"examen_id,omitempty" validate:"omitempty,min=1"`
	SubjectID *int     `json:"matiere_id,omitempty" validate:"omitempty,min=1"`
	Value     *float64 `json:"valeur,omitempty" validate:"omitempty,gradevalue"`
}

func (ug UpdateGrade) Validate(validate *validator.Validate) error { return validate.Struct(ug) }

// Apply returns g with the fields set in ug.
func (ug UpdateGrade) Apply(g Grade) Grade {
	if ug.StudentID != nil {
		g.StudentID = *ug.StudentID
	}
	if ug.ExamID != nil {
		g.ExamID = *ug.ExamID
	}
	if ug.SubjectID != nil {
		g.SubjectID = *ug.SubjectID
	}
	if ug.Value != nil {
		g.Value = *ug.Value
	}
	return g
}

// InRange reports whether v is a valid grade value, bounds included.
func InRange(v float64) bool {
	return v >= MinValue && v <= MaxValue
}

// FormatValue formats v the French way (12,5).
func FormatValue(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}
