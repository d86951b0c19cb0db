package exam

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
	"github.com/trezcool/carnet/core/grade"
	"github.com/trezcool/carnet/core/subject"
)

const (
	UnknownDate = "Date inconnue"
	DateLayout  = "02/01/2006"
)

type Exam struct {
	ID        int              `json:"id"`
	SubjectID int              `json:"matiere_id"`
	Subject   *subject.Subject `json:"matiere,omitempty"`
	Date      string           `json:"date"`
	Grades    []grade.Grade    `json:"notes,omitempty"`
}

// DateLabel formats the exam date for display, or returns UnknownDate.
func (e Exam) DateLabel() string {
	return FormatDate(e.Date)
}

// FormatDate formats an API date (ISO or RFC 3339) as DateLayout.
func FormatDate(date string) string {
	t, err := core.ParseDate(date)
	if err != nil {
		return UnknownDate
	}
	return t.Format(DateLayout)
}

// NewExam contains information needed to create a new Exam.
type NewExam struct {
	SubjectID int    `json:"matiere_id" validate:"required,min=1"`
	Date      string `json:"date" validate:"required,isodate"`
}

func (ne *NewExam) Validate(validate *validator.Validate) error {
	ne.Date = core.CleanString(ne.Date)
	return validate.Struct(ne)
}

// UpdateExam defines what information may be provided to modify an existing Exam.
type UpdateExam struct {
	SubjectID *int    `json:"matiere_id,omitempty" validate:"omitempty,min=1"`
	Date      *string `json:"date,omitempty" validate:"omitempty,isodate"`
}

func (ue *UpdateExam) Validate(validate *validator.Validate) error {
	if ue.Date != nil {
		*ue.Date = core.CleanString(*ue.Date)
	}
	return validate.Struct(ue)
}

// Apply returns e with the fields set in ue.
func (ue UpdateExam) Apply(e Exam) Exam {
	if ue.SubjectID != nil {
		e.SubjectID = *ue.SubjectID
		e.Subject = nil
	}
	if ue.Date != nil {
		e.Date = *ue.Date
	}
	return e
}
