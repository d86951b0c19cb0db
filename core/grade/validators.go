package grade

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/carnet/core"
)

var (
	gradeValueTag    = "gradevalue"
	gradeValueTextEN = fmt.Sprintf("the grade must be between %d and %d", MinValue, MaxValue)
	gradeValueTextFR = fmt.Sprintf("la note doit être entre %d et %d", MinValue, MaxValue)

	notNumericTextEN = "must be a number"
	notNumericTextFR = "doit être un nombre"

	notIDTextEN = "must be a positive identifier"
	notIDTextFR = "doit être un identifiant positif"
)

// InitValidators registers the grade validators on validate.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeValueTag, gradeValueValidation)
	core.RegisterCustomTranslation(validate, translator, gradeValueTag, core.Localized(translator, gradeValueTextEN, gradeValueTextFR))
}

func gradeValueValidation(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		v := field.Float()
		return !math.IsNaN(v) && InRange(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return InRange(float64(field.Int()))
	}
	return false
}

// Form is the raw text input of a grade form.
type Form struct {
	StudentID string
	ExamID    string
	SubjectID string
	Value     string
}

// Parse converts the text input into a NewGrade.
// Non-numeric fields are reported as field errors, the range is checked by NewGrade.Validate.
func (f Form) Parse(translator ut.Translator) (NewGrade, error) {
	var (
		ng   NewGrade
		errs []core.FieldError
		err  error
	)
	parseID := func(field, raw string, dst *int) {
		raw = core.CleanString(raw)
		if raw == "" {
			return // left to "required"
		}
		if *dst, err = strconv.Atoi(raw); err != nil || *dst < 1 {
			errs = append(errs, core.FieldError{Field: field, Error: core.Localized(translator, notIDTextEN, notIDTextFR)})
		}
	}
	parseID("eleve_id", f.StudentID, &ng.StudentID)
	parseID("examen_id", f.ExamID, &ng.ExamID)
	parseID("matiere_id", f.SubjectID, &ng.SubjectID)

	if ng.Value, err = ParseValue(f.Value); err != nil {
		errs = append(errs, core.FieldError{Field: "valeur", Error: core.Localized(translator, notNumericTextEN, notNumericTextFR)})
	}

	if len(errs) > 0 {
		return NewGrade{}, core.NewValidationError(nil, errs...)
	}
	return ng, nil
}

// ParseValue parses a grade value typed by a user. Both "12.5" and "12,5" are accepted.
func ParseValue(raw string) (float64, error) {
	raw = strings.Replace(core.CleanString(raw), ",", ".", 1)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// ParseUpdate converts the text input into an UpdateGrade. Blank fields are left unchanged.
func (f Form) ParseUpdate(translator ut.Translator) (UpdateGrade, error) {
	var (
		ug   UpdateGrade
		errs []core.FieldError
	)
	parseID := func(field, raw string) *int {
		raw = core.CleanString(raw)
		if raw == "" {
			return nil
		}
		id, err := strconv.Atoi(raw)
		if err != nil || id < 1 {
			errs = append(errs, core.FieldError{Field: field, Error: core.Localized(translator, notIDTextEN, notIDTextFR)})
			return nil
		}
		return &id
	}
	ug.StudentID = parseID("eleve_id", f.StudentID)
	ug.ExamID = parseID("examen_id", f.ExamID)
	ug.SubjectID = parseID("matiere_id", f.SubjectID)

	if core.CleanString(f.Value) != "" {
		v, err := ParseValue(f.Value)
		if err != nil {
			errs = append(errs, core.FieldError{Field: "valeur", Error: core.Localized(translator, notNumericTextEN, notNumericTextFR)})
		} else {
			ug.Value = &v
		}
	}

	if len(errs) > 0 {
		return UpdateGrade{}, core.NewValidationError(nil, errs...)
	}
	return ug, nil
}
