package core

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	fr_translations "github.com/go-playground/validator/v10/translations/fr"
)

const (
	LocaleEN = "en"
	LocaleFR = "fr"
)

var (
	// custom validation tags & texts
	notBlankTag    = "notblank"
	notBlankTextEN = "this field cannot be blank"
	notBlankTextFR = "ce champ ne peut pas être vide"

	isoDateTag    = "isodate"
	isoDateTextEN = "must be a date (YYYY-MM-DD)"
	isoDateTextFR = "doit être une date (AAAA-MM-JJ)"

	requiredTag    = "required"
	requiredTextEN = "this field is required"
	requiredTextFR = "ce champ est requis"
)

// NewTranslator returns the translator of locale ("fr" or "en"; anything else falls back to "fr").
func NewTranslator(locale string) ut.Translator {
	_fr := fr.New()
	_en := en.New()
	uni := ut.New(_fr, _fr, _en)
	translator, found := uni.GetTranslator(strings.ToLower(locale))
	if !found {
		translator, _ = uni.GetTranslator(LocaleFR)
	}
	return translator
}

// Localized picks the text matching the translator's locale.
func Localized(translator ut.Translator, textEN, textFR string) string {
	if translator != nil && translator.Locale() == LocaleEN {
		return textEN
	}
	return textFR
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	if translator.Locale() == LocaleEN {
		_ = en_translations.RegisterDefaultTranslations(validate, translator)
	} else {
		_ = fr_translations.RegisterDefaultTranslations(validate, translator)
	}

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, Localized(translator, notBlankTextEN, notBlankTextFR))

	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(validate, translator, isoDateTag, Localized(translator, isoDateTextEN, isoDateTextFR))

	RegisterCustomTranslation(validate, translator, requiredTag, Localized(translator, requiredTextEN, requiredTextFR), true)
}

// NewValidator returns a validator ready for use with translated error messages.
func NewValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	InitValidators(validate, translator)
	return validate
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ParseDate accepts an ISO date (2006-01-02) or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Custom Global Validators

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func isoDateValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		_, err := ParseDate(str)
		return err == nil
	}
	return false
}
