package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type form struct {
	Name string  `json:"nom" validate:"required,notblank"`
	Date string  `json:"date" validate:"omitempty,isodate"`
	Note *string `json:"note,omitempty" validate:"omitempty,notblank"`
}

func TestValidator_messages(t *testing.T) {
	blank := "  "
	tests := []struct {
		name   string
		locale string
		form   form
		want   map[string]string
	}{
		{name: "valid", locale: LocaleFR, form: form{Name: "Awa", Date: "2024-01-15"}},
		{name: "rfc3339 date", locale: LocaleFR, form: form{Name: "Awa", Date: "2024-01-15T08:00:00Z"}},
		{name: "required", locale: LocaleFR, form: form{}, want: map[string]string{"nom": "ce champ est requis"}},
		{name: "blank", locale: LocaleFR, form: form{Name: " "}, want: map[string]string{"nom": "ce champ ne peut pas être vide"}},
		{name: "blank pointer", locale: LocaleFR, form: form{Name: "Awa", Note: &blank}, want: map[string]string{"note": "ce champ ne peut pas être vide"}},
		{name: "bad date", locale: LocaleFR, form: form{Name: "Awa", Date: "15/01/2024"}, want: map[string]string{"date": "doit être une date (AAAA-MM-JJ)"}},
		{name: "english", locale: LocaleEN, form: form{Date: "lol"}, want: map[string]string{"nom": "this field is required", "date": "must be a date (YYYY-MM-DD)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator := NewTranslator(tt.locale)
			err := NewValidator(translator).Struct(tt.form)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, IsValidation(err))
			assert.Equal(t, tt.want, FieldMessages(err, translator))
		})
	}
}

func TestNewTranslator_fallback(t *testing.T) {
	assert.Equal(t, LocaleFR, NewTranslator("sw").Locale())
	assert.Equal(t, LocaleEN, NewTranslator("EN").Locale())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(nil, FieldError{Field: "eleve_id", Error: "référence inconnue"})
	assert.True(t, IsValidation(err))
	assert.Equal(t, "eleve_id: référence inconnue", err.Error())
	assert.Equal(t, map[string]string{"eleve_id": "référence inconnue"}, FieldMessages(err, nil))

	assert.False(t, IsValidation(errors.New("boom")))
	assert.Nil(t, FieldMessages(errors.New("boom"), nil))
	assert.False(t, IsValidation(NewArgumentError("classe inconnue")))
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"2024-01-15", " 2024-01-15 ", "2024-01-15T10:30:00+01:00"} {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "15/01/2024", "2024-13-01"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
		}
	}
}
