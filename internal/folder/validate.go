package folder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

const forbiddenNameChars = `<>:"/\|?*`

// Validation reasons carried by ValidationError.
const (
	ReasonEmpty             = "empty"
	ReasonTooLong           = "too_long"
	ReasonInvalidCharacters = "invalid_characters"
	ReasonInvalidColor      = "invalid_color"
)

// Validator checks folder input before anything is written.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

type folderInput struct {
	Name  string `json:"name" validate:"foldername_required,foldername_length,foldername_chars"`
	Color string `json:"color" validate:"omitempty,palette"`
}

// colorChange is a color replacing an existing one; it may not be empty.
type colorChange struct {
	Color string `json:"color" validate:"palette"`
}

// NewValidator creates a Validator with English messages.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag:     "foldername_required",
			fn:      func(fl validator.FieldLevel) bool { return strings.TrimSpace(fl.Field().String()) != "" },
			message: "Folder name cannot be empty",
		},
		{
			tag:     "foldername_length",
			fn:      func(fl validator.FieldLevel) bool { return utf8.RuneCountInString(fl.Field().String()) <= MaxNameLength },
			message: fmt.Sprintf("Folder name cannot exceed %d characters", MaxNameLength),
		},
		{
			tag:     "foldername_chars",
			fn:      func(fl validator.FieldLevel) bool { return !strings.ContainsAny(fl.Field().String(), forbiddenNameChars) },
			message: `Folder name cannot contain any of < > : " / \ | ? *`,
		},
		{
			tag:     "palette",
			fn:      func(fl validator.FieldLevel) bool { return IsPaletteColor(fl.Field().String()) },
			message: "Folder color must be one of the palette colors",
		},
	}
	for _, rule := range rules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s validation: %w", rule.tag, err)
		}
		message := rule.message
		tag := rule.tag
		if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, message, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag)
			return t
		}); err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &Validator{validate: validate, translator: trans}, nil
}

var reasons = map[string]string{
	"foldername_required": ReasonEmpty,
	"foldername_length":   ReasonTooLong,
	"foldername_chars":    ReasonInvalidCharacters,
	"palette":             ReasonInvalidColor,
}

// ValidateName checks a folder name.
func (v *Validator) ValidateName(name string) error {
	return v.check(folderInput{Name: name})
}

// ValidateColor checks a folder color. An empty color is accepted.
func (v *Validator) ValidateColor(color string) error {
	return v.check(folderInput{Name: "-", Color: color})
}

// ValidateColorChange checks a color that replaces a folder's current color.
// Unlike ValidateColor it rejects an empty color.
func (v *Validator) ValidateColorChange(color string) error {
	return v.check(colorChange{Color: color})
}

func (v *Validator) check(in any) error {
	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate folder: %w", err)
	}
	// Rules are declared in the order users should fix them; report the first.
	fe := validationErrors[0]
	return &ValidationError{
		Field:   fe.Field(),
		Reason:  reasons[fe.Tag()],
		Message: fe.Translate(v.translator),
	}
}
