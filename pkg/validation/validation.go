package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field limits enforced both here and by the remote store rules.
const (
	MaxCityNameLength = 100
	MaxNoteLength     = 500
)

var validate = validator.New()

// FavoriteInput carries the caller-editable fields of a favorite entry
// for validation before a remote write.
type FavoriteInput struct {
	CityName  string  `validate:"required,min=1,max=100"`
	Country   string  `validate:"max=100"`
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
	Note      string  `validate:"max=500"`
}

// ValidateFavorite checks favorite fields against the store constraints.
func ValidateFavorite(input FavoriteInput) error {
	input.CityName = strings.TrimSpace(input.CityName)
	return validate.Struct(input)
}

// ValidateNote checks a note update in isolation.
func ValidateNote(note string) error {
	return validate.Var(note, "max=500")
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
