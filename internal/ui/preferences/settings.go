package preferences

import (
	"errors"
	"fmt"
	"strconv"

	"dreamytimer/internal/core/model"
)

// Values is the editable form state derived from the configuration.
type Values struct {
	WorkMinutes  string
	BreakMinutes string
	Theme        model.Theme
	SoundEnabled bool
	SavedGoals   []string
}

// FromConfig converts a configuration to form values.
func FromConfig(config model.Configuration) Values {
	return Values{
		WorkMinutes:  strconv.Itoa(config.WorkDurationSeconds / 60),
		BreakMinutes: strconv.Itoa(config.BreakDurationSeconds / 60),
		Theme:        config.Theme,
		SoundEnabled: config.SoundEnabled,
		SavedGoals:   append([]string(nil), config.SavedGoals...),
	}
}

// ErrorText turns a duration error into a message for the form.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	field := "Duration"
	var validation *model.ValidationError
	if errors.As(err, &validation) && validation.Field != "" {
		field = capitalize(validation.Field)
	}
	switch {
	case errors.Is(err, model.ErrNotANumber):
		return fmt.Sprintf("%s: please enter a whole number", field)
	case errors.Is(err, model.ErrOutOfRange):
		return fmt.Sprintf("%s: choose between %d and %d", field, model.MinDurationMinutes, model.MaxDurationMinutes)
	default:
		return err.Error()
	}
}

func capitalize(text string) string {
	if text == "" {
		return text
	}
	runes := []rune(text)
	if runes[0] >= 'a' && runes[0] <= 'z' {
		runes[0] -= 'a' - 'A'
	}
	return string(runes)
}
