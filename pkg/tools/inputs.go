package tools

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StringList accepts either a single JSON string or an array of strings, so
// tools can offer batch lookups without a separate parameter.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or an array of strings")
	}

	*l = many
	return nil
}

var inputValidator = validator.New()

// decodeInput unmarshals a tool's raw JSON arguments into its typed input
// struct and validates it. Unknown fields are ignored; a missing required
// field yields a descriptive error the model can act on.
func decodeInput(raw json.RawMessage, target any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("invalid tool input: %w", err)
	}

	if err := inputValidator.Struct(target); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		for _, fieldError := range validationErrors {
			return fmt.Errorf("invalid tool input: field %q failed %q validation", fieldError.Field(), fieldError.Tag())
		}
	}

	return nil
}
