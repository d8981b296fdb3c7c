package handlers

import (
	"html/template"
	"strings"

	"a11ypack/internal/form"
)

func templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(args ...int) int {
			sum := 0
			for _, v := range args {
				sum += v
			}
			return sum
		},
		"inputType": inputType,
		// describedBy joins the non-empty IDs for aria-describedby.
		"describedBy": func(ids ...string) string {
			parts := make([]string, 0, len(ids))
			for _, id := range ids {
				if trimmed := strings.TrimSpace(id); trimmed != "" {
					parts = append(parts, trimmed)
				}
			}
			return strings.Join(parts, " ")
		},
		"upper": strings.ToUpper,
	}
}

func inputType(input form.Input) string {
	switch input {
	case form.InputEmail:
		return "email"
	case form.InputTel:
		return "tel"
	case form.InputCheckbox:
		return "checkbox"
	default:
		return "text"
	}
}
