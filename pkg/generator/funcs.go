package generator

import (
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// defaultFuncMap returns the default template function map
func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		// Case conversion
		"pascalCase": PascalCase, // main-view → MainView
		"camelCase":  CamelCase,  // main-view → mainView
		"kebabCase":  KebabCase,  // MainView → main-view

		// String manipulation
		"quote":   Quote,
		"upper":   strings.ToUpper,
		"lower":   strings.ToLower,
		"title":   Title,
		"trim":    strings.TrimSpace,
		"replace": strings.ReplaceAll,

		// Utilities
		"dict":    Dict,
		"default": Default,
		"year":    func() int { return time.Now().Year() },
	}
}

// splitWords breaks an identifier on dashes, underscores, dots and spaces.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})
}

// PascalCase converts kebab-case or snake_case to PascalCase.
// Letters after the first of each word keep their case, so "Main" and
// "mainView" come back as "Main" and "MainView".
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range splitWords(s) {
		b.WriteString(strings.ToUpper(w[:1]) + w[1:])
	}
	return b.String()
}

// CamelCase is PascalCase with a lower-case first letter.
func CamelCase(s string) string {
	p := PascalCase(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// KebabCase converts PascalCase, camelCase or snake_case to kebab-case.
// Examples: MainView → main-view, user_name → user-name
func KebabCase(s string) string {
	var b strings.Builder
	for i, w := range splitWords(s) {
		if i > 0 {
			b.WriteByte('-')
		}
		for j, r := range w {
			if unicode.IsUpper(r) && j > 0 {
				prev := rune(w[j-1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					b.WriteByte('-')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Title converts a string to title case using English casing rules.
func Title(s string) string {
	return titleCaser.String(s)
}

// Quote wraps a string in double quotes
func Quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// Dict creates a map from alternating key-value pairs
// Usage in template: {{ template "partial" (dict "key1" val1 "key2" val2) }}
func Dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}

	result := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings, got %T at position %d", values[i], i)
		}
		result[key] = values[i+1]
	}
	return result, nil
}

// Default returns the default value if the given value is nil or an empty string
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
