package forms

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/javajoker/permit-portal/internal/utils"
)

// Result maps field paths to a human-readable violation. An empty result is success.
type Result struct {
	Violations map[string]string `json:"violations"`
}

func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

func (r Result) Has(path string) bool {
	_, ok := r.Violations[path]
	return ok
}

// Paths returns the violated paths in sorted order.
func (r Result) Paths() []string {
	paths := make([]string, 0, len(r.Violations))
	for p := range r.Violations {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Restrict keeps only violations at or beneath the given paths.
func (r Result) Restrict(paths []string) Result {
	out := Result{Violations: map[string]string{}}
	for path, msg := range r.Violations {
		if coveredBy(path, paths) {
			out.Violations[path] = msg
		}
	}
	return out
}

// Validate checks values against every independent field constraint and then every
// conditional rule. Fields the schema does not declare are ignored.
func Validate(schema *Schema, values map[string]any) Result {
	result := Result{Violations: map[string]string{}}

	for i := range schema.Fields {
		field := &schema.Fields[i]
		value, _ := Lookup(values, field.Path)
		if msg := checkField(field, value); msg != "" {
			result.Violations[field.Path] = msg
		}
	}

	for _, rule := range schema.Rules {
		if result.Has(rule.When.Path) || result.Has(parentPath(rule.When.Path)) {
			continue
		}
		if result.Has(rule.Target) {
			continue
		}
		current, _ := Lookup(values, rule.When.Path)
		if !rule.When.Matches(current) {
			continue
		}
		field := schema.Field(rule.Target)
		target, _ := Lookup(values, rule.Target)
		if rule.Constraint == ConstraintRequired && isEmptyFor(field, target) {
			result.Violations[rule.Target] = rule.message(field)
		}
	}

	return result
}

// Matches compares the condition's expected value with the current one using the
// expected value's type: booleans accept form strings, numbers accept numeric strings.
func (c Condition) Matches(value any) bool {
	switch expected := c.Equals.(type) {
	case bool:
		actual, ok := toBool(value)
		if !ok && value == nil {
			return !expected
		}
		return ok && actual == expected
	case string:
		actual, ok := value.(string)
		return ok && strings.TrimSpace(actual) == expected
	case nil:
		return isBlank(value)
	default:
		want, ok := toFloat(expected)
		if !ok {
			return false
		}
		got, ok := toFloat(value)
		return ok && got == want
	}
}

func (r Rule) message(field *Field) string {
	if r.Message != "" {
		return r.Message
	}
	return requiredMessage(field, r.Target)
}

func requiredMessage(field *Field, path string) string {
	if field == nil {
		return path + " is required"
	}
	if field.Message != "" {
		return field.Message
	}
	switch field.Kind {
	case KindBooleanSet:
		return fmt.Sprintf("Select at least one option for %s", field.Label)
	case KindBoolean:
		return fmt.Sprintf("%s must be accepted", field.Label)
	case KindAttachment:
		return fmt.Sprintf("%s must be attached", field.Label)
	}
	return fmt.Sprintf("%s is required", field.Label)
}

// isEmptyFor decides emptiness using the target field's kind when it is known.
func isEmptyFor(field *Field, value any) bool {
	if isBlank(value) {
		return true
	}
	if field == nil {
		return false
	}
	switch field.Kind {
	case KindBoolean:
		b, ok := toBool(value)
		return ok && !b
	case KindBooleanSet:
		selected, ok := selectedOptions(field, value)
		return ok && len(selected) == 0
	}
	return false
}

// selectedOptions returns the checked keys of a boolean set, keeping only keys the
// field declares when it has an option list.
func selectedOptions(field *Field, value any) ([]string, bool) {
	selected, ok := selection(value)
	if !ok || len(field.Options) == 0 {
		return selected, ok
	}
	known := selected[:0:0]
	for _, key := range selected {
		if contains(field.Options, key) {
			known = append(known, key)
		}
	}
	return known, true
}

func checkField(field *Field, value any) string {
	if isEmptyFor(field, value) {
		if field.Required || field.MinSelected > 0 {
			return requiredMessage(field, field.Path)
		}
		return ""
	}

	switch field.Kind {
	case KindText:
		return checkText(field, value)
	case KindChoice:
		s, ok := value.(string)
		if !ok {
			return fmt.Sprintf("%s must be one of the listed options", field.Label)
		}
		if len(field.Options) > 0 && !contains(field.Options, strings.TrimSpace(s)) {
			return fmt.Sprintf("%s must be one of: %s", field.Label, strings.Join(field.Options, ", "))
		}
	case KindDate:
		if _, ok := toDate(value); !ok {
			return fmt.Sprintf("%s must be a valid date", field.Label)
		}
	case KindBoolean:
		if _, ok := toBool(value); !ok {
			return fmt.Sprintf("%s must be yes or no", field.Label)
		}
	case KindBooleanSet:
		selected, ok := selectedOptions(field, value)
		if !ok {
			return fmt.Sprintf("%s has an invalid selection", field.Label)
		}
		if field.MinSelected > 1 && len(selected) < field.MinSelected {
			return fmt.Sprintf("Select at least %d options for %s", field.MinSelected, field.Label)
		}
	case KindNumber:
		n, ok := toFloat(value)
		if !ok {
			return fmt.Sprintf("%s must be a number", field.Label)
		}
		if field.Min != nil && n < *field.Min {
			return fmt.Sprintf("%s must be at least %g", field.Label, *field.Min)
		}
		if field.Max != nil && n > *field.Max {
			return fmt.Sprintf("%s must be at most %g", field.Label, *field.Max)
		}
	case KindAttachment:
		return checkAttachment(field, value)
	}
	return ""
}

func checkText(field *Field, value any) string {
	s, ok := value.(string)
	if !ok {
		return fmt.Sprintf("%s must be text", field.Label)
	}
	s = strings.TrimSpace(s)
	length := utf8.RuneCountInString(s)
	if field.MinLength > 0 && length < field.MinLength {
		return fmt.Sprintf("%s must be at least %d characters", field.Label, field.MinLength)
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		return fmt.Sprintf("%s must be at most %d characters", field.Label, field.MaxLength)
	}
	if field.Pattern != "" {
		re, err := compilePattern(field.Pattern)
		if err != nil || !re.MatchString(s) {
			return fmt.Sprintf("%s has an invalid format", field.Label)
		}
	}
	switch field.Format {
	case FormatEmail:
		if utils.ValidateVar(s, "email") != nil {
			return fmt.Sprintf("%s must be a valid email address", field.Label)
		}
	case FormatPhone:
		if utils.ValidateVar(s, "phone") != nil {
			return fmt.Sprintf("%s must be a valid phone number", field.Label)
		}
	}
	return ""
}

func checkAttachment(field *Field, value any) string {
	meta, ok := attachmentInfo(value)
	if !ok {
		return fmt.Sprintf("%s must be a file", field.Label)
	}
	if field.MaxSize > 0 && meta.Size > field.MaxSize {
		return fmt.Sprintf("%s exceeds the maximum size of %s", field.Label, formatSize(field.MaxSize))
	}
	if len(field.AllowedTypes) > 0 {
		ext := strings.ToLower(filepath.Ext(meta.Name))
		if !contains(field.AllowedTypes, ext) {
			return fmt.Sprintf("%s must be one of: %s", field.Label, strings.Join(field.AllowedTypes, ", "))
		}
	}
	return ""
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d bytes", n)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

var patternCache sync.Map

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := patternCache.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	patternCache.Store(pattern, re)
	return re, nil
}
