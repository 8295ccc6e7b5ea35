package prompt

import (
	"context"
	"fmt"
	"reflect"

	"github.com/webstarter-labs/webstarter/internal/answers"
)

// Question types.
const (
	TypeInput    = "input"
	TypeConfirm  = "confirm"
	TypeCheckbox = "checkbox"
	TypeList     = "list"
)

// Question is one entry of a prompt schema.
type Question struct {
	Type    string
	Name    string
	Message string
	Default any
	Choices []Choice

	// When gates the question. It sees the seed answers overlaid with
	// everything collected earlier in the same Ask call.
	When When
}

// Choice is an option of a checkbox or list question, or a category heading
// when Separator is set.
type Choice struct {
	Name      string
	Value     string
	Separator bool
}

// Separator returns a heading choice.
func Separator(label string) Choice {
	return Choice{Name: label, Separator: true}
}

// When decides whether a question is asked.
type When func(answers.Answers) bool

// Equals holds when answer name equals value.
func Equals(name string, value any) When {
	return func(a answers.Answers) bool {
		v, ok := a[name]
		return ok && looseEqual(v, value)
	}
}

// Truthy holds when answer name is set to a non-zero value.
func Truthy(name string) When {
	return func(a answers.Answers) bool {
		v, ok := a[name]
		if !ok || v == nil {
			return false
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Slice, reflect.Map:
			return rv.Len() > 0
		}
		return !rv.IsZero()
	}
}

// All holds when every condition holds.
func All(conds ...When) When {
	return func(a answers.Answers) bool {
		for _, c := range conds {
			if c != nil && !c(a) {
				return false
			}
		}
		return true
	}
}

// Asker collects answers for a list of questions, in order. The returned
// record holds only what was asked in this call.
type Asker interface {
	Ask(ctx context.Context, questions []Question, seed answers.Answers) (answers.Answers, error)
}

// Validate reports the first malformed question.
func Validate(questions []Question) error {
	for i, q := range questions {
		if q.Name == "" {
			return fmt.Errorf("question %d: missing name", i)
		}
		switch q.Type {
		case TypeInput, TypeConfirm:
		case TypeCheckbox, TypeList:
			if len(options(q.Choices)) == 0 {
				return fmt.Errorf("question %q: %s needs at least one choice", q.Name, q.Type)
			}
		default:
			return fmt.Errorf("question %q: unknown type %q", q.Name, q.Type)
		}
	}
	return nil
}

// visible evaluates q.When over seed overlaid with got.
func visible(q Question, seed, got answers.Answers) bool {
	if q.When == nil {
		return true
	}
	view := make(answers.Answers, len(seed)+len(got))
	view.Merge(seed)
	view.Merge(got)
	return q.When(view)
}

// options drops separators.
func options(choices []Choice) []Choice {
	out := make([]Choice, 0, len(choices))
	for _, c := range choices {
		if !c.Separator {
			out = append(out, c)
		}
	}
	return out
}

// section is a run of options under one heading.
type section struct {
	Title   string
	Options []Choice
}

// sections splits choices at separators. Options before the first separator
// form an untitled section.
func sections(choices []Choice) []section {
	var out []section
	for _, c := range choices {
		if c.Separator {
			out = append(out, section{Title: c.Name})
			continue
		}
		if len(out) == 0 {
			out = append(out, section{})
		}
		out[len(out)-1].Options = append(out[len(out)-1].Options, c)
	}
	return out
}

// zero returns the typed default of q.
func zero(q Question) any {
	switch q.Type {
	case TypeConfirm:
		b, _ := q.Default.(bool)
		return b
	case TypeCheckbox:
		return answers.Answers{"v": q.Default}.Strings("v")
	default:
		if q.Default == nil {
			return ""
		}
		if s, ok := q.Default.(string); ok {
			return s
		}
		return fmt.Sprint(q.Default)
	}
}

func defaultString(q Question) string {
	s, _ := zero(q).(string)
	return s
}

func defaultBool(q Question) bool {
	b, _ := zero(q).(bool)
	return b
}

func defaultStrings(q Question) []string {
	s, _ := zero(q).([]string)
	if s == nil {
		return []string{}
	}
	return s
}

func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
