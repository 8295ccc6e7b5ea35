package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/webstarter-labs/webstarter/internal/answers"
)

// ErrAborted is returned when the user cancels a form.
var ErrAborted = errors.New("prompt aborted")

// HuhAsker asks with charmbracelet/huh forms, one form per question so that
// gates see the answers before them.
type HuhAsker struct {
	Theme *huh.Theme
}

// NewHuhAsker returns a HuhAsker with the Charm theme.
func NewHuhAsker() *HuhAsker {
	return &HuhAsker{Theme: huh.ThemeCharm()}
}

// Ask implements Asker.
func (h *HuhAsker) Ask(ctx context.Context, questions []Question, seed answers.Answers) (answers.Answers, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}
	got := answers.Answers{}
	for _, q := range questions {
		if !visible(q, seed, got) {
			continue
		}
		group, collect := buildGroup(q)
		form := huh.NewForm(group)
		if h.Theme != nil {
			form = form.WithTheme(h.Theme)
		}
		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrAborted
			}
			return nil, fmt.Errorf("%s: %w", q.Name, err)
		}
		got[q.Name] = collect()
	}
	return got, nil
}

// buildGroup returns the huh group for q and a func reading its answer once
// the form has run.
func buildGroup(q Question) (*huh.Group, func() any) {
	switch q.Type {
	case TypeConfirm:
		v := defaultBool(q)
		return huh.NewGroup(huh.NewConfirm().Title(q.Message).Value(&v)),
			func() any { return v }

	case TypeList:
		v := defaultString(q)
		opts := make([]huh.Option[string], 0, len(q.Choices))
		for _, c := range options(q.Choices) {
			opts = append(opts, huh.NewOption(c.Name, c.Value))
		}
		return huh.NewGroup(huh.NewSelect[string]().Title(q.Message).Options(opts...).Value(&v)),
			func() any { return v }

	case TypeCheckbox:
		return checkboxGroup(q)

	default:
		v := defaultString(q)
		return huh.NewGroup(huh.NewInput().Title(q.Message).Value(&v)),
			func() any { return v }
	}
}

// checkboxGroup renders each category of a checkbox as its own multi-select
// so headings stay visible. Selections are concatenated in display order.
func checkboxGroup(q Question) (*huh.Group, func() any) {
	def := defaultStrings(q)
	secs := sections(q.Choices)
	values := make([][]string, len(secs))

	fields := []huh.Field{huh.NewNote().Title(q.Message)}
	for i, s := range secs {
		opts := make([]huh.Option[string], 0, len(s.Options))
		for _, c := range s.Options {
			selected := slices.Contains(def, c.Value)
			if selected {
				values[i] = append(values[i], c.Value)
			}
			opts = append(opts, huh.NewOption(c.Name, c.Value).Selected(selected))
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title(s.Title).
			Options(opts...).
			Value(&values[i]))
	}

	return huh.NewGroup(fields...), func() any {
		picked := []string{}
		for _, v := range values {
			picked = append(picked, v...)
		}
		return picked
	}
}
