package prompt

import (
	"context"

	"github.com/webstarter-labs/webstarter/internal/answers"
)

// StaticAsker answers without interaction: a preset value when one exists,
// otherwise the question's default. Gated questions are still evaluated, so
// a preset can switch later questions on.
type StaticAsker struct {
	Presets answers.Answers
}

// Ask implements Asker.
func (s StaticAsker) Ask(ctx context.Context, questions []Question, seed answers.Answers) (answers.Answers, error) {
	if err := Validate(questions); err != nil {
		return nil, err
	}
	got := answers.Answers{}
	for _, q := range questions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !visible(q, seed, got) {
			continue
		}
		if v, ok := s.Presets[q.Name]; ok {
			got[q.Name] = v
			continue
		}
		if q.Type == TypeCheckbox {
			got[q.Name] = defaultStrings(q)
			continue
		}
		got[q.Name] = zero(q)
	}
	return got, nil
}
