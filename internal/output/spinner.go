package output

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// interactive is swapped in tests.
var interactive = IsTTY

// RunWithSpinner executes action while a spinner titled title is shown.
// Without a TTY the action runs directly.
func RunWithSpinner(ctx context.Context, title string, action func(context.Context) error) error {
	if !interactive() {
		return action(ctx)
	}

	var actionErr error
	err := spinner.New().
		Title(title).
		Context(ctx).
		Action(func() {
			actionErr = action(ctx)
		}).
		Run()
	if err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}
	return actionErr
}
