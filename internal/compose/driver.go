package compose

import (
	"context"
	"fmt"

	"github.com/webstarter-labs/webstarter/internal/output"
)

// Driver runs add-ons in selection order.
type Driver struct {
	Loader Loader
	Host   Host
}

// Run loads and runs each namespace in order. The first failure stops the
// run; files already staged by earlier add-ons stay where they are.
func (d *Driver) Run(ctx context.Context, namespaces []string) error {
	for _, ns := range namespaces {
		if err := ctx.Err(); err != nil {
			return err
		}

		addon, err := d.Loader.Load(ns)
		if err != nil {
			return fmt.Errorf("loading add-on %s: %w", ns, err)
		}

		output.Debug("running add-on", "namespace", ns)
		if err := addon.Run(ctx, d.Host); err != nil {
			return fmt.Errorf("add-on %s: %w", ns, err)
		}
	}
	return nil
}
