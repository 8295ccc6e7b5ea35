package compose

import (
	"context"

	"github.com/webstarter-labs/webstarter/internal/answers"
	"github.com/webstarter-labs/webstarter/internal/prompt"
	"github.com/webstarter-labs/webstarter/internal/registry"
)

// Parent is the run an add-on is composed into.
type Parent interface {
	// Answers returns the shared answers record. Writes are visible to every
	// later step.
	Answers() answers.Answers

	// DestinationPath joins elem onto the project directory.
	DestinationPath(elem ...string) string

	// Ask prompts for questions and merges the replies into Answers.
	Ask(ctx context.Context, questions []prompt.Question) error
}

// Host is what an add-on may touch.
type Host interface {
	Parent() Parent

	Plugins() []registry.Entry[any]
	AddPlugin(name string, value any)
	Plugin(name string) (any, bool)

	DevDependencies() []registry.Entry[string]
	AddDevDependency(name, versionRange string)
	DevDependency(name string) (string, bool)
}

// NewHost binds reg and parent into a Host.
func NewHost(reg *registry.Registry, parent Parent) Host {
	return &host{reg: reg, parent: parent}
}

type host struct {
	reg    *registry.Registry
	parent Parent
}

func (h *host) Parent() Parent { return h.parent }

func (h *host) Plugins() []registry.Entry[any] { return h.reg.Plugins() }

func (h *host) AddPlugin(name string, value any) { h.reg.AddPlugin(name, value) }

func (h *host) Plugin(name string) (any, bool) { return h.reg.Plugin(name) }

func (h *host) DevDependencies() []registry.Entry[string] { return h.reg.DevDependencies() }

func (h *host) AddDevDependency(name, versionRange string) {
	h.reg.AddDevDependency(name, versionRange)
}

func (h *host) DevDependency(name string) (string, bool) { return h.reg.DevDependency(name) }
