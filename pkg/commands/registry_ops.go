package commands

import (
	"github.com/arthur-debert/modot/pkg/logging"
	"github.com/arthur-debert/modot/pkg/registry"
)

// ListOptions defines the options for listing mod entries.
type ListOptions struct {
	Session *Session
}

// ListResult carries the registry view.
type ListResult struct {
	Entries        []registry.Entry
	GlobalDisabled bool
}

// List returns all mod entries ascending by priority plus the global
// disable flag. Read-only: nothing is persisted.
func List(opts ListOptions) (*ListResult, error) {
	reg := opts.Session.reg
	return &ListResult{
		Entries:        reg.List(),
		GlobalDisabled: reg.GlobalDisable(),
	}, nil
}

// SetEnabledOptions defines the options for toggling one mod.
type SetEnabledOptions struct {
	Session *Session
	Name    string
	Enabled bool
}

// SetEnabled sets both enabled flags of the named entry and persists. An
// absent name is an idempotent no-op, but the file is still rewritten.
func SetEnabled(opts SetEnabledOptions) error {
	opts.Session.reg.SetEnabled(opts.Name, opts.Enabled)
	return opts.Session.Save()
}

// SetAllEnabledOptions defines the options for the bulk toggle.
type SetAllEnabledOptions struct {
	Session *Session
	Enabled bool
}

// SetAllEnabled toggles every entry and persists.
func SetAllEnabled(opts SetAllEnabledOptions) error {
	opts.Session.reg.SetAllEnabled(opts.Enabled)
	return opts.Session.Save()
}

// SetGlobalDisableOptions defines the options for the disable-all toggle.
type SetGlobalDisableOptions struct {
	Session *Session
	Flag    bool
}

// SetGlobalDisable mutates the disable-all flag and persists.
func SetGlobalDisable(opts SetGlobalDisableOptions) error {
	opts.Session.reg.SetGlobalDisable(opts.Flag)
	return opts.Session.Save()
}

// ReorderOptions defines the options for reassigning load order.
type ReorderOptions struct {
	Session      *Session
	OrderedNames []string
}

// Reorder assigns priorities matching the supplied complete name ordering
// and persists. An incomplete or alien ordering is an INVALID_INPUT error
// and nothing is written.
func Reorder(opts ReorderOptions) error {
	if err := opts.Session.reg.Reorder(opts.OrderedNames); err != nil {
		return err
	}
	return opts.Session.Save()
}

// AddModOptions defines the options for registering a new mod entry.
type AddModOptions struct {
	Session  *Session
	Name     string
	Metadata registry.Metadata
}

// AddMod appends a new entry and persists. The stored name is the
// pipeline's canonical uppercased form.
func AddMod(opts AddModOptions) (*registry.Entry, error) {
	logger := logging.GetLogger("commands.add")
	entry := opts.Session.reg.Add(opts.Name, opts.Metadata)
	if err := opts.Session.Save(); err != nil {
		return &entry, err
	}
	logger.Info().Str("mod", entry.Name).Int("priority", entry.Priority).Msg("Registered mod")
	return &entry, nil
}
