package lazylist

import (
	"errors"
	"fmt"
	"reflect"
)

// Errors reported for setup contract violations. Both are fatal: a list
// without a usable template would silently render nothing, so they are
// surfaced at initialization instead of being degraded into an empty widget.
var (
	// ErrNoTemplate is returned when an operation requires a row template and
	// none has been set.
	ErrNoTemplate = errors.New("lazylist: no item template set")

	// ErrTemplateNotConfigurable is returned when rows produced by a template
	// implement neither ItemConfigurer nor ItemSetter.
	ErrTemplateNotConfigurable = errors.New("lazylist: template rows implement neither ItemConfigurer nor ItemSetter")
)

// ItemConfigurer is the preferred configuration entry point for pooled rows.
// The row receives both the data index and the item, allowing index-aware
// rendering (e.g. line numbers, zebra striping).
type ItemConfigurer interface {
	ConfigureItem(index int, item any)
}

// ItemSetter is the fallback configuration entry point for rows that only
// care about the item itself.
type ItemSetter interface {
	SetItem(item any)
}

// rowCapability records which configuration entry point a row type offers.
type rowCapability uint8

const (
	capabilityNone rowCapability = iota
	capabilityConfigure
	capabilitySet
)

// capabilityCache maps a concrete row type to its resolved capability so the
// interface probe runs once per type, not once per bind.
type capabilityCache map[reflect.Type]rowCapability

func (c capabilityCache) resolve(row Row) rowCapability {
	typ := reflect.TypeOf(row)
	if cap, ok := c[typ]; ok {
		return cap
	}
	cap := probeCapability(row)
	c[typ] = cap
	return cap
}

func probeCapability(row Row) rowCapability {
	if _, ok := row.(ItemConfigurer); ok {
		return capabilityConfigure
	}
	if _, ok := row.(ItemSetter); ok {
		return capabilitySet
	}
	return capabilityNone
}

// probeTemplate creates one throwaway row from the factory and resolves its
// capability. It is called once when a template is installed, before any pool
// row exists, so a broken template fails fast.
func probeTemplate(factory RowFactory) (rowCapability, error) {
	if factory == nil {
		return capabilityNone, ErrNoTemplate
	}
	row := factory()
	if row == nil {
		return capabilityNone, fmt.Errorf("%w (factory returned nil)", ErrNoTemplate)
	}
	cap := probeCapability(row)
	if cap == capabilityNone {
		return capabilityNone, fmt.Errorf("%w (row type %T)", ErrTemplateNotConfigurable, row)
	}
	return cap, nil
}

// configureRow binds item data to a row through its resolved capability.
func configureRow(row Row, cap rowCapability, index int, item any) {
	switch cap {
	case capabilityConfigure:
		row.(ItemConfigurer).ConfigureItem(index, item)
	case capabilitySet:
		row.(ItemSetter).SetItem(item)
	}
}
