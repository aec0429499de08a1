package tempest

import (
	"fmt"

	"github.com/openstack-charmers/openstack-gotests/pkg/inicfg"
	"github.com/openstack-charmers/openstack-gotests/pkg/service"
)

// Builder provides struct for rendering a tempest configuration from a
// deployment context.
type Builder struct {
	// Definition holds the deployment facts the configuration is rendered
	// from.
	Definition *Context
	// Used in functions that define or mutate the context. errorMsg is
	// processed before the configuration is rendered.
	errorMsg string
}

// NewBuilder creates new instance of Builder.
func NewBuilder(ctx *Context) *Builder {
	builder := Builder{
		Definition: ctx,
	}

	if ctx == nil {
		builder.errorMsg = "tempest context cannot be nil"
	}

	return &builder
}

// WithEnabledServices redefines the context with the given services appended
// to the enabled list, preserving caller order.
func (builder *Builder) WithEnabledServices(names ...string) *Builder {
	if builder.errorMsg != "" {
		return builder
	}

	builder.Definition.Enabled = append(builder.Definition.Enabled, names...)

	return builder
}

// WithDisabledServices redefines the context with the given services
// appended to the disabled list, preserving caller order.
func (builder *Builder) WithDisabledServices(names ...string) *Builder {
	if builder.errorMsg != "" {
		return builder
	}

	builder.Definition.Disabled = append(builder.Definition.Disabled, names...)

	return builder
}

// WithDerivedDisabled redefines the context's disabled list with the catalog
// services absent from the enabled list.
func (builder *Builder) WithDerivedDisabled() *Builder {
	if builder.errorMsg != "" {
		return builder
	}

	builder.Definition.Disabled = service.DisabledFrom(builder.Definition.Enabled)

	return builder
}

// Render produces the tempest.conf text for the context. Rendering is a pure
// function of the context and identical contexts produce byte-identical
// text, so concurrent renders from independent builders are safe.
func (builder *Builder) Render() (string, error) {
	if builder.errorMsg != "" {
		return "", fmt.Errorf(builder.errorMsg)
	}

	ctx := builder.Definition.withDefaults()

	document := inicfg.NewDocument()

	for _, assemble := range sectionAssemblers {
		section, err := assemble(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to assemble tempest configuration: %w", err)
		}

		if section == nil {
			continue
		}

		document = document.WithSection(section)
	}

	return document.Encode()
}
