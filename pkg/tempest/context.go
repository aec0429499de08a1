package tempest

import (
	"errors"
	"fmt"

	"github.com/openstack-charmers/openstack-gotests/pkg/release"
	"github.com/openstack-charmers/openstack-gotests/pkg/service"
)

// Flavor names registered by charm test setup for tempest runs.
const (
	FlavorName    = "m1.tempest"
	AltFlavorName = "m2.tempest"
)

// Context holds the deployment facts a tempest configuration is rendered
// from. Fields with a documented default may be left empty; fields required
// by a section whose service is enabled surface a MissingVariableError when
// empty.
type Context struct {
	// Enabled lists services present in the keystone catalog, in caller order.
	Enabled service.List
	// Disabled lists services absent from the deployment, in caller order.
	Disabled service.List

	// WorkspacePath is the tempest workspace directory the configuration is
	// written into. Required when octavia is enabled.
	WorkspacePath string

	// ReleasePair optionally names the series_codename pair under test and
	// selects release dependent defaults.
	ReleasePair string

	// Identity endpoint facts, required when keystone is enabled.
	Proto           string
	KeystoneHost    string
	DefaultDomainID string
	// AdminDomainScope defaults to true when nil.
	AdminDomainScope *bool

	// Administrative credentials. Empty fields fall back to the stock charm
	// deployment credentials.
	AdminUsername                string
	AdminProjectName             string
	AdminPassword                string
	AdminDomainName              string
	DefaultCredentialsDomainName string

	// Guest image and flavor references, required when nova is enabled.
	ImageID      string
	ImageAltID   string
	FlavorRef    string
	FlavorRefAlt string
	// MinComputeNodes defaults to 1 when zero.
	MinComputeNodes int

	// Network facts, required when neutron is enabled. CIDRPriv may be left
	// empty. NeutronAPIExtensions defaults by release pair.
	ExtNetID             string
	NameServer           string
	CIDRPriv             string
	NeutronAPIExtensions string

	// SwiftIP enables the http_image entry of the image section when set.
	SwiftIP string

	// Volume facts. CatalogType may be left empty, the rest default to the
	// ceph backed cinder the charm bundles deploy.
	CatalogType        string
	VolumeBackendNames string
	StorageProtocol    string

	// Share facts, defaulting to the cephfs nfs backend.
	ShareBackendNames string
	ShareProtocol     string

	// Magnum facts, required when magnum is enabled. RegistryPrefix may be
	// left empty.
	FedoraCoreOSImageID string
	RegistryPrefix      string

	// HTTPProxy enables the proxy_url entry of the service-clients section
	// when set.
	HTTPProxy string

	// Scope enforcement switches, off unless the deployment enforces them.
	EnforceScopeKeystone bool
	EnforceScopeNova     bool
}

// withDefaults returns a copy of the context with documented defaults
// applied to empty fields.
func (ctx Context) withDefaults() Context {
	if ctx.AdminUsername == "" {
		ctx.AdminUsername = "admin"
	}

	if ctx.AdminProjectName == "" {
		ctx.AdminProjectName = "admin"
	}

	if ctx.AdminPassword == "" {
		ctx.AdminPassword = "openstack"
	}

	if ctx.AdminDomainName == "" {
		ctx.AdminDomainName = "admin_domain"
	}

	if ctx.DefaultCredentialsDomainName == "" {
		ctx.DefaultCredentialsDomainName = "admin_domain"
	}

	if ctx.MinComputeNodes == 0 {
		ctx.MinComputeNodes = 1
	}

	if ctx.NeutronAPIExtensions == "" {
		ctx.NeutronAPIExtensions = release.DefaultNeutronExtensions(ctx.ReleasePair)
	}

	if ctx.VolumeBackendNames == "" {
		ctx.VolumeBackendNames = "cinder-ceph"
	}

	if ctx.StorageProtocol == "" {
		ctx.StorageProtocol = "ceph"
	}

	if ctx.ShareBackendNames == "" {
		ctx.ShareBackendNames = "cephfsnfs1"
	}

	if ctx.ShareProtocol == "" {
		ctx.ShareProtocol = "nfs"
	}

	return ctx
}

// MissingVariableError reports a context variable required by a section
// whose service is enabled but whose value is not set.
type MissingVariableError struct {
	Section  string
	Variable string
}

// Error implements the error interface.
func (err *MissingVariableError) Error() string {
	return fmt.Sprintf("variable %q required by section [%s] is not set", err.Variable, err.Section)
}

// IsMissingVariable tells whether the given error wraps a
// MissingVariableError.
func IsMissingVariable(err error) bool {
	var missingErr *MissingVariableError

	return errors.As(err, &missingErr)
}

// requiredVar pairs a context variable name with its value for guard checks.
type requiredVar struct {
	name  string
	value string
}

// checkRequired returns a MissingVariableError for the first empty variable,
// keeping error output deterministic.
func checkRequired(section string, vars []requiredVar) error {
	for _, variable := range vars {
		if variable.value == "" {
			return &MissingVariableError{Section: section, Variable: variable.name}
		}
	}

	return nil
}
