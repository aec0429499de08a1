package tempest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/openstack-charmers/openstack-gotests/pkg/inicfg"
	"github.com/openstack-charmers/openstack-gotests/pkg/service"
)

// sectionFunc assembles one tempest.conf section from the context. A nil
// section with a nil error means the section's service is not enabled and
// the section is skipped.
type sectionFunc func(ctx Context) (*inicfg.SectionBuilder, error)

// sectionAssemblers holds one assembler per tempest.conf section, in output
// order.
var sectionAssemblers = []sectionFunc{
	defaultSection,
	authSection,
	shareSection,
	computeSection,
	computeFeaturesSection,
	identitySection,
	identityFeaturesSection,
	imageSection,
	networkSection,
	networkFeaturesSection,
	heatPluginSection,
	osloConcurrencySection,
	scenarioSection,
	validationSection,
	serviceAvailableSection,
	volumeSection,
	volumeFeaturesSection,
	loadBalancerSection,
	magnumSection,
	dnsSection,
	serviceClientsSection,
	enforceScopeSection,
}

func defaultSection(ctx Context) (*inicfg.SectionBuilder, error) {
	return inicfg.NewSection("DEFAULT").
		WithBoolEntry("debug", true).
		WithBoolEntry("use_stderr", false).
		WithEntry("log_file", "tempest.log"), nil
}

func authSection(ctx Context) (*inicfg.SectionBuilder, error) {
	accountsFile := "accounts.yaml"
	if ctx.WorkspacePath != "" {
		accountsFile = filepath.Join(ctx.WorkspacePath, "etc", "accounts.yaml")
	}

	return inicfg.NewSection("auth").
		WithEntry("test_accounts_file", accountsFile).
		WithEntry("default_credentials_domain_name", ctx.DefaultCredentialsDomainName).
		WithEntry("admin_username", ctx.AdminUsername).
		WithEntry("admin_project_name", ctx.AdminProjectName).
		WithEntry("admin_password", ctx.AdminPassword).
		WithEntry("admin_domain_name", ctx.AdminDomainName), nil
}

func shareSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Manila) {
		return nil, nil
	}

	return inicfg.NewSection("share").
		WithEntry("default_share_type_name", "default_share_type").
		WithEntry("backend_names", ctx.ShareBackendNames).
		WithEntry("enable_protocols", ctx.ShareProtocol).
		WithEntry("capability_storage_protocol", strings.ToUpper(ctx.ShareProtocol)).
		WithBoolEntry("multitenancy_enabled", false).
		WithBoolEntry("multi_backend", false).
		WithBoolEntry("suppress_errors_in_cleanup", true), nil
}

func computeSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Nova) {
		return nil, nil
	}

	err := checkRequired("compute", []requiredVar{
		{name: "image_id", value: ctx.ImageID},
		{name: "image_alt_id", value: ctx.ImageAltID},
		{name: "flavor_ref", value: ctx.FlavorRef},
		{name: "flavor_ref_alt", value: ctx.FlavorRefAlt},
	})
	if err != nil {
		return nil, err
	}

	return inicfg.NewSection("compute").
		WithEntry("image_ref", ctx.ImageID).
		WithEntry("image_ref_alt", ctx.ImageAltID).
		WithEntry("flavor_ref", ctx.FlavorRef).
		WithEntry("flavor_ref_alt", ctx.FlavorRefAlt).
		WithIntEntry("min_compute_nodes", ctx.MinComputeNodes), nil
}

func computeFeaturesSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Nova) {
		return nil, nil
	}

	return inicfg.NewSection("compute-feature-enabled").
		WithBoolEntry("console_output", true).
		WithBoolEntry("resize", true).
		WithBoolEntry("live_migration", true).
		WithBoolEntry("block_migration_for_live_migration", true).
		WithBoolEntry("attach_encrypted_volume", false), nil
}

func identitySection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Keystone) {
		return nil, nil
	}

	err := checkRequired("identity", []requiredVar{
		{name: "proto", value: ctx.Proto},
		{name: "keystone", value: ctx.KeystoneHost},
		{name: "default_domain_id", value: ctx.DefaultDomainID},
	})
	if err != nil {
		return nil, err
	}

	domainScope := true
	if ctx.AdminDomainScope != nil {
		domainScope = *ctx.AdminDomainScope
	}

	return inicfg.NewSection("identity").
		WithEntry("uri", fmt.Sprintf("%s://%s:5000/v2.0", ctx.Proto, ctx.KeystoneHost)).
		WithEntry("uri_v3", fmt.Sprintf("%s://%s:5000/v3", ctx.Proto, ctx.KeystoneHost)).
		WithEntry("auth_version", "v3").
		WithEntry("admin_role", "Admin").
		WithEntry("region", "RegionOne").
		WithEntry("default_domain_id", ctx.DefaultDomainID).
		WithBoolEntry("admin_domain_scope", domainScope), nil
}

func identityFeaturesSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Keystone) {
		return nil, nil
	}

	return inicfg.NewSection("identity-feature-enabled").
		WithBoolEntry("api_v2", false).
		WithBoolEntry("api_v3", true), nil
}

// imageSection is skipped entirely when no swift proxy address is known,
// since http_image is its only entry.
func imageSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Glance) || ctx.SwiftIP == "" {
		return nil, nil
	}

	return inicfg.NewSection("image").
		WithEntry("http_image", fmt.Sprintf(
			"http://%s:80/swift/v1/images/cirros-0.3.4-x86_64-uec.tar.gz", ctx.SwiftIP)), nil
}

func networkSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Neutron) {
		return nil, nil
	}

	err := checkRequired("network", []requiredVar{
		{name: "ext_net", value: ctx.ExtNetID},
		{name: "test_name_server", value: ctx.NameServer},
	})
	if err != nil {
		return nil, err
	}

	section := inicfg.NewSection("network")

	if ctx.CIDRPriv != "" {
		section = section.WithEntry("project_network_cidr", ctx.CIDRPriv)
	}

	return section.
		WithEntry("public_network_id", ctx.ExtNetID).
		WithEntry("dns_servers", ctx.NameServer).
		WithBoolEntry("project_networks_reachable", false).
		WithEntry("api_extensions", ctx.NeutronAPIExtensions), nil
}

func networkFeaturesSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Neutron) {
		return nil, nil
	}

	return inicfg.NewSection("network-feature-enabled").
		WithBoolEntry("ipv6", false), nil
}

func heatPluginSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Heat) {
		return nil, nil
	}

	err := checkRequired("heat_plugin", []requiredVar{
		{name: "proto", value: ctx.Proto},
		{name: "keystone", value: ctx.KeystoneHost},
		{name: "image_id", value: ctx.ImageID},
	})
	if err != nil {
		return nil, err
	}

	return inicfg.NewSection("heat_plugin").
		WithEntry("auth_url", fmt.Sprintf("%s://%s:5000/v3", ctx.Proto, ctx.KeystoneHost)).
		WithEntry("auth_version", "3").
		WithEntry("username", ctx.AdminUsername).
		WithEntry("password", ctx.AdminPassword).
		WithEntry("project_name", ctx.AdminProjectName).
		WithEntry("admin_username", ctx.AdminUsername).
		WithEntry("admin_password", ctx.AdminPassword).
		WithEntry("admin_project_name", ctx.AdminProjectName).
		WithEntry("user_domain_name", ctx.AdminDomainName).
		WithEntry("project_domain_name", ctx.AdminDomainName).
		WithEntry("region", "RegionOne").
		WithEntry("instance_type", FlavorName).
		WithEntry("minimal_instance_type", FlavorName).
		WithEntry("image_ref", ctx.ImageID).
		WithEntry("minimal_image_ref", ctx.ImageID).
		WithEntry("keypair_name", "testkey"), nil
}

func osloConcurrencySection(ctx Context) (*inicfg.SectionBuilder, error) {
	return inicfg.NewSection("oslo_concurrency").
		WithEntry("lock_path", "/tmp"), nil
}

func scenarioSection(ctx Context) (*inicfg.SectionBuilder, error) {
	return inicfg.NewSection("scenario").
		WithEntry("img_dir", "/home/ubuntu/images").
		WithEntry("img_file", "cirros-0.3.4-x86_64-disk.img").
		WithEntry("img_container_format", "bare").
		WithEntry("img_disk_format", "qcow2"), nil
}

func validationSection(ctx Context) (*inicfg.SectionBuilder, error) {
	return inicfg.NewSection("validation").
		WithBoolEntry("run_validation", true).
		WithEntry("image_ssh_user", "cirros"), nil
}

// serviceAvailableSection emits one line per member of both service lists,
// enabled first, in caller order. Overlapping names yield one line from each
// list.
func serviceAvailableSection(ctx Context) (*inicfg.SectionBuilder, error) {
	section := inicfg.NewSection("service_available")

	for _, name := range ctx.Enabled {
		section = section.WithBoolEntry(name, true)
	}

	for _, name := range ctx.Disabled {
		section = section.WithBoolEntry(name, false)
	}

	return section, nil
}

func volumeSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Cinder) {
		return nil, nil
	}

	section := inicfg.NewSection("volume").
		WithEntry("backend_names", ctx.VolumeBackendNames).
		WithEntry("storage_protocol", ctx.StorageProtocol)

	if ctx.CatalogType != "" {
		section = section.WithEntry("catalog_type", ctx.CatalogType)
	}

	return section, nil
}

func volumeFeaturesSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Cinder) {
		return nil, nil
	}

	return inicfg.NewSection("volume-feature-enabled").
		WithBoolEntry("backup", false), nil
}

func loadBalancerSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Octavia) {
		return nil, nil
	}

	err := checkRequired("load_balancer", []requiredVar{
		{name: "workspace_path", value: ctx.WorkspacePath},
	})
	if err != nil {
		return nil, err
	}

	return inicfg.NewSection("load_balancer").
		WithEntry("test_server_binary", filepath.Join(ctx.WorkspacePath, "test_server.bin")), nil
}

func magnumSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Magnum) {
		return nil, nil
	}

	err := checkRequired("magnum", []requiredVar{
		{name: "fedora_coreos_id", value: ctx.FedoraCoreOSImageID},
		{name: "ext_net", value: ctx.ExtNetID},
	})
	if err != nil {
		return nil, err
	}

	section := inicfg.NewSection("magnum").
		WithEntry("image_id", ctx.FedoraCoreOSImageID).
		WithEntry("nic_id", ctx.ExtNetID).
		WithEntry("keypair_id", "testkey").
		WithEntry("flavor_id", "m1.small").
		WithEntry("master_flavor_id", "m1.small").
		WithBoolEntry("copy_logs", true)

	if ctx.RegistryPrefix != "" {
		section = section.
			WithEntry("labels", fmt.Sprintf("insecure_registry:%s", ctx.RegistryPrefix)).
			WithEntry("insecure_registry", ctx.RegistryPrefix)
	}

	return section, nil
}

// dnsSection is skipped entirely when no name server is known, since
// nameservers is its only entry.
func dnsSection(ctx Context) (*inicfg.SectionBuilder, error) {
	if !ctx.Enabled.Contains(service.Designate) || ctx.NameServer == "" {
		return nil, nil
	}

	return inicfg.NewSection("dns").
		WithEntry("nameservers", ctx.NameServer), nil
}

func serviceClientsSection(ctx Context) (*inicfg.SectionBuilder, error) {
	section := inicfg.NewSection("service-clients").
		WithIntEntry("http_timeout", 120)

	if ctx.HTTPProxy != "" {
		section = section.WithEntry("proxy_url", ctx.HTTPProxy)
	}

	return section, nil
}

func enforceScopeSection(ctx Context) (*inicfg.SectionBuilder, error) {
	return inicfg.NewSection("enforce_scope").
		WithBoolEntry("keystone", ctx.EnforceScopeKeystone).
		WithBoolEntry("nova", ctx.EnforceScopeNova), nil
}
