package deployenv

import "github.com/openstack-charmers/openstack-gotests/pkg/service"

// VarDoc documents one deployment variable for the generated reference.
type VarDoc struct {
	Name        string
	Default     string
	RequiredBy  string
	Ignorable   bool
	Description string
}

var reference = []VarDoc{
	{
		Name:        "TEST_GATEWAY",
		RequiredBy:  service.Neutron,
		Description: "Gateway address for the external network.",
	},
	{
		Name:        "TEST_CIDR_EXT",
		RequiredBy:  service.Neutron,
		Description: "CIDR of the external network.",
	},
	{
		Name:        "TEST_FIP_RANGE",
		RequiredBy:  service.Neutron,
		Description: "Floating IP allocation range, first and last address separated by a colon.",
	},
	{
		Name:        "TEST_NAME_SERVER",
		RequiredBy:  service.Neutron,
		Description: "Name server handed to instances on the project network.",
	},
	{
		Name:        "TEST_CIDR_PRIV",
		RequiredBy:  service.Neutron,
		Ignorable:   true,
		Description: "CIDR of the project network. May be left unset to keep the deployment default.",
	},
	{
		Name:        "TEST_SWIFT_IP",
		RequiredBy:  service.Swift,
		Description: "Address of the swift proxy used for glance http image checks.",
	},
	{
		Name:        "TEST_EXT_NET",
		Default:     "ext_net",
		Description: "Name of the external network.",
	},
	{
		Name:        "TEST_EXT_NET_SUBNET",
		Default:     "ext_net_subnet",
		Description: "Name of the external network subnet.",
	},
	{
		Name:        "TEST_FIP_SERVICE_SUBNET_NAME",
		Default:     "fip_service_subnet",
		Description: "Name of the floating IP service subnet.",
	},
	{
		Name:        "TEST_PRIVATE_NET",
		Default:     "private",
		Description: "Name of the project network.",
	},
	{
		Name:        "TEST_PRIVATE_NET_SUBNET",
		Default:     "private_subnet",
		Description: "Name of the project network subnet.",
	},
	{
		Name:        "TEST_PROVIDER_ROUTER",
		Default:     "provider-router",
		Description: "Name of the router between the project and external networks.",
	},
	{
		Name:        "TEST_CIRROS_IMAGE_NAME",
		Default:     "cirros",
		Description: "Glance name of the cirros test image.",
	},
	{
		Name:        "TEST_BIONIC_IMAGE_NAME",
		Default:     "bionic",
		Description: "Glance name of the bionic cloud image.",
	},
	{
		Name:        "TEST_FOCAL_IMAGE_NAME",
		Default:     "focal",
		Description: "Glance name of the focal cloud image.",
	},
	{
		Name:        "TEST_JAMMY_IMAGE_NAME",
		Default:     "jammy",
		Description: "Glance name of the jammy cloud image.",
	},
	{
		Name:        "TEST_REGISTRY_PREFIX",
		Description: "Registry mirror prefix for magnum insecure registry labels.",
	},
	{
		Name:        "TEST_HTTP_PROXY",
		Description: "Proxy used for image downloads and tempest service clients.",
	},
	{
		Name:        "TEST_PRIVKEY",
		Description: "Path to the private key used for instance and unit access.",
	},
	{
		Name:        "TEST_TMPDIR",
		Description: "Scratch directory for downloaded fixtures. Defaults to the system temp dir.",
	},
}

// Reference returns the documented deployment variables in stable order.
func Reference() []VarDoc {
	return append([]VarDoc(nil), reference...)
}
