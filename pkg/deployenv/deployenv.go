package deployenv

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/exp/slices"

	"github.com/openstack-charmers/openstack-gotests/pkg/service"
)

// DeploymentContext keeps the TEST_ prefixed environment variables the test
// helpers consume. It is the single source of truth for the variable
// surface; the reference document is generated from it.
type DeploymentContext struct {
	Gateway              string `envconfig:"TEST_GATEWAY"`
	CIDRExt              string `envconfig:"TEST_CIDR_EXT"`
	FIPRange             string `envconfig:"TEST_FIP_RANGE"`
	NameServer           string `envconfig:"TEST_NAME_SERVER"`
	CIDRPriv             string `envconfig:"TEST_CIDR_PRIV"`
	SwiftIP              string `envconfig:"TEST_SWIFT_IP"`
	ExtNet               string `envconfig:"TEST_EXT_NET" default:"ext_net"`
	ExtNetSubnet         string `envconfig:"TEST_EXT_NET_SUBNET" default:"ext_net_subnet"`
	FIPServiceSubnetName string `envconfig:"TEST_FIP_SERVICE_SUBNET_NAME" default:"fip_service_subnet"`
	PrivateNet           string `envconfig:"TEST_PRIVATE_NET" default:"private"`
	PrivateNetSubnet     string `envconfig:"TEST_PRIVATE_NET_SUBNET" default:"private_subnet"`
	ProviderRouter       string `envconfig:"TEST_PROVIDER_ROUTER" default:"provider-router"`
	CirrosImageName      string `envconfig:"TEST_CIRROS_IMAGE_NAME" default:"cirros"`
	BionicImageName      string `envconfig:"TEST_BIONIC_IMAGE_NAME" default:"bionic"`
	FocalImageName       string `envconfig:"TEST_FOCAL_IMAGE_NAME" default:"focal"`
	JammyImageName       string `envconfig:"TEST_JAMMY_IMAGE_NAME" default:"jammy"`
	RegistryPrefix       string `envconfig:"TEST_REGISTRY_PREFIX"`
	HTTPProxy            string `envconfig:"TEST_HTTP_PROXY"`
	PrivKeyPath          string `envconfig:"TEST_PRIVKEY"`
	TmpDir               string `envconfig:"TEST_TMPDIR"`
}

// RequiredVars maps services to the environment variables their test setup
// depends on.
var RequiredVars = map[string][]string{
	service.Neutron: {
		"TEST_GATEWAY", "TEST_CIDR_EXT", "TEST_FIP_RANGE",
		"TEST_NAME_SERVER", "TEST_CIDR_PRIV",
	},
	service.Swift: {"TEST_SWIFT_IP"},
}

// IgnorableVars lists required variables whose absence is tolerated.
var IgnorableVars = []string{"TEST_CIDR_PRIV"}

// requiredVarOrder fixes the service iteration order so missing variable
// reports read the same on every run.
var requiredVarOrder = []string{service.Neutron, service.Swift}

// Read populates a DeploymentContext from the process environment.
func Read() (*DeploymentContext, error) {
	var ctx DeploymentContext

	err := envconfig.Process("", &ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment environment: %w", err)
	}

	return &ctx, nil
}

// Value returns the current value of the given deployment variable, or the
// empty string for unknown names.
func (ctx *DeploymentContext) Value(name string) string {
	switch name {
	case "TEST_GATEWAY":
		return ctx.Gateway
	case "TEST_CIDR_EXT":
		return ctx.CIDRExt
	case "TEST_FIP_RANGE":
		return ctx.FIPRange
	case "TEST_NAME_SERVER":
		return ctx.NameServer
	case "TEST_CIDR_PRIV":
		return ctx.CIDRPriv
	case "TEST_SWIFT_IP":
		return ctx.SwiftIP
	case "TEST_EXT_NET":
		return ctx.ExtNet
	case "TEST_EXT_NET_SUBNET":
		return ctx.ExtNetSubnet
	case "TEST_FIP_SERVICE_SUBNET_NAME":
		return ctx.FIPServiceSubnetName
	case "TEST_PRIVATE_NET":
		return ctx.PrivateNet
	case "TEST_PRIVATE_NET_SUBNET":
		return ctx.PrivateNetSubnet
	case "TEST_PROVIDER_ROUTER":
		return ctx.ProviderRouter
	case "TEST_CIRROS_IMAGE_NAME":
		return ctx.CirrosImageName
	case "TEST_BIONIC_IMAGE_NAME":
		return ctx.BionicImageName
	case "TEST_FOCAL_IMAGE_NAME":
		return ctx.FocalImageName
	case "TEST_JAMMY_IMAGE_NAME":
		return ctx.JammyImageName
	case "TEST_REGISTRY_PREFIX":
		return ctx.RegistryPrefix
	case "TEST_HTTP_PROXY":
		return ctx.HTTPProxy
	case "TEST_PRIVKEY":
		return ctx.PrivKeyPath
	case "TEST_TMPDIR":
		return ctx.TmpDir
	default:
		return ""
	}
}

// MissingForServices returns the unset, non ignorable variables required by
// the given enabled services, in declaration order.
func (ctx *DeploymentContext) MissingForServices(enabled service.List) []string {
	var missing []string

	for _, serviceName := range requiredVarOrder {
		if !enabled.Contains(serviceName) {
			continue
		}

		for _, varName := range RequiredVars[serviceName] {
			if ctx.Value(varName) == "" && !slices.Contains(IgnorableVars, varName) {
				missing = append(missing, varName)
			}
		}
	}

	return missing
}

// RequireForServices fails when a variable required by one of the given
// enabled services is not set.
func (ctx *DeploymentContext) RequireForServices(enabled service.List) error {
	missing := ctx.MissingForServices(enabled)
	if len(missing) == 0 {
		return nil
	}

	return fmt.Errorf("environment variables [%s] must all be set to run this test",
		strings.Join(missing, ", "))
}
