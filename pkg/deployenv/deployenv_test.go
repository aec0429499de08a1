package deployenv

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openstack-charmers/openstack-gotests/pkg/service"
)

var referenceVarNames = []string{
	"TEST_GATEWAY", "TEST_CIDR_EXT", "TEST_FIP_RANGE", "TEST_NAME_SERVER",
	"TEST_CIDR_PRIV", "TEST_SWIFT_IP", "TEST_EXT_NET", "TEST_EXT_NET_SUBNET",
	"TEST_FIP_SERVICE_SUBNET_NAME", "TEST_PRIVATE_NET", "TEST_PRIVATE_NET_SUBNET",
	"TEST_PROVIDER_ROUTER", "TEST_CIRROS_IMAGE_NAME", "TEST_BIONIC_IMAGE_NAME",
	"TEST_FOCAL_IMAGE_NAME", "TEST_JAMMY_IMAGE_NAME", "TEST_REGISTRY_PREFIX",
	"TEST_HTTP_PROXY", "TEST_PRIVKEY", "TEST_TMPDIR",
}

func clearDeploymentEnv(t *testing.T) {
	t.Helper()

	for _, varName := range referenceVarNames {
		// Setenv registers the restore cleanup, then the variable is unset so
		// envconfig falls back to defaults.
		t.Setenv(varName, "")
		err := os.Unsetenv(varName)
		assert.Nil(t, err)
	}
}

func TestReadDefaults(t *testing.T) {
	clearDeploymentEnv(t)

	deployCtx, err := Read()
	assert.Nil(t, err)
	assert.Equal(t, "ext_net", deployCtx.ExtNet)
	assert.Equal(t, "ext_net_subnet", deployCtx.ExtNetSubnet)
	assert.Equal(t, "fip_service_subnet", deployCtx.FIPServiceSubnetName)
	assert.Equal(t, "private", deployCtx.PrivateNet)
	assert.Equal(t, "private_subnet", deployCtx.PrivateNetSubnet)
	assert.Equal(t, "provider-router", deployCtx.ProviderRouter)
	assert.Equal(t, "cirros", deployCtx.CirrosImageName)
	assert.Equal(t, "focal", deployCtx.FocalImageName)
	assert.Empty(t, deployCtx.Gateway)
	assert.Empty(t, deployCtx.SwiftIP)
}

func TestReadFromEnvironment(t *testing.T) {
	clearDeploymentEnv(t)
	t.Setenv("TEST_GATEWAY", "10.0.0.1")
	t.Setenv("TEST_SWIFT_IP", "10.0.0.30")
	t.Setenv("TEST_EXT_NET", "public")

	deployCtx, err := Read()
	assert.Nil(t, err)
	assert.Equal(t, "10.0.0.1", deployCtx.Gateway)
	assert.Equal(t, "10.0.0.30", deployCtx.SwiftIP)
	assert.Equal(t, "public", deployCtx.ExtNet)
}

func TestValue(t *testing.T) {
	deployCtx := &DeploymentContext{
		Gateway:    "10.0.0.1",
		NameServer: "10.0.0.2",
		SwiftIP:    "10.0.0.30",
	}

	testCases := []struct {
		varName       string
		expectedValue string
	}{
		{varName: "TEST_GATEWAY", expectedValue: "10.0.0.1"},
		{varName: "TEST_NAME_SERVER", expectedValue: "10.0.0.2"},
		{varName: "TEST_SWIFT_IP", expectedValue: "10.0.0.30"},
		{varName: "TEST_CIDR_PRIV", expectedValue: ""},
		{varName: "TEST_UNKNOWN", expectedValue: ""},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectedValue, deployCtx.Value(testCase.varName))
	}
}

func TestValueCoversReference(t *testing.T) {
	deployCtx := &DeploymentContext{
		Gateway:              "set",
		CIDRExt:              "set",
		FIPRange:             "set",
		NameServer:           "set",
		CIDRPriv:             "set",
		SwiftIP:              "set",
		ExtNet:               "set",
		ExtNetSubnet:         "set",
		FIPServiceSubnetName: "set",
		PrivateNet:           "set",
		PrivateNetSubnet:     "set",
		ProviderRouter:       "set",
		CirrosImageName:      "set",
		BionicImageName:      "set",
		FocalImageName:       "set",
		JammyImageName:       "set",
		RegistryPrefix:       "set",
		HTTPProxy:            "set",
		PrivKeyPath:          "set",
		TmpDir:               "set",
	}

	for _, varDoc := range Reference() {
		assert.Equal(t, "set", deployCtx.Value(varDoc.Name),
			"reference variable %s is not wired into Value", varDoc.Name)
	}
}

func TestMissingForServices(t *testing.T) {
	testCases := []struct {
		deployCtx       *DeploymentContext
		enabled         service.List
		expectedMissing []string
	}{
		{
			deployCtx: &DeploymentContext{},
			enabled:   service.List{service.Neutron, service.Swift},
			expectedMissing: []string{
				"TEST_GATEWAY", "TEST_CIDR_EXT", "TEST_FIP_RANGE",
				"TEST_NAME_SERVER", "TEST_SWIFT_IP",
			},
		},
		{
			deployCtx:       &DeploymentContext{},
			enabled:         service.List{service.Swift},
			expectedMissing: []string{"TEST_SWIFT_IP"},
		},
		{
			deployCtx: &DeploymentContext{
				Gateway:  "10.0.0.1",
				CIDRExt:  "10.0.0.0/24",
				FIPRange: "10.0.0.200:10.0.0.254",
			},
			enabled:         service.List{service.Neutron},
			expectedMissing: []string{"TEST_NAME_SERVER"},
		},
		{
			deployCtx:       &DeploymentContext{},
			enabled:         service.List{service.Nova, service.Glance},
			expectedMissing: nil,
		},
		{
			deployCtx:       &DeploymentContext{},
			enabled:         nil,
			expectedMissing: nil,
		},
		{
			deployCtx: &DeploymentContext{
				Gateway:    "10.0.0.1",
				CIDRExt:    "10.0.0.0/24",
				FIPRange:   "10.0.0.200:10.0.0.254",
				NameServer: "10.0.0.2",
				SwiftIP:    "10.0.0.30",
			},
			enabled:         service.List{service.Neutron, service.Swift},
			expectedMissing: nil,
		},
	}

	for _, testCase := range testCases {
		missing := testCase.deployCtx.MissingForServices(testCase.enabled)
		assert.Equal(t, testCase.expectedMissing, missing)
	}
}

func TestMissingForServicesSkipsIgnorable(t *testing.T) {
	deployCtx := &DeploymentContext{
		Gateway:    "10.0.0.1",
		CIDRExt:    "10.0.0.0/24",
		FIPRange:   "10.0.0.200:10.0.0.254",
		NameServer: "10.0.0.2",
	}

	missing := deployCtx.MissingForServices(service.List{service.Neutron})
	assert.NotContains(t, missing, "TEST_CIDR_PRIV")
	assert.Empty(t, missing)
}

func TestRequireForServices(t *testing.T) {
	testCases := []struct {
		deployCtx        *DeploymentContext
		enabled          service.List
		expectedErrorMsg string
	}{
		{
			deployCtx:        &DeploymentContext{},
			enabled:          service.List{service.Swift},
			expectedErrorMsg: "environment variables [TEST_SWIFT_IP] must all be set to run this test",
		},
		{
			deployCtx: &DeploymentContext{},
			enabled:   service.List{service.Neutron},
			expectedErrorMsg: "environment variables [TEST_GATEWAY, TEST_CIDR_EXT, TEST_FIP_RANGE, " +
				"TEST_NAME_SERVER] must all be set to run this test",
		},
		{
			deployCtx:        &DeploymentContext{SwiftIP: "10.0.0.30"},
			enabled:          service.List{service.Swift},
			expectedErrorMsg: "",
		},
	}

	for _, testCase := range testCases {
		err := testCase.deployCtx.RequireForServices(testCase.enabled)

		if testCase.expectedErrorMsg != "" {
			assert.NotNil(t, err)
			assert.Equal(t, testCase.expectedErrorMsg, err.Error())
		} else {
			assert.Nil(t, err)
		}
	}
}

func TestReferenceRequiredVarsConsistent(t *testing.T) {
	documented := map[string]VarDoc{}
	for _, varDoc := range Reference() {
		documented[varDoc.Name] = varDoc
	}

	for serviceName, varNames := range RequiredVars {
		for _, varName := range varNames {
			varDoc, found := documented[varName]
			assert.True(t, found, fmt.Sprintf("required variable %s is undocumented", varName))
			assert.Equal(t, serviceName, varDoc.RequiredBy)
		}
	}
}
