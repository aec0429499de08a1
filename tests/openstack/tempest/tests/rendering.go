package tests

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/openstack-charmers/openstack-gotests/pkg/deployenv"
	"github.com/openstack-charmers/openstack-gotests/pkg/fixtures"
	"github.com/openstack-charmers/openstack-gotests/pkg/release"
	"github.com/openstack-charmers/openstack-gotests/pkg/service"
	"github.com/openstack-charmers/openstack-gotests/pkg/tempest"
	"github.com/openstack-charmers/openstack-gotests/pkg/workspace"
	. "github.com/openstack-charmers/openstack-gotests/tests/internal/inittools"
	"github.com/openstack-charmers/openstack-gotests/tests/internal/testreport"
	"github.com/openstack-charmers/openstack-gotests/tests/openstack/tempest/internal/tsparams"
)

var _ = Describe("Tempest configuration", Ordered, Label(tsparams.LabelSuite), func() {
	var testWorkspace *workspace.Workspace

	BeforeAll(func() {
		By("Creating a scratch tempest workspace")

		var err error
		testWorkspace, err = workspace.NewAt(
			filepath.Join(GeneralConfig.TmpDir, ".tempest"), GeneralConfig.ModelName)
		Expect(err).ToNot(HaveOccurred(), "error creating workspace handle")

		err = testWorkspace.Init()
		Expect(err).ToNot(HaveOccurred(), "error initializing workspace")
	})

	AfterAll(func() {
		By("Destroying the scratch tempest workspace")

		err := testWorkspace.Destroy()
		Expect(err).ToNot(HaveOccurred(), "error destroying workspace")
	})

	It("renders the identity section for a keystone deployment", testreport.ID("38601"), func() {
		config, err := tempest.NewBuilder(identityContext()).Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		Expect(config).To(ContainSubstring(
			fmt.Sprintf("[identity]\nuri = http://%s:5000/v2.0\nuri_v3 = http://%s:5000/v3\n",
				tsparams.KeystoneHost, tsparams.KeystoneHost)))
		Expect(config).To(ContainSubstring("auth_version = v3\n"))
		Expect(config).To(ContainSubstring("admin_domain_scope = true\n"))
		Expect(config).To(ContainSubstring("[identity-feature-enabled]\napi_v2 = false\napi_v3 = true\n"))
	})

	It("honors an explicit admin domain scope", testreport.ID("38602"), func() {
		domainScope := false
		testCtx := identityContext()
		testCtx.AdminDomainScope = &domainScope

		config, err := tempest.NewBuilder(testCtx).Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
		Expect(config).To(ContainSubstring("admin_domain_scope = false\n"))
	})

	It("lists service availability in caller order", testreport.ID("38603"), func() {
		config, err := tempest.NewBuilder(&tempest.Context{}).
			WithEnabledServices(service.Glance, service.Swift).
			WithDisabledServices(service.Trove, service.Zaqar).
			Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		Expect(config).To(ContainSubstring(
			"[service_available]\nglance = true\nswift = true\ntrove = false\nzaqar = false\n"))
	})

	It("derives the disabled services from the catalog", testreport.ID("38604"), func() {
		config, err := tempest.NewBuilder(&tempest.Context{}).
			WithEnabledServices(service.Glance, service.Swift).
			WithDerivedDisabled().
			Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		Expect(config).To(ContainSubstring("glance = true\n"))
		Expect(config).To(ContainSubstring("ceilometer = false\n"))
		Expect(config).To(ContainSubstring("zaqar = false\n"))
		Expect(config).ToNot(ContainSubstring("glance = false\n"))
	})

	It("keeps both lines when a service is enabled and disabled", testreport.ID("38605"), func() {
		config, err := tempest.NewBuilder(&tempest.Context{}).
			WithEnabledServices(service.Glance).
			WithDisabledServices(service.Glance).
			Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		Expect(config).To(ContainSubstring("[service_available]\nglance = true\nglance = false\n"))
	})

	It("names the variable and section when a required value is missing",
		testreport.ID("38606"), func() {
			_, err := tempest.NewBuilder(&tempest.Context{
				Enabled: service.List{service.Nova},
			}).Render()

			Expect(err).To(HaveOccurred(), "rendering must fail without image references")
			Expect(tempest.IsMissingVariable(err)).To(BeTrue(), "error must identify the variable")
			Expect(err.Error()).To(ContainSubstring(`variable "image_id"`))
			Expect(err.Error()).To(ContainSubstring("[compute]"))
		})

	It("renders magnum registry labels only when a prefix is configured",
		testreport.ID("38607"), func() {
			testCtx := magnumContext()

			config, err := tempest.NewBuilder(testCtx).Render()
			Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
			Expect(config).ToNot(ContainSubstring("insecure_registry"))

			testCtx = magnumContext()
			testCtx.RegistryPrefix = "10.5.0.99:5000"

			config, err = tempest.NewBuilder(testCtx).Render()
			Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
			Expect(config).To(ContainSubstring("labels = insecure_registry:10.5.0.99:5000\n"))
			Expect(config).To(ContainSubstring("insecure_registry = 10.5.0.99:5000\n"))
		})

	It("selects neutron api extensions by release", testreport.ID("38608"), func() {
		oldCtx := identityContext()
		oldCtx.Enabled = oldCtx.Enabled.Add(service.Neutron)
		oldCtx.ExtNetID = tsparams.ExtNetID
		oldCtx.NameServer = tsparams.NameServer
		oldCtx.ReleasePair = "trusty_mitaka"

		config, err := tempest.NewBuilder(oldCtx).Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
		Expect(config).To(ContainSubstring("api_extensions = all\n"))

		newCtx := identityContext()
		newCtx.Enabled = newCtx.Enabled.Add(service.Neutron)
		newCtx.ExtNetID = tsparams.ExtNetID
		newCtx.NameServer = tsparams.NameServer
		newCtx.ReleasePair = "jammy_yoga"

		config, err = tempest.NewBuilder(newCtx).Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
		Expect(config).To(ContainSubstring("api_extensions = " + release.NeutronExtensions + "\n"))
	})

	It("reports the missing deployment variables for the enabled services",
		testreport.ID("38609"), func() {
			deployCtx := &deployenv.DeploymentContext{SwiftIP: tsparams.SwiftIP}

			err := deployCtx.RequireForServices(service.List{service.Neutron, service.Swift})
			Expect(err).To(HaveOccurred(), "gating must fail without network variables")
			Expect(err.Error()).To(ContainSubstring("TEST_GATEWAY"))
			Expect(err.Error()).To(ContainSubstring("must all be set to run this test"))
			Expect(err.Error()).ToNot(ContainSubstring("TEST_SWIFT_IP"))
		})

	It("renders and stores the full deployment configuration", testreport.ID("38610"), func() {
		testCtx := fullContext(testWorkspace.Path)

		By("Rendering the tempest configuration and accounts")

		builder := tempest.NewBuilder(testCtx).WithDerivedDisabled()

		config, err := builder.Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		accounts, err := builder.RenderAccounts()
		Expect(err).ToNot(HaveOccurred(), "error rendering accounts")

		tsparams.ReporterArtifactsToDump[workspace.ConfigFileName] = config
		tsparams.ReporterArtifactsToDump[workspace.AccountsFileName] = accounts

		By("Checking the guarded sections of the rendered configuration")

		Expect(config).To(HavePrefix("[DEFAULT]\n"))
		Expect(config).To(ContainSubstring("[compute]\nimage_ref = " + tsparams.ImageID + "\n"))
		Expect(config).To(ContainSubstring(
			"http_image = http://" + tsparams.SwiftIP + ":80/swift/v1/images/"))
		Expect(config).To(ContainSubstring("public_network_id = " + tsparams.ExtNetID + "\n"))
		Expect(config).To(ContainSubstring(
			"test_server_binary = " + filepath.Join(testWorkspace.Path, "test_server.bin") + "\n"))
		Expect(config).To(ContainSubstring("[dns]\nnameservers = " + tsparams.NameServer + "\n"))
		Expect(config).To(ContainSubstring("[share]\n"))
		Expect(config).To(ContainSubstring("capability_storage_protocol = NFS\n"))
		Expect(config).To(ContainSubstring("backend_names = cinder-ceph\n"))
		Expect(config).To(ContainSubstring("proxy_url = http://squid.internal:3128\n"))
		Expect(config).To(ContainSubstring("[enforce_scope]\nkeystone = false\nnova = false\n"))

		By("Writing both files into the workspace and reading them back")

		err = testWorkspace.WriteConfig(config)
		Expect(err).ToNot(HaveOccurred(), "error writing configuration")

		err = testWorkspace.WriteAccounts(accounts)
		Expect(err).ToNot(HaveOccurred(), "error writing accounts")

		storedConfig, err := os.ReadFile(testWorkspace.ConfigPath())
		Expect(err).ToNot(HaveOccurred(), "error reading stored configuration")
		Expect(string(storedConfig)).To(Equal(config), "stored configuration must match rendering")

		storedAccounts, err := os.ReadFile(testWorkspace.AccountsPath())
		Expect(err).ToNot(HaveOccurred(), "error reading stored accounts")
		Expect(string(storedAccounts)).To(ContainSubstring("username: admin\n"))
	})

	It("renders identical output for identical contexts", testreport.ID("38611"), func() {
		first, err := tempest.NewBuilder(fullContext(testWorkspace.Path)).WithDerivedDisabled().Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		second, err := tempest.NewBuilder(fullContext(testWorkspace.Path)).WithDerivedDisabled().Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")

		Expect(second).To(Equal(first), "rendering must be deterministic")
	})

	It("stages the test server where the configuration expects it", testreport.ID("38612"), func() {
		content := []byte("#!/bin/sh\nexit 0\n")
		fixtureServer := httptest.NewServer(http.HandlerFunc(
			func(writer http.ResponseWriter, request *http.Request) {
				http.ServeContent(writer, request, fixtures.TestServerBinaryName, time.Now(),
					bytes.NewReader(content))
			}))
		defer fixtureServer.Close()

		By("Staging the test server fixture into the workspace")

		storedPath, err := testWorkspace.StageFixture(
			fixtureServer.URL+"/"+fixtures.TestServerBinaryName, "")
		Expect(err).ToNot(HaveOccurred(), "error staging the test server fixture")

		stored, err := os.ReadFile(storedPath)
		Expect(err).ToNot(HaveOccurred(), "error reading the staged fixture")
		Expect(stored).To(Equal(content), "staged fixture must match the published payload")

		By("Checking the rendered configuration points at the staged file")

		config, err := tempest.NewBuilder(fullContext(testWorkspace.Path)).WithDerivedDisabled().Render()
		Expect(err).ToNot(HaveOccurred(), "error rendering configuration")
		Expect(config).To(ContainSubstring("test_server_binary = " + storedPath + "\n"))
	})
})

func identityContext() *tempest.Context {
	return &tempest.Context{
		Enabled:         service.List{service.Keystone},
		Proto:           "http",
		KeystoneHost:    tsparams.KeystoneHost,
		DefaultDomainID: tsparams.DefaultDomainID,
	}
}

func magnumContext() *tempest.Context {
	return &tempest.Context{
		Enabled:             service.List{service.Magnum},
		FedoraCoreOSImageID: tsparams.ImageID,
		ExtNetID:            tsparams.ExtNetID,
	}
}

func fullContext(workspacePath string) *tempest.Context {
	return &tempest.Context{
		Enabled: service.List{
			service.Keystone, service.Glance, service.Cinder, service.Neutron,
			service.Nova, service.Swift, service.Heat, service.Octavia,
			service.Magnum, service.Designate, service.Manila,
		},
		WorkspacePath:       workspacePath,
		ReleasePair:         "jammy_yoga",
		Proto:               "http",
		KeystoneHost:        tsparams.KeystoneHost,
		DefaultDomainID:     tsparams.DefaultDomainID,
		ImageID:             tsparams.ImageID,
		ImageAltID:          tsparams.ImageAltID,
		FlavorRef:           tsparams.FlavorRef,
		FlavorRefAlt:        tsparams.FlavorRefAlt,
		ExtNetID:            tsparams.ExtNetID,
		NameServer:          tsparams.NameServer,
		SwiftIP:             tsparams.SwiftIP,
		CatalogType:         "volumev3",
		FedoraCoreOSImageID: tsparams.ImageID,
		HTTPProxy:           "http://squid.internal:3128",
	}
}
