package inittools

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/openstack-charmers/openstack-gotests/pkg/deployenv"
	"github.com/openstack-charmers/openstack-gotests/tests/internal/config"
)

var (
	// DeployEnv provides access to the deployment environment variables.
	DeployEnv *deployenv.DeploymentContext
	// GeneralConfig provides access to general configuration parameters.
	GeneralConfig *config.GeneralConfig
)

// init loads all variables automatically when this package is imported. Once package is imported a user has full
// access to all vars within init function. It is recommended to import this package using dot import.
func init() {
	// Skip loading config if running unit tests
	if os.Getenv("UNIT_TEST") == "true" {
		return
	}

	if GeneralConfig = config.NewConfig(); GeneralConfig == nil {
		glog.Fatalf("error to load general config")
	}

	_ = flag.Lookup("logtostderr").Value.Set("true")
	_ = flag.Lookup("v").Value.Set(GeneralConfig.VerboseLevel)

	var err error

	if DeployEnv, err = deployenv.Read(); err != nil {
		if GeneralConfig.DryRun {
			return
		}

		glog.Exitf("can not load deployment environment: %v", err)
	}
}
