package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/onsi/ginkgo/v2/types"
	. "github.com/openstack-charmers/openstack-gotests/tests/internal/inittools"
)

// ReportIfFailed stores the given named artifacts under the failed test dump
// location when a test case fails. Artifacts map file names to content, for
// example the tempest configuration rendered by the failing case.
func ReportIfFailed(report types.SpecReport, testSuite string, artifacts map[string]string) {
	if !types.SpecStateFailureStates.Is(report.State) {
		return
	}

	dumpDir := GeneralConfig.GetDumpFailedTestReportLocation(testSuite)
	if dumpDir == "" {
		return
	}

	tcReportFolderName := strings.ReplaceAll(report.FullText(), " ", "_")
	artifactFolder := filepath.Join(dumpDir, tcReportFolderName)

	err := os.MkdirAll(artifactFolder, 0755)
	if err != nil {
		glog.Errorf("failed creating dir for failure artifacts: %s", err)

		return
	}

	for name, content := range artifacts {
		err = os.WriteFile(filepath.Join(artifactFolder, name), []byte(content), 0644)
		if err != nil {
			glog.Errorf("failed writing failure artifact %s: %s", name, err)
		}
	}

	failureMessage := fmt.Sprintf("%s\n%s\n", report.FullText(), report.Failure.Message)

	err = os.WriteFile(filepath.Join(artifactFolder, "failure.txt"), []byte(failureMessage), 0644)
	if err != nil {
		glog.Errorf("failed writing failure message: %s", err)
	}
}
