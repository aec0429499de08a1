package systemreporter

import (
	"fmt"
	"os"
	"path/filepath"
	re "regexp"
	"strings"

	"github.com/golang/glog"
	"github.com/onsi/ginkgo/v2/types"
	"github.com/openstack-charmers/openstack-gotests/pkg/remote"
	. "github.com/openstack-charmers/openstack-gotests/tests/internal/inittools"
)

var (
	// Matches option hyphens, spaces, and special characters.
	specialChars = re.MustCompile(`-?\s-?|[/|'"\.\[\]]`)

	// Matches duplicate underscores.
	dupUnderscores = re.MustCompile(`__+`)

	// Matches leading and trailing underscores.
	leadAndTrailUnderscores = re.MustCompile(`^_|_$`)
)

// ReportIfFailedFromUnits dumps the requested command output from the given
// deployment units through ssh if a test case fails.
func ReportIfFailedFromUnits(report types.SpecReport, testSuite string, commands, units []string) {
	if !types.SpecStateFailureStates.Is(report.State) {
		return
	}

	if len(units) == 0 {
		return
	}

	dumpDir := GeneralConfig.GetDumpFailedTestReportLocation(testSuite)
	if dumpDir == "" {
		return
	}

	tcReportFolderName := strings.ReplaceAll(report.FullText(), " ", "_")

	systemFolder := filepath.Join(dumpDir, tcReportFolderName, "system")

	err := os.MkdirAll(systemFolder, 0755)
	if err != nil {
		glog.Errorf("failed to create directory for storing system info %s", err)

		return
	}

	GatherInfoThroughSSH(commands, systemFolder, GeneralConfig.SSHKeyPath, units)
}

// GatherInfoThroughSSH gathers command output from the given deployment
// units and writes the output to the given directory.
func GatherInfoThroughSSH(commands []string, outputdir string, sshKeyPath string, units []string) {
	if sshKeyPath == "" {
		glog.Errorf("cannot gather system information without providing ssh key path")

		return
	}

	for _, unit := range units {
		for _, command := range commands {
			result := remote.RunCommand(
				command, fmt.Sprintf("%s:22", unit), GeneralConfig.SSHUser, sshKeyPath)
			if result.Err != nil {
				glog.Errorf("error executing command '%s' on %s: %s", command, unit, result.Err)

				continue
			}

			outputFile := filepath.Join(outputdir, unit+"_"+fileNameFromCommand(command))

			err := os.WriteFile(outputFile, []byte(result.Output), 0650)
			if err != nil {
				glog.Errorf("error writing to file: %s", err)
			}
		}
	}
}

func fileNameFromCommand(command string) string {
	fileName := command

	// Replace option hyphens, spaces, and special characters with underscores everywhere in the command.
	fileName = specialChars.ReplaceAllString(fileName, "_")

	// Remove repeated underscores
	fileName = dupUnderscores.ReplaceAllString(fileName, "_")

	// Remove leading and trailing underscores
	fileName = leadAndTrailUnderscores.ReplaceAllString(fileName, "")

	return fileName
}
