package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	t.Setenv("TEST_REPORTS_DUMP_DIR", filepath.Join(t.TempDir(), "reports"))

	cfg := NewConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "OSTC-", cfg.TCPrefix)
	assert.Equal(t, "default", cfg.ModelName)
	assert.Equal(t, "ubuntu", cfg.SSHUser)
	assert.Empty(t, cfg.DumpUnits)
	assert.NotEmpty(t, cfg.TmpDir)
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("TEST_REPORTS_DUMP_DIR", filepath.Join(t.TempDir(), "reports"))
	t.Setenv("TEST_MODEL_NAME", "zaza-3bdf2e")
	t.Setenv("TEST_CLOUD_RELEASE", "jammy_yoga")
	t.Setenv("TEST_DUMP_UNITS", "10.5.0.11,10.5.0.12")

	cfg := NewConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "zaza-3bdf2e", cfg.ModelName)
	assert.Equal(t, "jammy_yoga", cfg.CloudRelease)
	assert.Equal(t, []string{"10.5.0.11", "10.5.0.12"}, cfg.DumpUnits)
}

func TestGetJunitReportPath(t *testing.T) {
	cfg := GeneralConfig{ReportsDirAbsPath: "/tmp/reports"}

	assert.Equal(t, "/tmp/reports/rendering_suite_test_junit.xml",
		cfg.GetJunitReportPath("/repo/tests/rendering_suite_test.go"))
}

func TestGetReportPath(t *testing.T) {
	testCases := []struct {
		enableReport bool
		expectedPath string
	}{
		{enableReport: true, expectedPath: "/tmp/reports/report_testrun.xml"},
		{enableReport: false, expectedPath: ""},
	}

	for _, testCase := range testCases {
		cfg := GeneralConfig{ReportsDirAbsPath: "/tmp/reports", EnableReport: testCase.enableReport}
		assert.Equal(t, testCase.expectedPath, cfg.GetReportPath())
	}
}

func TestGetDumpFailedTestReportLocation(t *testing.T) {
	reportsDir := t.TempDir()

	cfg := GeneralConfig{ReportsDirAbsPath: reportsDir, DumpFailedTests: true}
	assert.Equal(t, filepath.Join(reportsDir, "failed_rendering_suite_test"),
		cfg.GetDumpFailedTestReportLocation("rendering_suite_test.go"))

	cfg.DumpFailedTests = false
	assert.Equal(t, "", cfg.GetDumpFailedTestReportLocation("rendering_suite_test.go"))
}
