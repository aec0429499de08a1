package fixtures

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCirrosImageName(t *testing.T) {
	testCases := []struct {
		version      string
		arch         string
		expectedName string
	}{
		{version: "0.6.2", arch: "x86_64", expectedName: "cirros-0.6.2-x86_64-disk.img"},
		{version: "0.5.1", arch: "aarch64", expectedName: "cirros-0.5.1-aarch64-disk.img"},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectedName, CirrosImageName(testCase.version, testCase.arch))
	}
}

func TestCirrosImageURL(t *testing.T) {
	assert.Equal(t,
		"http://download.cirros-cloud.net/0.6.2/cirros-0.6.2-x86_64-disk.img",
		CirrosImageURL("0.6.2", DefaultArch))
}

func TestUbuntuImageURL(t *testing.T) {
	testCases := []struct {
		release     string
		arch        string
		expectedURL string
	}{
		{
			release:     "focal",
			arch:        "amd64",
			expectedURL: "http://cloud-images.ubuntu.com/focal/current/focal-server-cloudimg-amd64.img",
		},
		{
			release:     "jammy",
			arch:        "arm64",
			expectedURL: "http://cloud-images.ubuntu.com/jammy/current/jammy-server-cloudimg-arm64.img",
		},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expectedURL, UbuntuImageURL(testCase.release, testCase.arch))
	}
}

func TestTestServerBinaryURL(t *testing.T) {
	assert.Equal(t,
		"http://10.0.0.30:80/swift/v1/fixtures/test_server.bin",
		TestServerBinaryURL("10.0.0.30"))
}

func TestLatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			_, err := writer.Write([]byte("0.6.2\n"))
			assert.Nil(t, err)
		}))
	defer server.Close()

	version, err := latestVersion(server.URL, "")
	assert.Nil(t, err)
	assert.Equal(t, "0.6.2", version)
}

func TestLatestVersionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		}))
	defer server.Close()

	_, err := latestVersion(server.URL, "")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to read released version")
}

func TestLatestVersionBadProxy(t *testing.T) {
	_, err := latestVersion("http://download.cirros-cloud.net/version/released", "://bad-proxy")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "failed to parse proxy url")
}

func fixtureServer(t *testing.T, content []byte) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/swift/v1/fixtures/test_server.bin",
		func(writer http.ResponseWriter, request *http.Request) {
			http.ServeContent(writer, request, TestServerBinaryName, time.Now(),
				bytes.NewReader(content))
		})

	return httptest.NewServer(mux)
}

func TestDownload(t *testing.T) {
	content := []byte("#!/bin/sh\nexit 0\n")
	server := fixtureServer(t, content)
	defer server.Close()

	destDir := t.TempDir()
	fileName, err := Download(server.URL+"/swift/v1/fixtures/test_server.bin", destDir, "")
	assert.Nil(t, err)
	assert.Equal(t, filepath.Join(destDir, TestServerBinaryName), fileName)

	stored, err := os.ReadFile(fileName)
	assert.Nil(t, err)
	assert.Equal(t, content, stored)
}

func TestDownloadInvalidArgs(t *testing.T) {
	testCases := []struct {
		fileURL          string
		destDir          string
		expectedErrorMsg string
	}{
		{fileURL: "", destDir: "/tmp", expectedErrorMsg: "fixture url cannot be empty"},
		{fileURL: "http://10.0.0.30/fixture", destDir: "",
			expectedErrorMsg: "fixture destination directory cannot be empty"},
	}

	for _, testCase := range testCases {
		_, err := Download(testCase.fileURL, testCase.destDir, "")
		assert.NotNil(t, err)
		assert.Equal(t, testCase.expectedErrorMsg, err.Error())
	}
}

func TestFetchExecutable(t *testing.T) {
	server := fixtureServer(t, []byte("#!/bin/sh\nexit 0\n"))
	defer server.Close()

	destDir := t.TempDir()
	fileName, err := fetchExecutable(
		server.URL+"/swift/v1/fixtures/test_server.bin", destDir, "")
	assert.Nil(t, err)

	info, err := os.Stat(fileName)
	assert.Nil(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestFetchTestServerBinaryEmptyAddress(t *testing.T) {
	_, err := FetchTestServerBinary("", t.TempDir(), "")
	assert.NotNil(t, err)
	assert.Equal(t, "swift proxy address cannot be empty", err.Error())
}
