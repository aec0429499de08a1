package fixtures

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cavaliergopher/grab/v3"
	"github.com/golang/glog"
)

const (
	cirrosReleaseURL = "http://download.cirros-cloud.net/version/released"
	cirrosImageBase  = "http://download.cirros-cloud.net"
	ubuntuImageURL   = "http://cloud-images.ubuntu.com/%s/current/%s-server-cloudimg-%s.img"

	// TestServerBinaryName is the octavia test server fixture file name.
	TestServerBinaryName = "test_server.bin"

	// DefaultArch is the image architecture used when none is requested.
	DefaultArch = "x86_64"
)

// CirrosImageName returns the cirros disk image file name for a version and
// architecture.
func CirrosImageName(version, arch string) string {
	return fmt.Sprintf("cirros-%s-%s-disk.img", version, arch)
}

// CirrosImageURL returns the download location of a cirros disk image.
func CirrosImageURL(version, arch string) string {
	return fmt.Sprintf("%s/%s/%s", cirrosImageBase, version, CirrosImageName(version, arch))
}

// UbuntuImageURL returns the download location of an ubuntu cloud image for
// the given release series.
func UbuntuImageURL(release, arch string) string {
	return fmt.Sprintf(ubuntuImageURL, release, release, arch)
}

// TestServerBinaryURL returns the swift location of the octavia test server
// fixture published by the deployment.
func TestServerBinaryURL(swiftIP string) string {
	return fmt.Sprintf("http://%s:80/swift/v1/fixtures/%s", swiftIP, TestServerBinaryName)
}

// CirrosLatestVersion reads the released cirros version from the upstream
// version endpoint, optionally through the given proxy.
func CirrosLatestVersion(proxyURL string) (string, error) {
	return latestVersion(cirrosReleaseURL, proxyURL)
}

// LatestCirrosImageURL resolves the download location of the most recent
// released cirros image for the given architecture.
func LatestCirrosImageURL(arch, proxyURL string) (string, error) {
	version, err := CirrosLatestVersion(proxyURL)
	if err != nil {
		return "", err
	}

	return CirrosImageURL(version, arch), nil
}

// Download saves the content of the given URL under the destination
// directory and returns the stored file path. An empty proxyURL downloads
// directly.
func Download(fileURL, destDir, proxyURL string) (string, error) {
	if fileURL == "" {
		return "", fmt.Errorf("fixture url cannot be empty")
	}

	if destDir == "" {
		return "", fmt.Errorf("fixture destination directory cannot be empty")
	}

	glog.V(90).Infof("Downloading fixture %s into %s", fileURL, destDir)

	grabClient := grab.NewClient()

	if proxyURL != "" {
		transport, ok := grabClient.HTTPClient.(*http.Client).Transport.(*http.Transport)
		if !ok {
			return "", fmt.Errorf("received unexpected http client configuring proxy")
		}

		parsedProxy, err := url.Parse(proxyURL)
		if err != nil {
			return "", fmt.Errorf("failed to parse proxy url %s: %w", proxyURL, err)
		}

		transport.Proxy = http.ProxyURL(parsedProxy)
	}

	grabRequest, err := grab.NewRequest(destDir, fileURL)
	if err != nil {
		return "", fmt.Errorf("failed to build download request for %s: %w", fileURL, err)
	}

	grabResponse := grabClient.Do(grabRequest)

	if err := grabResponse.Err(); err != nil {
		return "", fmt.Errorf("failed to download %s: %w", fileURL, err)
	}

	glog.V(90).Infof("Stored fixture at %s", grabResponse.Filename)

	return grabResponse.Filename, nil
}

// FetchTestServerBinary downloads the octavia test server fixture from the
// deployment swift proxy and marks it executable.
func FetchTestServerBinary(swiftIP, destDir, proxyURL string) (string, error) {
	if swiftIP == "" {
		return "", fmt.Errorf("swift proxy address cannot be empty")
	}

	return fetchExecutable(TestServerBinaryURL(swiftIP), destDir, proxyURL)
}

func fetchExecutable(fileURL, destDir, proxyURL string) (string, error) {
	fileName, err := Download(fileURL, destDir, proxyURL)
	if err != nil {
		return "", err
	}

	err = os.Chmod(fileName, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to mark %s executable: %w", fileName, err)
	}

	return fileName, nil
}

func latestVersion(releaseURL, proxyURL string) (string, error) {
	httpClient, err := newHTTPClient(proxyURL)
	if err != nil {
		return "", err
	}

	response, err := httpClient.Get(releaseURL)
	if err != nil {
		return "", fmt.Errorf("failed to read released version from %s: %w", releaseURL, err)
	}

	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to read released version from %s: status %s",
			releaseURL, response.Status)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read released version reply: %w", err)
	}

	return strings.TrimSpace(string(body)), nil
}

func newHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{}, nil
	}

	parsedProxy, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse proxy url %s: %w", proxyURL, err)
	}

	return &http.Client{Transport: &http.Transport{Proxy: http.ProxyURL(parsedProxy)}}, nil
}
