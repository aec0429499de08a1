package workspace

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/openstack-charmers/openstack-gotests/pkg/fixtures"
)

const (
	// ConfigFileName is the tempest configuration file name inside etc.
	ConfigFileName = "tempest.conf"
	// AccountsFileName is the accounts file name inside etc.
	AccountsFileName = "accounts.yaml"

	tempestDirName = ".tempest"
	etcDirName     = "etc"
)

// Workspace is a tempest workspace directory named after a deployment model.
type Workspace struct {
	Name string
	Path string
}

// New returns a workspace handle rooted under the .tempest directory in the
// user home, following the layout the tempest CLI uses.
func New(name string) (*Workspace, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user home directory: %w", err)
	}

	return NewAt(filepath.Join(homeDir, tempestDirName), name)
}

// NewAt returns a workspace handle rooted under the given base directory.
func NewAt(baseDir, name string) (*Workspace, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("workspace base directory cannot be empty")
	}

	if name == "" {
		return nil, fmt.Errorf("workspace name cannot be empty")
	}

	return &Workspace{Name: name, Path: filepath.Join(baseDir, name)}, nil
}

// Init creates the workspace through the tempest CLI. When the CLI is not
// available or fails, the directory skeleton is created directly so that
// configuration files can still be written.
func (ws *Workspace) Init() error {
	glog.V(90).Infof("Initializing tempest workspace %s at %s", ws.Name, ws.Path)

	output, err := exec.Command("tempest", "init", ws.Path).CombinedOutput()
	if err != nil {
		glog.V(90).Infof("tempest init failed, creating workspace skeleton directly: %v %s",
			err, string(output))

		err = os.MkdirAll(ws.EtcDir(), 0755)
		if err != nil {
			return fmt.Errorf("failed to create workspace directory %s: %w", ws.Path, err)
		}
	}

	return nil
}

// Destroy removes the workspace through the tempest CLI and deletes any
// leftover directory tree.
func (ws *Workspace) Destroy() error {
	glog.V(90).Infof("Destroying tempest workspace %s at %s", ws.Name, ws.Path)

	output, err := exec.Command(
		"tempest", "workspace", "remove", "--rmdir", "--name", ws.Name).CombinedOutput()
	if err != nil {
		glog.V(90).Infof("tempest workspace remove failed, removing tree directly: %v %s",
			err, string(output))
	}

	if _, err := os.Stat(ws.Path); err == nil {
		err = os.RemoveAll(ws.Path)
		if err != nil {
			return fmt.Errorf("failed to remove workspace directory %s: %w", ws.Path, err)
		}
	}

	return nil
}

// EtcDir returns the configuration directory of the workspace.
func (ws *Workspace) EtcDir() string {
	return filepath.Join(ws.Path, etcDirName)
}

// ConfigPath returns the location of the rendered tempest configuration.
func (ws *Workspace) ConfigPath() string {
	return filepath.Join(ws.EtcDir(), ConfigFileName)
}

// AccountsPath returns the location of the rendered accounts file.
func (ws *Workspace) AccountsPath() string {
	return filepath.Join(ws.EtcDir(), AccountsFileName)
}

// WriteConfig stores the rendered tempest configuration in the workspace.
func (ws *Workspace) WriteConfig(content string) error {
	return ws.writeEtcFile(ws.ConfigPath(), content)
}

// WriteAccounts stores the rendered accounts file in the workspace.
func (ws *Workspace) WriteAccounts(content string) error {
	return ws.writeEtcFile(ws.AccountsPath(), content)
}

// StageFixture downloads a test fixture into the workspace root and returns
// the stored file path. Helper payloads such as the octavia test server are
// expected next to the workspace configuration.
func (ws *Workspace) StageFixture(fileURL, proxyURL string) (string, error) {
	err := os.MkdirAll(ws.Path, 0755)
	if err != nil {
		return "", fmt.Errorf("failed to create workspace directory %s: %w", ws.Path, err)
	}

	return fixtures.Download(fileURL, ws.Path, proxyURL)
}

func (ws *Workspace) writeEtcFile(path, content string) error {
	glog.V(100).Infof("Writing workspace file %s", path)

	err := os.MkdirAll(ws.EtcDir(), 0755)
	if err != nil {
		return fmt.Errorf("failed to create workspace directory %s: %w", ws.EtcDir(), err)
	}

	err = os.WriteFile(path, []byte(content), 0644)
	if err != nil {
		return fmt.Errorf("failed to write workspace file %s: %w", path, err)
	}

	return nil
}
