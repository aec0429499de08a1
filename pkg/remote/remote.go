package remote

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	scp "github.com/povsister/scp"
	"golang.org/x/crypto/ssh"
)

// CommandResult is the outcome of running a command on a remote host. Err is
// nil on success; on failure Output may still carry partial output. Returning
// a single struct keeps channel based fan out of remote commands simple.
type CommandResult struct {
	Output string
	Err    error
}

// RunCommand executes a command on a remote host over ssh using public key
// authentication. The address takes the "10.5.0.8:22" form and the private
// key must already be authorized on the host.
func RunCommand(command, address, user, privateKeyPath string) *CommandResult {
	glog.V(100).Infof("Executing %q on remote host %s as %s", command, address, user)

	result := new(CommandResult)

	keyBuf, err := os.ReadFile(privateKeyPath)
	if err != nil {
		glog.V(100).Infof("Unable to open private key %s: %v", privateKeyPath, err)

		result.Err = err

		return result
	}

	signer, err := ssh.ParsePrivateKey(keyBuf)
	if err != nil {
		glog.V(100).Infof("Unable to parse private key %s: %v", privateKeyPath, err)

		result.Err = err

		return result
	}

	config := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.PublicKeys(signer),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	client, err := ssh.Dial("tcp", address, config)
	if err != nil {
		glog.V(100).Infof("Failed to dial %s: %v", address, err)

		result.Err = err

		return result
	}

	session, err := client.NewSession()
	if err != nil {
		glog.V(100).Infof("Failed to create session: %v", err)

		result.Err = err

		return result
	}
	defer session.Close()

	output, err := session.CombinedOutput(command)
	if err != nil {
		glog.V(100).Infof("Failed to run command %q, output %s: %v", command, string(output), err)

		result.Output = string(output)
		result.Err = err

		return result
	}

	result.Output = string(output)
	glog.V(100).Infof("Remote command output: %s", result.Output)

	return result
}

// CopyFileTo transfers a local file to a remote host over scp using public
// key authentication.
func CopyFileTo(source, destination, address, user, privateKeyPath string) error {
	scpClient, err := newSCPClient(source, destination, address, user, privateKeyPath)
	if err != nil {
		return err
	}

	glog.V(100).Infof("Transferring %s to %s on %s", source, destination, address)

	return scpClient.CopyFileToRemote(source, destination, &scp.FileTransferOption{})
}

// CopyFileFrom transfers a file from a remote host to the local filesystem
// over scp using public key authentication.
func CopyFileFrom(source, destination, address, user, privateKeyPath string) error {
	scpClient, err := newSCPClient(source, destination, address, user, privateKeyPath)
	if err != nil {
		return err
	}

	glog.V(100).Infof("Transferring %s from %s to %s", source, address, destination)

	err = scpClient.CopyFileFromRemote(source, destination, &scp.FileTransferOption{})
	if err != nil {
		return err
	}

	if _, err := os.Stat(destination); os.IsNotExist(err) {
		return err
	}

	return nil
}

func newSCPClient(source, destination, address, user, privateKeyPath string) (*scp.Client, error) {
	if source == "" {
		glog.V(100).Info("The source is empty")

		return nil, fmt.Errorf("the transfer source cannot be empty")
	}

	if destination == "" {
		glog.V(100).Info("The destination is empty")

		return nil, fmt.Errorf("the transfer destination cannot be empty")
	}

	if address == "" {
		glog.V(100).Info("The remote address is empty")

		return nil, fmt.Errorf("the remote address cannot be empty")
	}

	if user == "" {
		glog.V(100).Info("The remote user is empty")

		return nil, fmt.Errorf("the remote user cannot be empty")
	}

	keyBuf, err := os.ReadFile(privateKeyPath)
	if err != nil {
		glog.V(100).Infof("Unable to open private key %s: %v", privateKeyPath, err)

		return nil, err
	}

	glog.V(100).Info("Building ssh config from the private key")

	sshConf, err := scp.NewSSHConfigFromPrivateKey(user, keyBuf)
	if err != nil {
		return nil, fmt.Errorf("failed to build ssh config from %s: %w", privateKeyPath, err)
	}

	glog.V(100).Infof("Dialing ssh to %s", address)

	return scp.NewClient(address, sshConf, &scp.ClientOption{})
}
