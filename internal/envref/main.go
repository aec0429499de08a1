/*
Envref generates the reference document for the TEST_ prefixed environment
variables consumed by the test helpers. The table is rendered from the
deployment context definition itself so the document cannot drift from the
code.

Upon successful generation the exit code is 0. If any error occurs it will be
logged to stderr and the exit code will be 1.

Usage:

	envref [flags]

The flags are:

	-h, -help
		Print this help message

	-o, -output string
		File to write the reference to. Prints to stdout if left blank

	-v int
		Log level verbosity for glog. Use 100 for logging all messages or leave blank for none
*/
package main

import (
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/openstack-charmers/openstack-gotests/pkg/deployenv"
)

var (
	help   bool
	output string
)

//nolint:gochecknoinits // This is a main package so init is fine.
func init() {
	const (
		helpUsage   = "Print this help message"
		outputUsage = "File to write the reference to. Prints to stdout if left blank"

		defaultHelp   = false
		defaultOutput = ""

		shorthand = " (shorthand)"
	)

	flag.BoolVar(&help, "help", defaultHelp, helpUsage)
	flag.BoolVar(&help, "h", defaultHelp, helpUsage+shorthand)

	flag.StringVar(&output, "output", defaultOutput, outputUsage)
	flag.StringVar(&output, "o", defaultOutput, outputUsage+shorthand)
}

func main() {
	// Also send glog messages to stderr
	_ = flag.Lookup("logtostderr").Value.Set("true")

	flag.Parse()

	if help {
		flag.Usage()

		return
	}

	config := ReferenceTemplateConfig{
		Vars:       deployenv.Reference(),
		Generated:  time.Now(),
		TimeFormat: time.RFC3339,
	}

	if output == "" {
		err := TemplateReferenceTo(os.Stdout, config)
		if err != nil {
			glog.Errorf("Failed to render variable reference: %v", err)

			os.Exit(1)
		}

		return
	}

	err := TemplateReference(config, output)
	if err != nil {
		glog.Errorf("Failed to render variable reference to %s: %v", output, err)

		os.Exit(1)
	}
}
