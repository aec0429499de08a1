package tsparams

var (
	// Labels represents the range of labels that can be used for test cases selection.
	Labels = []string{LabelSuite}

	// ReporterArtifactsToDump keeps the rendered outputs of the current spec
	// so the reporter can store them when a test case fails.
	ReporterArtifactsToDump = map[string]string{}
)
