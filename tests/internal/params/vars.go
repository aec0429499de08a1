package params

// ReporterDumpCommands lists the commands whose output is collected from
// deployment units when a test fails.
var ReporterDumpCommands = []string{
	"sudo systemctl --failed --no-pager",
	"sudo journalctl --since -10m --no-pager",
}
