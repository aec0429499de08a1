package main

import (
	_ "embed"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/openstack-charmers/openstack-gotests/pkg/deployenv"
)

//go:embed reference_template.md
var referenceTemplateFile string

var (
	funcMap = template.FuncMap{
		"orDash":     orDash,
		"requiredBy": requiredBy,
	}
	referenceTemplate = template.Must(
		template.New("reference_template.md").Funcs(funcMap).Parse(referenceTemplateFile))
)

// ReferenceTemplateConfig contains the data necessary to template the variable reference.
type ReferenceTemplateConfig struct {
	Vars       []deployenv.VarDoc
	Generated  time.Time
	TimeFormat string
}

// TemplateReference renders the variable reference and saves it at outputFileName. If
// outputFileName already exists, then it is truncated.
func TemplateReference(config ReferenceTemplateConfig, outputFileName string) error {
	outputFile, err := os.Create(outputFileName)
	if err != nil {
		return err
	}

	defer outputFile.Close()

	return TemplateReferenceTo(outputFile, config)
}

// TemplateReferenceTo renders the variable reference to the given writer.
func TemplateReferenceTo(writer io.Writer, config ReferenceTemplateConfig) error {
	return referenceTemplate.Execute(writer, config)
}

// orDash substitutes a dash for empty table cells.
func orDash(value string) string {
	if value == "" {
		return "-"
	}

	return value
}

// requiredBy describes which service setup depends on the variable, if any.
func requiredBy(varDoc deployenv.VarDoc) string {
	if varDoc.RequiredBy == "" {
		return "-"
	}

	if varDoc.Ignorable {
		return varDoc.RequiredBy + " (optional)"
	}

	return varDoc.RequiredBy
}
