package output

// Dyff integration for YAML-aware diffing of resolved module inputs.

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// CompareYAML computes a YAML-aware diff between two documents using dyff.
// Returns an empty string when the documents are semantically identical.
func CompareYAML(previousName string, previous []byte, currentName string, current []byte, useColor bool) (string, error) {
	if len(previous) == 0 && len(current) == 0 {
		return "", nil
	}

	previousInput, err := parseYAMLInput(previousName, previous)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", previousName, err)
	}

	currentInput, err := parseYAMLInput(currentName, current)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", currentName, err)
	}

	report, err := dyff.CompareInputFiles(previousInput, currentInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDyffReport(report, useColor)
}

// parseYAMLInput parses YAML bytes into a dyff input file.
func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	result := buf.String()

	// Trim trailing whitespace dyff leaves on table rows.
	lines := strings.Split(result, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
