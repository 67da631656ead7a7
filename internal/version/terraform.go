package version

import (
	"bytes"
	"os/exec"
	"regexp"
	"strings"
)

// terraformVersionRegex matches output like "Terraform v1.9.5".
var terraformVersionRegex = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[a-zA-Z0-9.]+)?`)

// DetectTerraform finds and probes the terraform binary. bin may be a bare
// name looked up in PATH or an explicit path.
func DetectTerraform(bin string) TerraformInfo {
	path, err := exec.LookPath(bin)
	if err != nil {
		return TerraformInfo{
			Found:   false,
			Message: "terraform binary not found in PATH",
		}
	}

	version, err := getTerraformVersion(path)
	if err != nil {
		return TerraformInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get terraform version: " + err.Error(),
		}
	}

	return TerraformInfo{
		Version: version,
		Path:    path,
		Found:   true,
	}
}

// getTerraformVersion executes 'terraform version' and extracts the version string.
func getTerraformVersion(path string) (string, error) {
	cmd := exec.Command(path, "version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion extracts the version number from terraform version output.
func extractVersion(output string) (string, error) {
	// Terraform version output format:
	// Terraform v1.9.5
	// on linux_amd64

	match := terraformVersionRegex.FindString(output)
	if match == "" {
		lines := strings.Split(output, "\n")
		if len(lines) > 0 {
			match = terraformVersionRegex.FindString(lines[0])
		}
	}

	if match == "" {
		return "", &versionParseError{output: output}
	}

	if !strings.HasPrefix(match, "v") {
		match = "v" + match
	}

	return match, nil
}

// versionParseError indicates failure to parse terraform version output.
type versionParseError struct {
	output string
}

func (e *versionParseError) Error() string {
	return "failed to parse terraform version from output: " + e.output
}
