package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tfstacks/cli/internal/output"
	"github.com/tfstacks/cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show tfstacks version information.

Displays:
  - tfstacks version, commit, and build date
  - terraform binary version and path`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.GetInfo()

	var tfInfo version.TerraformInfo
	err := output.RunWithSpinner(context.Background(), func() error {
		tfInfo = version.DetectTerraform(GetConfig().TerraformBin)
		return nil
	}, output.WithTitle("Probing terraform..."))
	if err != nil {
		return err
	}

	if output.ParseFormat(outputFormatFlag) == output.FormatJSON {
		data, err := json.MarshalIndent(struct {
			version.Info
			Terraform version.TerraformInfo `json:"terraform"`
		}{Info: info, Terraform: tfInfo}, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(data))
		return nil
	}

	output.Println(version.FullVersionString(info, tfInfo))
	return nil
}
