package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/tfstacks/cli/internal/graph"
	"github.com/tfstacks/cli/internal/output"
)

// NewGraphCmd creates the graph command.
func NewGraphCmd() *cobra.Command {
	var moduleIDFlag string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the scope tree and execution order",
		Long: `Print the scope/module tree and the order modules would run in.

With --output yaml or --output json the execution plan is printed as a
machine-readable list of modules with their resolved dependencies.

Examples:
  # Show the tree and execution order
  tfstacks graph

  # Execution plan for one module as JSON
  tfstacks graph --module-id account-1.webapp -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(moduleIDFlag)
		},
	}

	cmd.Flags().StringVarP(&moduleIDFlag, "module-id", "m", "",
		"Restrict the plan to this module and its dependencies")

	return cmd
}

// planEntry is one module of the machine-readable execution plan.
type planEntry struct {
	ID           string   `json:"id"`
	Source       string   `json:"source"`
	Scope        string   `json:"scope,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

func runGraph(moduleID string) error {
	cfg := GetConfig()

	g, err := loadGraph(cfg)
	if err != nil {
		return err
	}

	plan, err := buildPlan(g, moduleID)
	if err != nil {
		return err
	}

	entries := make([]planEntry, 0, len(plan))
	for _, id := range plan {
		mod, _ := g.Module(id)
		entries = append(entries, planEntry{
			ID:           id,
			Source:       mod.Source,
			Scope:        mod.ScopeID,
			Dependencies: mod.DependencyIDs(),
		})
	}

	switch output.ParseFormat(outputFormatFlag) {
	case output.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(data))
	case output.FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return err
		}
		output.Print(string(data))
	default:
		output.Print(output.RenderTree("infra", buildTree(g)))
		output.Println("")
		output.Println("Execution order:")
		for i, entry := range entries {
			line := fmt.Sprintf("  %d. %s", i+1, entry.ID)
			if len(entry.Dependencies) > 0 {
				line += "  " + output.StyleDim.Render("after "+strings.Join(entry.Dependencies, ", "))
			}
			output.Println(line)
		}
	}

	return nil
}

// buildTree converts the scope/module registry into a renderable tree.
func buildTree(g *graph.Graph) *output.TreeNode {
	root := &output.TreeNode{IsScope: true}
	nodes := map[string]*output.TreeNode{"": root}

	// Scopes() is sorted, so parents always precede children.
	for _, id := range g.Scopes() {
		scope, _ := g.Scope(id)
		node := &output.TreeNode{
			Name:        localName(id),
			Description: scope.Kind,
			IsScope:     true,
		}
		nodes[id] = node
		parent := nodes[scope.ParentID]
		parent.Children = append(parent.Children, node)
	}

	for _, id := range g.Modules() {
		mod, _ := g.Module(id)
		parent := nodes[mod.ScopeID]
		parent.Children = append(parent.Children, &output.TreeNode{
			Name:        localName(id),
			Description: mod.Source,
		})
	}

	return root
}

// localName returns the final segment of a dotted id.
func localName(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}
