package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fiofaker/pkg/fixtures"
	"fiofaker/services/snapshot"
)

func newGenerateCommand() *cobra.Command {
	var (
		format string
		params snapshot.Params
	)

	cmd := &cobra.Command{
		Use:   "generate <entity>",
		Short: "Print one generated fixture entity",
		Long:  generateHelp(),
		Args:  cobra.ExactArgs(1),
	}
	generator := seedFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		gen, _ := generator()
		value, err := snapshot.Generate(gen, args[0], params)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "json":
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(value)
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(value); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("unknown format %q (want json or yaml)", format)
		}
	}

	cmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")
	paramFlags(cmd, &params)
	return cmd
}

func generateHelp() string {
	var b strings.Builder
	b.WriteString("Print one generated fixture entity.\n\n")
	fmt.Fprintf(&b, "Entities:       %s\n", strings.Join(snapshot.Entities(), ", "))
	fmt.Fprintf(&b, "Build statuses: %s\n", joinStatuses(fixtures.BuildStatuses()))
	fmt.Fprintf(&b, "Run statuses:   %s\n", joinStatuses(fixtures.RunStatuses()))
	fmt.Fprintf(&b, "Host tags:      %s", strings.Join(fixtures.HostTags(), ", "))
	return b.String()
}

// joinStatuses lists each status once, in first-seen order.
func joinStatuses(statuses []fixtures.Status) string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		if !slices.Contains(names, string(s)) {
			names = append(names, string(s))
		}
	}
	return strings.Join(names, ", ")
}

func paramFlags(cmd *cobra.Command, p *snapshot.Params) {
	cmd.Flags().StringVar(&p.RootURL, "root-url", "", "Base URL for generated links")
	cmd.Flags().StringVar(&p.Project, "project", "", "Project name")
	cmd.Flags().IntVar(&p.Build, "build", 0, "Build number")
	cmd.Flags().StringVar(&p.Run, "run", "", "Run name")
	cmd.Flags().StringVar(&p.Test, "test", "", "Test name")
	cmd.Flags().IntVar(&p.Limit, "limit", 0, "Number of builds or devices")
	cmd.Flags().StringVar(&p.Factory, "factory", "", "Factory name for devices")
	cmd.Flags().StringVar(&p.Owner, "owner", "", "Owner id for devices")
	cmd.Flags().StringVar(&p.Name, "name", "", "Device name filter")
	cmd.Flags().StringVar(&p.Tag, "tag", "", "Device tag filter")
	cmd.Flags().StringVar(&p.Wave, "wave", "", "Wave name")
}
