package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkg-sandbox/internal/app"
)

type inspectOptions struct {
	Workspace string
	Report    string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show a previously written verification report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Workspace, "workspace", defaultWorkspace, "Workspace directory")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Report path (overrides --workspace)")
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	workspace := resolveString(cmd, opts.Workspace, "workspace", "workspace")
	service := newAppService(cmd.OutOrStdout(), serviceSettings{})
	result, err := service.Inspect(app.InspectRequest{
		ReportPath:   opts.Report,
		WorkspaceDir: workspace,
	})
	if err != nil {
		return err
	}
	report := result.Report
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "report: %s\n", result.ReportPath)
	fmt.Fprintf(out, "package: %s\n", report.Package)
	fmt.Fprintf(out, "entry: %s %s\n", report.EntryKey, report.ResolvedVersion)
	fmt.Fprintf(out, "integrity: %s (%s)\n", report.Integrity, report.Algorithm)
	fmt.Fprintf(out, "deterministic: %t\n", report.Deterministic)
	if len(report.Unpinned) > 0 {
		fmt.Fprintf(out, "unpinned: %s\n", strings.Join(report.Unpinned, ", "))
	}
	if len(report.Missing) > 0 {
		fmt.Fprintf(out, "missing: %s\n", strings.Join(report.Missing, ", "))
	}
	fmt.Fprintf(out, "verified at: %s\n", report.VerifiedAt)
	return nil
}
