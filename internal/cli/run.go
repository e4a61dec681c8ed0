package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pkg-sandbox/internal/adapters"
	"pkg-sandbox/internal/app"
)

type runOptions struct {
	Package     string
	Workspace   string
	SandboxRoot string
	Npm         string
	Timeout     time.Duration
	Strict      bool
	Report      bool
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Reset the workspace, install the package and verify its integrity hash",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}
	addRunFlags(cmd, &opts)
	return cmd
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	cmd.Flags().StringVar(&opts.Package, "package", defaultPackage, "Package specifier to install (name@version)")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", defaultWorkspace, "Workspace directory")
	cmd.Flags().StringVar(&opts.SandboxRoot, "sandbox-root", "", "Directory the workspace must live in (defaults to ./sandbox)")
	cmd.Flags().StringVar(&opts.Npm, "npm", adapters.DefaultNpmBinary, "npm executable")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", adapters.DefaultInstallTimeout, "Install timeout")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on version mismatch or unpinned transitive entries")
	cmd.Flags().BoolVar(&opts.Report, "report", false, "Write verification.yaml into the workspace")
}

func runRun(cmd *cobra.Command, opts runOptions) error {
	workspace := resolveString(cmd, opts.Workspace, "workspace", "workspace")
	service := newAppService(cmd.OutOrStdout(), serviceSettings{
		SandboxRoot: resolveString(cmd, opts.SandboxRoot, "sandbox_root", "sandbox-root"),
		NpmBinary:   resolveString(cmd, opts.Npm, "npm", "npm"),
		Timeout:     resolveDuration(cmd, opts.Timeout, "timeout", "timeout"),
	})
	result, err := service.Run(cmd.Context(), app.RunRequest{
		WorkspaceDir: workspace,
		Package:      resolveString(cmd, opts.Package, "package", "package"),
		Strict:       resolveBool(cmd, opts.Strict, "strict", "strict"),
		WriteReport:  resolveBool(cmd, opts.Report, "report", "report"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printVerification(out, result.Verification)
	if result.ReportPath != "" {
		fmt.Fprintf(out, "Report written to %s\n", result.ReportPath)
	}
	fmt.Fprintf(out, "\nTask complete. Check %s for the results!\n", result.Workspace.Root)
	return nil
}
