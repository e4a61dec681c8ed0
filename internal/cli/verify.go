package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pkg-sandbox/internal/app"
	"pkg-sandbox/internal/types"
)

type verifyOptions struct {
	Package   string
	Workspace string
	Lockfile  string
	Strict    bool
	Report    string
}

func newVerifyCommand() *cobra.Command {
	opts := verifyOptions{}
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an existing lockfile without installing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Package, "package", defaultPackage, "Package specifier to look up (name@version)")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", defaultWorkspace, "Workspace directory holding package-lock.json")
	cmd.Flags().StringVar(&opts.Lockfile, "lockfile", "", "Lockfile path (overrides --workspace)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail on version mismatch or unpinned transitive entries")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a verification report to this path")
	return cmd
}

func runVerify(cmd *cobra.Command, opts verifyOptions) error {
	workspace := resolveString(cmd, opts.Workspace, "workspace", "workspace")
	service := newAppService(cmd.OutOrStdout(), serviceSettings{})
	result, err := service.VerifyLockfile(cmd.Context(), app.VerifyRequest{
		LockfilePath: resolveString(cmd, opts.Lockfile, "lockfile", "lockfile"),
		WorkspaceDir: workspace,
		Package:      resolveString(cmd, opts.Package, "package", "package"),
		Strict:       resolveBool(cmd, opts.Strict, "strict", "strict"),
		ReportPath:   resolveString(cmd, opts.Report, "report_path", "report"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "lockfile: %s\n", result.LockfilePath)
	printVerification(out, result.Verification)
	if result.ReportPath != "" {
		fmt.Fprintf(out, "Report written to %s\n", result.ReportPath)
	}
	return nil
}

func printVerification(out io.Writer, result types.VerificationResult) {
	fmt.Fprintf(out, "SUCCESS: Found Integrity Checksum for %s: %s\n", result.Package.Name, result.DisplayHash)
	fmt.Fprintf(out, "resolved %s at %s (%s)\n", result.ResolvedVersion, result.EntryKey, result.Algorithm)
	fmt.Fprintln(out, "The presence of this integrity hash ensures the installed package contents are deterministic.")
	if !result.VersionMatches {
		fmt.Fprintf(out, "WARNING: requested %s but resolved %s\n", result.Package.Version, result.ResolvedVersion)
	}
	if len(result.Unpinned) > 0 {
		fmt.Fprintf(out, "WARNING: entries without integrity: %s\n", strings.Join(result.Unpinned, ", "))
	}
	if len(result.Missing) > 0 {
		fmt.Fprintf(out, "WARNING: dependencies with no lockfile entry: %s\n", strings.Join(result.Missing, ", "))
	}
}
