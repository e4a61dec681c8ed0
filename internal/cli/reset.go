package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkg-sandbox/internal/app"
)

type resetOptions struct {
	Workspace   string
	SandboxRoot string
}

func newResetCommand() *cobra.Command {
	opts := resetOptions{}
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Recreate the workspace with an empty manifest",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workspace := resolveString(cmd, opts.Workspace, "workspace", "workspace")
			service := newAppService(cmd.OutOrStdout(), serviceSettings{
				SandboxRoot: resolveString(cmd, opts.SandboxRoot, "sandbox_root", "sandbox-root"),
			})
			result, err := service.Reset(cmd.Context(), app.ResetRequest{WorkspaceDir: workspace})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "workspace reset: %s\n", result.Workspace.Root)
			return nil
		},
	}
	addWorkspaceFlags(cmd, &opts)
	return cmd
}

func newCleanCommand() *cobra.Command {
	opts := resetOptions{}
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the workspace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workspace := resolveString(cmd, opts.Workspace, "workspace", "workspace")
			service := newAppService(cmd.OutOrStdout(), serviceSettings{
				SandboxRoot: resolveString(cmd, opts.SandboxRoot, "sandbox_root", "sandbox-root"),
			})
			if err := service.Clean(cmd.Context(), app.CleanRequest{WorkspaceDir: workspace}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "workspace removed: %s\n", workspace)
			return nil
		},
	}
	addWorkspaceFlags(cmd, &opts)
	return cmd
}

func addWorkspaceFlags(cmd *cobra.Command, opts *resetOptions) {
	cmd.Flags().StringVar(&opts.Workspace, "workspace", defaultWorkspace, "Workspace directory")
	cmd.Flags().StringVar(&opts.SandboxRoot, "sandbox-root", "", "Directory the workspace must live in (defaults to ./sandbox)")
}
