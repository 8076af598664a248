package ureplay

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const completionExample = `  ureplay completion bash > /etc/bash_completion.d/ureplay
  ureplay completion zsh > "${fpath[1]}/_ureplay"
  ureplay completion fish > ~/.config/fish/completions/ureplay.fish`

// completionCmd prints a completion script; replay file arguments complete as plain paths
var completionCmd = &cobra.Command{
	Use:       "completion bash|zsh|fish",
	Short:     "Print the shell completion script for ureplay",
	Example:   completionExample,
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.ExactValidArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		}
		return errors.Errorf("unsupported shell '%s'", args[0])
	},
}
