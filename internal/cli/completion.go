package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/csrstore/pkg/formats"
	"github.com/matzehuels/csrstore/pkg/pipeline"
)

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// completionCommand creates the completion command. Besides subcommands and
// flags, the generated scripts complete --format with the registered input
// parsers, --to with the output formats and --base with the id bases.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [" + strings.Join(completionShells, "|") + "]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for csrstore.

Load it for the current session:

  bash:        source <(csrstore completion bash)
  zsh:         source <(csrstore completion zsh)
  fish:        csrstore completion fish | source
  powershell:  csrstore completion powershell | Out-String | Invoke-Expression

To load it in every session, write the script to your shell's completion
directory instead, e.g. csrstore completion zsh > "${fpath[1]}/_csrstore".

Input formats (--format) complete to: ` + strings.Join(formats.Types(), ", ") + `.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, w := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(w, true)
			case "zsh":
				return root.GenZshCompletion(w)
			case "fish":
				return root.GenFishCompletion(w, true)
			default:
				return root.GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeWords returns a flag completion function offering words that
// start with the text typed so far. It never falls back to file names.
func completeWords(words func() []string) cobra.CompletionFunc {
	return func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var out []string
		for _, w := range words() {
			if strings.HasPrefix(w, toComplete) {
				out = append(out, w)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerBuildCompletions completes the values of the shared build flags.
func registerBuildCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeWords(formats.Types))
	_ = cmd.RegisterFlagCompletionFunc("base", completeWords(func() []string {
		return []string{"0", "1", "default"}
	}))
}

// registerOutputCompletions completes --to with the writable formats.
func registerOutputCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("to", completeWords(func() []string {
		return pipeline.ValidFormats
	}))
}
