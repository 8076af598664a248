package ureplay

import (
	"github.com/spf13/cobra"
)

const flagsUsageTemplate = `Every setting of the config file can also be passed as a flag:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}
`

// flagsCmd prints the per-setting flags that are hidden from the regular help
var flagsCmd = &cobra.Command{
	Use:                   "flags",
	Short:                 "List the global flags bound to config settings",
	DisableFlagsInUseLine: true,
	Run: func(cmd *cobra.Command, args []string) {
		setConfigFlagsHidden(cmd.Root(), false)
		defer setConfigFlagsHidden(cmd.Root(), true)
		_ = cmd.Usage()
	},
}

func init() {
	flagsCmd.SetUsageTemplate(flagsUsageTemplate)
}
