package ureplay

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ureplay/ureplay/internal/config"
)

const (
	ShortDescription = "Unreal Engine replay decoder"

	hiddenConfigFlagAnnotation = "ureplay_hidden_config_flag"
)

// These variables are here only to show current version. They are set with -ldflags during build
var ureplayVersion = "devel"
var gitRevision = "devel"
var buildDate = "devel"

var cmd = &cobra.Command{
	Use:     "ureplay",
	Short:   ShortDescription,
	Version: strings.Join([]string{ureplayVersion, gitRevision, buildDate}, "\t"),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(config.InitConfig, config.Configure)

	cmd.PersistentFlags().StringVar(&config.CfgFile, "config", "", "config file (default is $HOME/.ureplay.json)")
	cmd.InitDefaultVersionFlag()
	config.AddConfigFlags(cmd, hiddenConfigFlagAnnotation)
	setConfigFlagsHidden(cmd, true)

	cmd.AddCommand(infoCmd, eventsCmd, dumpCmd, flagsCmd, completionCmd)
}

func setConfigFlagsHidden(cmd *cobra.Command, hidden bool) {
	cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if _, ok := flag.Annotations[hiddenConfigFlagAnnotation]; ok {
			flag.Hidden = hidden
		}
	})
}
