package config

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ureplay/ureplay/internal/compression"
	"github.com/wal-g/tracelog"
)

const (
	LogLevelSetting         = "UREPLAY_LOG_LEVEL"
	DecompressorSetting     = "UREPLAY_DECOMPRESSOR"
	ParseConcurrencySetting = "UREPLAY_PARSE_CONCURRENCY"
	ParseCheckpointsSetting = "UREPLAY_PARSE_CHECKPOINTS"
	EventHandlersSetting    = "UREPLAY_EVENT_HANDLERS"
	StatsdAddressSetting    = "UREPLAY_STATSD_ADDRESS"
	StatsdExtraTagsSetting  = "UREPLAY_STATSD_EXTRA_TAGS"

	// NoDecompressor leaves compressed blocks undecodable.
	NoDecompressor = ""
)

var (
	// CfgFile is set by the --config flag.
	CfgFile string

	defaultConfigValues = map[string]string{
		LogLevelSetting:         tracelog.NormalLogLevel,
		DecompressorSetting:     NoDecompressor,
		ParseConcurrencySetting: "4",
		ParseCheckpointsSetting: "false",
		EventHandlersSetting:    "fortnite",
	}

	AllowedSettings = map[string]bool{
		LogLevelSetting:         true,
		DecompressorSetting:     true,
		ParseConcurrencySetting: true,
		ParseCheckpointsSetting: true,
		EventHandlersSetting:    true,
		StatsdAddressSetting:    true,
		StatsdExtraTagsSetting:  true,
	}
)

type UnknownDecompressorError struct {
	error
}

func newUnknownDecompressorError(name string) UnknownDecompressorError {
	return UnknownDecompressorError{errors.Errorf("%s=%q is not one of %v",
		DecompressorSetting, name, compression.AlgorithmNames())}
}

func (err UnknownDecompressorError) Error() string {
	return fmt.Sprintf(tracelog.GetErrorFormatter(), err.error)
}

// GetSetting extract setting by key if key is set, return empty string otherwise
func GetSetting(key string) (value string, ok bool) {
	if viper.IsSet(key) {
		return viper.GetString(key), true
	}
	return "", false
}

func GetBoolSettingDefault(setting string, def bool) (bool, error) {
	value, ok := GetSetting(setting)
	if !ok || value == "" {
		return def, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def, errors.Wrapf(err, "failed to parse %s", setting)
	}
	return parsed, nil
}

func GetMaxParseConcurrency() (int, error) {
	value := viper.GetString(ParseConcurrencySetting)
	concurrency, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to parse %s", ParseConcurrencySetting)
	}
	if concurrency < 1 {
		return 0, errors.Errorf("%s must be positive, got %d", ParseConcurrencySetting, concurrency)
	}
	return concurrency, nil
}

// GetEventHandlerSets returns the comma separated handler set names, lowercased.
func GetEventHandlerSets() []string {
	var sets []string
	for _, name := range strings.Split(viper.GetString(EventHandlersSetting), ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			sets = append(sets, name)
		}
	}
	return sets
}

// ConfigureDecompressor returns nil without an error when no decompressor is configured.
func ConfigureDecompressor() (compression.Decompressor, error) {
	name := viper.GetString(DecompressorSetting)
	if name == NoDecompressor {
		return nil, nil
	}
	decompressor, err := compression.FindDecompressor(strings.ToLower(name))
	if err != nil {
		return nil, newUnknownDecompressorError(name)
	}
	return decompressor, nil
}

func ConfigureLogging() error {
	logLevel, ok := GetSetting(LogLevelSetting)
	if ok {
		return tracelog.UpdateLogLevel(strings.ToUpper(logLevel))
	}
	return nil
}

func Configure() {
	err := ConfigureLogging()
	if err != nil {
		tracelog.ErrorLogger.Println("Failed to configure logging.")
		tracelog.ErrorLogger.FatalError(err)
	}

	var buff bytes.Buffer
	buff.WriteString("--- COMPILED ENVIRONMENT VARS ---\n")
	var keys []string
	for k := range viper.AllSettings() {
		keys = append(keys, strings.ToUpper(k))
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, ok := os.LookupEnv(k)
		if !ok {
			continue
		}
		fmt.Fprintf(&buff, "\t%s=%s\n", k, val)
	}
	tracelog.DebugLogger.Print(buff.String())
}

func AddConfigFlags(cmd *cobra.Command, hiddenCfgFlagAnnotation string) {
	cfgFlags := &pflag.FlagSet{}
	for k := range AllowedSettings {
		flagName := ToFlagName(k)
		cfgFlags.String(flagName, "", "Can be set through this flag or "+k+" variable")
		_ = viper.BindPFlag(k, cfgFlags.Lookup(flagName))
	}
	cfgFlags.VisitAll(func(f *pflag.Flag) {
		if f.Annotations == nil {
			f.Annotations = map[string][]string{}
		}
		f.Annotations[hiddenCfgFlagAnnotation] = []string{"true"}
	})
	cmd.PersistentFlags().AddFlagSet(cfgFlags)
}

// InitConfig reads config file and ENV variables if set.
func InitConfig() {
	globalViper := viper.GetViper()
	globalViper.AutomaticEnv()
	SetDefaultValues(globalViper)
	ReadConfigFromFile(globalViper, CfgFile)
	CheckAllowedSettings(globalViper)
}

// ReadConfigFromFile read config to the viper instance
func ReadConfigFromFile(config *viper.Viper, configFile string) {
	if configFile != "" {
		config.SetConfigFile(configFile)
	} else {
		usr, err := user.Current()
		tracelog.ErrorLogger.FatalOnError(err)

		// $HOME/.ureplay with any extension viper understands
		config.AddConfigPath(usr.HomeDir)
		config.SetConfigName(".ureplay")
	}

	err := config.ReadInConfig()
	if err == nil {
		tracelog.DebugLogger.Println("Using config file:", config.ConfigFileUsed())
	} else if config.ConfigFileUsed() != "" {
		tracelog.WarningLogger.Printf("Failed to parse config file %s. %s.", config.ConfigFileUsed(), err)
	}
}

// SetDefaultValues set default settings to the viper instance
func SetDefaultValues(config *viper.Viper) {
	for setting, value := range defaultConfigValues {
		config.SetDefault(setting, value)
	}
}

// CheckAllowedSettings reports the settings of a viper instance that are not known, and warns about them
func CheckAllowedSettings(config *viper.Viper) (unknown []string) {
	for k := range config.AllSettings() {
		k = strings.ToUpper(k)
		if !AllowedSettings[k] {
			tracelog.WarningLogger.Println(k + " is unknown")
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func ToFlagName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "-")
}
