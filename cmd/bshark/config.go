package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/bshark-io/bshark/definition"
)

// options collects the flags every subcommand shares. Values left at
// their zero value fall back to the config file (bshark.yaml in the
// working directory or in ~/.config/bshark).
type options struct {
	includes []string
	android  int
	verbose  int
}

func addCommonFlags(cmd *cobra.Command) *options {
	opts := &options{}
	cmd.Flags().StringArrayVarP(&opts.includes, "include", "I", nil, "directory to add to the definition search path")
	cmd.Flags().IntVar(&opts.android, "android", 0, "Android version of the captured device")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "increase log verbosity")
	return opts
}

// resolve merges flags with the config file and configures logging.
func (o *options) resolve() error {
	commonlog.Configure(o.verbose, nil)

	v := viper.New()
	v.SetConfigName("bshark")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/bshark")
	v.SetDefault("android", 12)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	if len(o.includes) == 0 {
		o.includes = v.GetStringSlice("include")
	}
	if len(o.includes) == 0 {
		o.includes = []string{"."}
	}
	if o.android == 0 {
		o.android = v.GetInt("android")
	}
	return nil
}

func (o *options) newLoader() (*definition.Loader, error) {
	return definition.NewLoader(o.includes...)
}
