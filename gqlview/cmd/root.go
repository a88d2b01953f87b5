/*
 * Copyright 2026 The gqlview Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	goflag "flag"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gqlview/gqlview/gqlview/cmd/devserver"
	"github.com/gqlview/gqlview/gqlview/cmd/serve"
	"github.com/gqlview/gqlview/gqlview/cmd/users"
	"github.com/gqlview/gqlview/gqlview/cmd/version"
	"github.com/gqlview/gqlview/x"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "gqlview",
	Short: "gqlview: a users list over GraphQL",
	Long: `
gqlview fetches the list of users from a GraphQL endpoint and renders it, as
an HTML page or on the terminal, going through the loading, error and data
states a client sees. It also ships a fixture GraphQL server to point it at.
` + x.BuildDetails(),
	PersistentPreRunE: cobra.NoArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	goflag.Parse()
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var rootConf = viper.New()

// subcommands each get their own viper config in init.
var subcommands = []*x.SubCommand{
	&serve.Serve, &users.Users, &devserver.DevServer, &version.Version,
}

func init() {
	RootCmd.PersistentFlags().String("profile_mode", "",
		"Enable profiling mode, one of [cpu, mem, mutex, block]")
	RootCmd.PersistentFlags().Int("block_rate", 0,
		"Block profiling rate. Must be used along with block profile_mode")
	RootCmd.PersistentFlags().String("config", "",
		"Configuration file. Takes precedence over default values, but is "+
			"overridden to values set with environment variables and flags.")
	RootCmd.PersistentFlags().Bool("bindall", true,
		"Use 0.0.0.0 instead of localhost to bind to all addresses on local machine.")
	x.Check(rootConf.BindPFlags(RootCmd.PersistentFlags()))

	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	// Always set stderrthreshold=0. Don't let users set it themselves.
	x.Check(flag.Set("stderrthreshold", "0"))
	x.Check(flag.CommandLine.MarkDeprecated("stderrthreshold",
		"gqlview always sets this flag to 0. It can't be overwritten."))

	for _, sc := range subcommands {
		RootCmd.AddCommand(sc.Cmd)
		sc.Conf = viper.New()
		x.Check(sc.Conf.BindPFlags(sc.Cmd.Flags()))
		x.Check(sc.Conf.BindPFlags(RootCmd.PersistentFlags()))
		sc.Conf.AutomaticEnv()
		sc.Conf.SetEnvPrefix(sc.EnvPrefix)
	}
	cobra.OnInitialize(func() {
		cfg := rootConf.GetString("config")
		if cfg == "" {
			return
		}
		for _, sc := range subcommands {
			sc.Conf.SetConfigFile(cfg)
			x.Checkf(sc.Conf.ReadInConfig(), "reading config %s", cfg)
		}
	})
}
