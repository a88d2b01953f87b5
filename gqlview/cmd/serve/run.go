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

package serve

import (
	"net/http"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opencensus.io/trace"
	"go.opencensus.io/zpages"

	"github.com/gqlview/gqlview/app"
	"github.com/gqlview/gqlview/x"
)

// Serve is the sub-command invoked when running "gqlview serve".
var Serve x.SubCommand

func init() {
	Serve.Cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the users page over HTTP",
		Long: `
Serve renders the users list as an HTML page. Every page load mounts a fresh
view, sends one query to the GraphQL endpoint and shows the result. The frames
the view went through are available as JSON at /users.json.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stopper, err := x.StartProfile(Serve.Conf)
			if err != nil {
				return err
			}
			defer stopper.Stop()
			return run(Serve.Conf)
		},
		Annotations: map[string]string{"group": "default"},
	}
	Serve.EnvPrefix = "GQLVIEW_SERVE"

	flag := Serve.Cmd.Flags()
	flag.Int("port", 8000, "Port to serve the page on.")
	flag.String("endpoint", app.DefaultEndpoint, "URI of the GraphQL endpoint to query.")
	flag.String("mode", string(app.ModeQuery),
		"How the view observes the query, one of [query, hook].")
	flag.Duration("timeout", 30*time.Second, "Time allowed for one query.")
	flag.StringSlice("header", nil,
		"Extra header sent with every query, as key:value. May be repeated.")
	flag.String("access_log", "", "File to write JSON access logs to. Defaults to stderr.")
	flag.Float64("trace", 0.01, "The ratio of page loads to trace.")
	Serve.Cmd.SetHelpTemplate(x.NonRootTemplate)
}

// setup builds the handler serving the page, metrics and zpages, and a
// cleanup func to run once it is no longer served.
func setup(conf *viper.Viper) (http.Handler, func(), error) {
	mode, err := app.ParseMode(conf.GetString("mode"))
	if err != nil {
		return nil, nil, err
	}
	header, err := app.ParseHeaders(conf.Get("header"))
	if err != nil {
		return nil, nil, err
	}
	timeout := conf.GetDuration("timeout")
	client, err := app.NewClient(conf.GetString("endpoint"), timeout, header)
	if err != nil {
		return nil, nil, err
	}
	accessLog, err := x.InitLogger(conf.GetString("access_log"))
	if err != nil {
		return nil, nil, err
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(conf.GetFloat64("trace")),
	})

	a := &app.App{Fetcher: client, Mode: mode, Timeout: timeout, AccessLog: accessLog}

	mux := http.NewServeMux()
	if err := x.RegisterMetrics(mux, "gqlview"); err != nil {
		return nil, nil, err
	}
	// Add OpenCensus z-pages.
	zpages.Handle(mux, "/z")
	mux.Handle("/", a.Handler())

	glog.Infof("Rendering users from %s in %s mode", client.Endpoint(), mode)
	return mux, accessLog.Sync, nil
}

func run(conf *viper.Viper) error {
	x.PrintVersion()
	h, cleanup, err := setup(conf)
	if err != nil {
		return err
	}
	defer cleanup()
	return x.ListenAndServe(x.ListenAddr(conf.GetBool("bindall"), conf.GetInt("port")), h)
}
