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

package devserver

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opencensus.io/zpages"

	"github.com/gqlview/gqlview/graphql/resolve"
	"github.com/gqlview/gqlview/graphql/web"
	"github.com/gqlview/gqlview/x"
)

// DevServer is the sub-command invoked when running "gqlview devserver".
var DevServer x.SubCommand

func init() {
	DevServer.Cmd = &cobra.Command{
		Use:   "devserver",
		Short: "Run a fixture GraphQL server with a users query",
		Long: `
Devserver answers GraphQL requests for the schema

  type User { id: ID! name: String email: String age: Int }
  type Query { users: [User] }

from a YAML seed of users. It can hold responses back (--delay) to show the
loading state, or fail every query (--fail) to show the error state.

Sending SIGHUP reloads the seed without dropping connections.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stopper, err := x.StartProfile(DevServer.Conf)
			if err != nil {
				return err
			}
			defer stopper.Stop()
			return run(DevServer.Conf)
		},
		Annotations: map[string]string{"group": "tool"},
	}
	DevServer.EnvPrefix = "GQLVIEW_DEVSERVER"

	flag := DevServer.Cmd.Flags()
	flag.Int("port", 4000, "Port to serve GraphQL on.")
	flag.String("seed", "", "YAML file with the users to serve. Defaults to a built-in seed.")
	flag.Duration("delay", 0, "Hold every response back for this long.")
	flag.String("fail", "", "If set, every users query fails with this message.")
	DevServer.Cmd.SetHelpTemplate(x.NonRootTemplate)
}

func newResolver(conf *viper.Viper) (*resolve.Resolver, error) {
	store, err := resolve.LoadStore(conf.GetString("seed"))
	if err != nil {
		return nil, err
	}
	opts := resolve.Options{
		Delay: conf.GetDuration("delay"),
		Fail:  conf.GetString("fail"),
	}
	glog.Infof("Serving %d users (delay %s, failing: %t)", store.Len(),
		opts.Delay.Round(time.Millisecond), opts.Fail != "")
	return resolve.New(store, opts), nil
}

func setup(conf *viper.Viper) (http.Handler, web.IServeGraphQL, error) {
	resolver, err := newResolver(conf)
	if err != nil {
		return nil, nil, err
	}
	gqlServer := web.NewServer(resolver)

	mux := http.NewServeMux()
	zpages.Handle(mux, "/z")
	mux.Handle("/", gqlServer.HTTPHandler())
	return mux, gqlServer, nil
}

// reload reads the seed again and swaps it in.  On error the old users stay.
func reload(conf *viper.Viper, gqlServer web.IServeGraphQL) error {
	resolver, err := newResolver(conf)
	if err != nil {
		return x.Wrapf(err, "reloading seed")
	}
	gqlServer.ServeGQL(resolver)
	return nil
}

func reloadOnHangup(ctx context.Context, conf *viper.Viper, gqlServer web.IServeGraphQL) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			if err := reload(conf, gqlServer); err != nil {
				glog.Errorf("%v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func run(conf *viper.Viper) error {
	x.PrintVersion()
	h, gqlServer, err := setup(conf)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reloadOnHangup(ctx, conf, gqlServer)

	return x.ListenAndServe(x.ListenAddr(conf.GetBool("bindall"), conf.GetInt("port")), h)
}
