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

package users

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gqlview/gqlview/app"
	"github.com/gqlview/gqlview/render"
	"github.com/gqlview/gqlview/x"
)

// Users is the sub-command invoked when running "gqlview users".
var Users x.SubCommand

func init() {
	Users.Cmd = &cobra.Command{
		Use:   "users",
		Short: "Print the users list on the terminal",
		Long: `
Users mounts the users view once and prints every frame it produces: the
loading placeholder (or the suspense fallback in hook mode) followed by the
list of users or the error.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, Users.Conf, cmd.OutOrStdout())
		},
		Annotations: map[string]string{"group": "default"},
	}
	Users.EnvPrefix = "GQLVIEW_USERS"

	flag := Users.Cmd.Flags()
	flag.String("endpoint", app.DefaultEndpoint, "URI of the GraphQL endpoint to query.")
	flag.String("mode", string(app.ModeQuery),
		"How the view observes the query, one of [query, hook].")
	flag.Duration("timeout", 30*time.Second, "Time allowed for the query.")
	flag.StringSlice("header", nil,
		"Extra header sent with the query, as key:value. May be repeated.")
	flag.String("format", "text", "Output format of each frame, one of [text, html].")
	Users.Cmd.SetHelpTemplate(x.NonRootTemplate)
}

func run(ctx context.Context, conf *viper.Viper, out io.Writer) error {
	mode, err := app.ParseMode(conf.GetString("mode"))
	if err != nil {
		return err
	}
	header, err := app.ParseHeaders(conf.Get("header"))
	if err != nil {
		return err
	}
	timeout := conf.GetDuration("timeout")
	client, err := app.NewClient(conf.GetString("endpoint"), timeout, header)
	if err != nil {
		return err
	}

	var write func(io.Writer, render.Displayable) error
	switch format := conf.GetString("format"); format {
	case "", "text":
		write = render.WriteText
	case "html":
		write = func(w io.Writer, d render.Displayable) error {
			if err := render.WriteHTML(w, d); err != nil {
				return err
			}
			_, err := io.WriteString(w, "\n")
			return err
		}
	default:
		return errors.Errorf("invalid format %q, use text or html", format)
	}

	var writeErr error
	host := render.HostFunc(func(d render.Displayable) {
		if writeErr == nil {
			writeErr = write(out, d)
		}
	})

	a := &app.App{Fetcher: client, Mode: mode, Timeout: timeout}
	if err := a.Render(ctx, host); err != nil {
		return errors.Wrap(err, "while rendering users")
	}
	return writeErr
}
