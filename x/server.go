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

package x

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds how long in-flight requests get once shutdown starts.
var ShutdownTimeout = 10 * time.Second

// ListenAddr is the address to listen on for port.
func ListenAddr(bindall bool, port int) string {
	laddr := "localhost"
	if bindall {
		laddr = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d", laddr, port)
}

// ListenAndServe serves h on addr until the process is asked to stop with
// SIGINT or SIGTERM.
func ListenAndServe(addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "while listening on %s", addr)
	}
	glog.Infof("Listening for HTTP requests on %s", l.Addr())
	return Serve(ctx, l, h)
}

// Serve serves h on l until ctx ends, then shuts down gracefully.  It
// returns nil after a clean shutdown.
func Serve(ctx context.Context, l net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "while serving HTTP")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		glog.Infoln("Shutting down HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(sctx), "while shutting down HTTP server")
	})
	return g.Wait()
}
