/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cli

import (
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"vitess.io/charconv/go/charconv/server"
	"vitess.io/charconv/go/flagutil"
	"vitess.io/charconv/go/stats/prometheusbackend"
)

var initMetrics = sync.OnceFunc(func() {
	prometheusbackend.Init("charconv")
})

func (a *app) serveCmd() *cobra.Command {
	var (
		addr, maxBodySize  string
		corsOrigins        []string
		disableCompression bool
		accessLog          bool
		shutdownTimeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves conversions over HTTP.",
		Long: "Serves POST /convert, /detect and /validate and GET /encodings, with metrics at\n" +
			"/metrics (Prometheus) and /debug/vars (expvar) and the effective config at /debug/config.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := humanize.ParseBytes(maxBodySize)
			if err != nil {
				return err
			}
			opts := server.Options{
				Addr:               addr,
				MaxBodySize:        int64(limit),
				DefaultPolicy:      a.errorPolicy(),
				CORSOrigins:        corsOrigins,
				DisableCompression: disableCompression,
				ShutdownTimeout:    shutdownTimeout,
				Config:             a.config,
			}
			if accessLog {
				opts.AccessLog = cmd.ErrOrStderr()
			}

			initMetrics()
			return server.New(opts).Serve(cmd.Context())
		},
	}

	fs := cmd.Flags()
	flagutil.SetFlagStringVar(fs, &addr, "addr", ":8080", "listen address")
	flagutil.SetFlagStringVar(fs, &maxBodySize, "max-body-size", "16MiB", "largest accepted request body, e.g. 512KiB or 1GB")
	flagutil.SetFlagStringSliceVar(fs, &corsOrigins, "cors-origins", nil, "origins allowed to make cross-origin requests")
	flagutil.SetFlagBoolVar(fs, &disableCompression, "disable-compression", false, "do not compress responses")
	flagutil.SetFlagBoolVar(fs, &accessLog, "access-log", false, "write an access log line per request to stderr")
	flagutil.SetFlagDurationVar(fs, &shutdownTimeout, "shutdown-timeout", 10*time.Second, "how long to wait for in-flight requests on shutdown")
	return cmd
}
