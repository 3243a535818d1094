/*
Copyright © 2025 The vocan authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/aladaia/vocan/internal/ioexport"
	"github.com/aladaia/vocan/internal/ioserve"
	"github.com/aladaia/vocan/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	var (
		outDir string
		port   int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the results of the last analysis over HTTP",
		Long: `Start a read-only HTTP API over the artifacts of the last run.

Routes:
  GET /api/v1/ask?q=<question>   fixed-intent answer, same as 'vocan ask'
  GET /api/v1/summary            corpus summary
  GET /api/v1/stores[/:id]       store statistics
  GET /api/v1/zones              zone statistics
  GET /api/v1/tags               tag statistics
  GET /api/v1/quality            sentiment quality report
  GET /api/v1/plan               tagging plan
  GET /api/v1/manifest           run manifest
  GET /metrics                   Prometheus metrics

Press Ctrl-C to stop the server.

Examples:
  vocan serve
  vocan serve -o data/analysis -P 9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if cmd.Flags().Changed("out") {
				opts = append(opts, config.OptOutputDir(outDir))
			}
			if cmd.Flags().Changed("port") {
				opts = append(opts, config.OptServePort(port))
			}
			cfg.Update(opts)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			err := runServe(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().StringVarP(
		&outDir, "out", "o", "",
		"directory with analysis artifacts",
	)
	serveCmd.Flags().IntVarP(
		&port, "port", "P", 0,
		"port of the HTTP API",
	)

	return serveCmd
}

func runServe(ctx context.Context) error {
	b, man, err := ioexport.LoadBundle(cfg.Output.Dir)
	if err != nil {
		return err
	}

	ttl := time.Duration(cfg.Serve.CacheTTL) * time.Second
	srv, err := ioserve.New(b, man, ttl)
	if err != nil {
		return err
	}

	gn.Info("Serving run <em>%s</em> on http://localhost:%d%s",
		man.RunID, cfg.Serve.Port, ioserve.APIPrefix)
	return srv.Run(ctx, cfg.Serve.Port)
}
