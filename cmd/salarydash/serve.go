package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
	"github.com/fr4nk3nst1ner/salarydash/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Serve the dashboard page, its JSON model, XLSX and CSV exports,
a health check and Prometheus metrics.

Every request is one render pass over the current dataset. The file is re-read
when it changes on disk, or on every request with --reload.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	flags := serveCmd.Flags()
	flags.String("addr", "", "listen address (default :8501)")
	flags.StringSlice("cors-origin", nil, "origins allowed to call the JSON API")
	flags.Int("max-rows", 0, "cap on rows shown in the detail table, 0 for no cap")

	for key, flag := range map[string]string{
		"server.addr":         "addr",
		"server.cors_origins": "cors-origin",
		"server.max_rows":     "max-rows",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	source, err := dataset.Open(sourceConfig(), logger)
	if err != nil {
		return err
	}

	// fail fast on a broken dataset; later load errors are shown on the page
	table, err := source.Table(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info("dataset ready", "path", cfg.Dataset.Path, "rows", table.Len())

	server := web.NewServer(source, web.Options{
		Addr:        cfg.Server.Addr,
		CORSOrigins: cfg.Server.CORSOrigins,
		Username:    cfg.Server.Username,
		Password:    cfg.Server.Password,
		Render:      renderOptions(cfg.Charts.Images),
	}, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pterm.Info.Printfln("Dashboard available at http://%s", displayAddr(cfg.Server.Addr))
	return server.Run(ctx)
}

// displayAddr turns a listen address into something a browser can open
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
