package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/fr4nk3nst1ner/salarydash/internal/config"
	"github.com/fr4nk3nst1ner/salarydash/internal/dashboard"
	"github.com/fr4nk3nst1ner/salarydash/internal/dataset"
	"github.com/fr4nk3nst1ner/salarydash/internal/filter"
	"github.com/fr4nk3nst1ner/salarydash/internal/logging"
	"github.com/fr4nk3nst1ner/salarydash/internal/models"
	"github.com/fr4nk3nst1ner/salarydash/internal/ui"
)

var (
	// v layers command line flags over the config file and environment
	v       = config.New()
	cfg     *config.Config
	logger  *slog.Logger
	cfgFile string
	silence bool
)

// Selection flags shared by summary, export and render
var (
	selYears        []string
	selSeniorities  []string
	selWorkModels   []string
	selCompanySizes []string
)

var rootCmd = &cobra.Command{
	Use:   "salarydash",
	Short: "Annual salary dashboard for data roles",
	Long: `salarydash explores a cleaned CSV of annual salaries in the data field.

Filter by year, experience level, work model and company size, then read the
headline metrics, the best paid titles, the salary distribution, the work model
split and a map of Data Scientist salaries by country.`,
	Example: `  # Serve the dashboard on http://localhost:8501
  salarydash serve --data dados_tratados_imersao.csv

  # Print the metrics of senior remote roles in 2024
  salarydash summary --year 2024 --seniority Senior --work-model Remote

  # Export the filtered rows to a workbook
  salarydash export --year 2023,2024 -o salaries.xlsx

  # Write the dashboard as a standalone HTML file
  salarydash render -o dashboard.html`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./salarydash.yaml or ~/.config/salarydash/salarydash.yaml)")
	flags.String("data", "", "dataset CSV path or http(s) URL")
	flags.Bool("reload", false, "re-read the dataset on every render pass")
	flags.Bool("progress", false, "show a progress bar while reading the dataset")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Int("top-n", 0, "number of titles in the salary ranking")
	flags.Int("bins", 0, "number of salary histogram bins")
	flags.BoolVar(&silence, "silence", false, "silence the banner")

	bind := map[string]string{
		"dataset.path":     "data",
		"dataset.reload":   "reload",
		"dataset.progress": "progress",
		"log.level":        "log-level",
		"charts.top_n":     "top-n",
		"charts.bins":      "bins",
	}
	for key, flag := range bind {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(serveCmd, summaryCmd, exportCmd, renderCmd)
}

func addSelectionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&selYears, "year", nil, "years to include (repeatable, default all)")
	flags.StringSliceVar(&selSeniorities, "seniority", nil, "experience levels to include (repeatable, default all)")
	flags.StringSliceVar(&selWorkModels, "work-model", nil, "work models to include (repeatable, default all)")
	flags.StringSliceVar(&selCompanySizes, "company-size", nil, "company sizes to include (repeatable, default all)")
}

// setup loads the configuration and the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	logger, err = logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	ui.PrintBanner(silence)
	return nil
}

// renderOptions returns the dashboard options from the configuration
func renderOptions(images bool) dashboard.Options {
	return dashboard.Options{
		TopN:    cfg.Charts.TopN,
		Bins:    cfg.Charts.Bins,
		Images:  images,
		MaxRows: cfg.Server.MaxRows,
	}
}

// sourceConfig returns the dataset location from the configuration
func sourceConfig() dataset.SourceConfig {
	return dataset.SourceConfig{
		Path:   cfg.Dataset.Path,
		Reload: cfg.Dataset.Reload,
		TTL:    cfg.Dataset.TTL,
		Proxy:  cfg.Dataset.Proxy,
	}
}

// loadTable reads the dataset once for a one-shot command
func loadTable(ctx context.Context) (*models.Table, error) {
	var (
		table *models.Table
		err   error
	)
	if dataset.IsURL(cfg.Dataset.Path) {
		var src dataset.Source
		src, err = dataset.Open(sourceConfig(), logger)
		if err == nil {
			table, err = src.Table(ctx)
		}
	} else {
		table, err = dataset.LoadFile(cfg.Dataset.Path, dataset.WithProgress(cfg.Dataset.Progress))
	}
	if err != nil {
		return nil, err
	}

	pterm.Info.Printfln("Loaded %d records from %s", table.Len(), cfg.Dataset.Path)
	return table, nil
}

// selectionFromFlags parses the selection flags against table; an absent flag keeps every value
func selectionFromFlags(table *models.Table) (filter.Selection, error) {
	values := url.Values{}
	set := func(param string, vals []string) {
		if len(vals) > 0 {
			values[param] = vals
		}
	}
	set(filter.ParamYear, selYears)
	set(filter.ParamSeniority, selSeniorities)
	set(filter.ParamWorkModel, selWorkModels)
	set(filter.ParamCompanySize, selCompanySizes)

	sel, err := filter.Parse(values, table)
	if err != nil {
		return filter.Selection{}, fmt.Errorf("invalid selection: %w", err)
	}
	return sel, nil
}

// outputFormat picks the export format from an explicit flag or the file extension
func outputFormat(format, path string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return strings.ToLower(path[i+1:])
	}
	return ""
}

// writeFile creates path and fills it with write. A failed write leaves no partial file behind.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
