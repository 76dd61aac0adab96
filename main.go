package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/andareed/siftly-popchart/config"
	"github.com/andareed/siftly-popchart/dataset"
	"github.com/andareed/siftly-popchart/logging"
	"github.com/andareed/siftly-popchart/scb"
	"github.com/andareed/siftly-popchart/timeseries"
)

var (
	logFile     = pflag.String("debug", "", "write debug logs to file")
	configPath  = pflag.String("config", "", "config file (default $"+config.EnvVar+")")
	windowFlag  = pflag.StringP("window", "w", "", `initial window: a number of months or "all"`)
	diffFlag    = pflag.BoolP("diff", "d", false, "show the difference series (B - A)")
	outPath     = pflag.StringP("out", "o", "", "write the chart (.svg, .png) or table (.csv) to a file and exit")
	updateFlag  = pflag.Bool("update", false, "fetch newly published months from SCB into the dataset file and exit")
	versionFlag = pflag.Bool("version", false, "print version and exit")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sfpop [flags] [dataset.json|dataset.csv|URL]\n\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	log.Println("siftly-popchart: Started")

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	applyFlags(cfg, pflag.Args())

	switch {
	case *updateFlag:
		if err := runUpdate(cfg); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	case *outPath != "":
		if err := runExport(cfg, *outPath); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	case !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()):
		if err := runPlain(cfg, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	m := newModel(cfg, datasetLoader(cfg))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Printf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}
}

// applyFlags layers the command line over the loaded configuration.
func applyFlags(cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Data.Source = args[0]
	}
	if *windowFlag != "" {
		cfg.View.DefaultWindow = *windowFlag
		if !hasWindow(cfg.View.Windows, *windowFlag) {
			cfg.View.Windows = append(cfg.View.Windows, *windowFlag)
		}
	}
	if pflag.CommandLine.Changed("diff") {
		cfg.View.ShowDifference = *diffFlag
	}
}

func hasWindow(options []string, w string) bool {
	target := timeseries.ParseWindow(w)
	for _, o := range options {
		if timeseries.ParseWindow(o) == target {
			return true
		}
	}
	return false
}

// datasetFields is shared by the loader and the updater so both read and
// write the same keys.
func datasetFields(cfg *config.Config) dataset.Fields {
	return dataset.Fields{
		Region: cfg.Data.RegionField,
		Period: cfg.Data.PeriodField,
		Value:  cfg.Data.ValueField,
	}
}

func datasetLoader(cfg *config.Config) loadFunc {
	opts := dataset.Options{
		Fields:  datasetFields(cfg),
		Timeout: cfg.Data.LoadTimeout,
	}
	source := cfg.Data.Source
	return func(ctx context.Context) ([]timeseries.Row, error) {
		return dataset.Load(ctx, source, opts)
	}
}

// loadHeadless loads the dataset synchronously and projects the initial
// frame, for the modes that do not start the TUI.
func loadHeadless(cfg *config.Config) (*model, error) {
	m := newModel(cfg, datasetLoader(cfg))
	ctx, cancel := withTimeout(cfg.Data.LoadTimeout)
	defer cancel()
	rows, err := m.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Data.Source, err)
	}
	m.data.setRows(rows, cfg)
	return m, nil
}

func runExport(cfg *config.Config, path string) error {
	m, err := loadHeadless(cfg)
	if err != nil {
		return err
	}
	if err := exportFrame(path, m.data.frame, m.renderOptions()); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d periods, window %s)\n", path, m.data.frame.Len(), m.data.window())
	return nil
}

// runPlain prints the visible window as a text table when stdout is not a
// terminal.
func runPlain(cfg *config.Config, w io.Writer) error {
	m, err := loadHeadless(cfg)
	if err != nil {
		return err
	}
	nameA, nameB := m.regionNames()
	recs := frameRecords(m.data.frame, nameA, nameB)
	t := table.New().
		Border(lipgloss.ASCIIBorder()).
		Headers(recs[0]...).
		Rows(recs[1:]...)
	_, err = fmt.Fprintln(w, t.Render())
	return err
}

func runUpdate(cfg *config.Config) error {
	u := &scb.Updater{Client: scb.NewClient(cfg), Fields: datasetFields(cfg)}
	ctx, cancel := withTimeout(cfg.SCB.Timeout)
	defer cancel()

	res, err := u.Update(ctx, cfg.Data.Source)
	if errors.Is(err, scb.ErrNoExistingData) {
		return fmt.Errorf("%s: %w", cfg.Data.Source, err)
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", cfg.Data.Source, err)
	}
	switch {
	case len(res.Fetched) == 0:
		fmt.Printf("%s is up to date (latest complete month %s)\n", cfg.Data.Source, res.Latest)
	case res.Added == 0:
		fmt.Printf("no new data published for %v\n", res.Fetched)
	default:
		fmt.Printf("added %d rows to %s\n", res.Added, cfg.Data.Source)
	}
	return nil
}

// withTimeout bounds a background context; zero means no deadline.
func withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), d)
}
