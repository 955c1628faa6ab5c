// collabnet builds a co-authorship network from bibliographic export files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/miku/collabnet"
	"github.com/miku/collabnet/coauthor"
	"github.com/miku/collabnet/config"
	"github.com/miku/collabnet/graphio"
	"github.com/miku/collabnet/metrics"
	"github.com/miku/collabnet/profile"
	"github.com/miku/collabnet/progress"
	"github.com/miku/collabnet/records"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# collabnet - co-authorship networks

Reads Scopus or Web of Science exports from a data directory and writes a
weighted collaboration graph: one node per author, one edge per pair of
authors that published together, weighted by the number of shared records.
Nodes are sized by number of articles or by citations.

## usage

Put exported files into ./data, then:

	$ collabnet -s wos -t 2
	$ collabnet -s scopus -a 3
	$ collabnet -s scopus -p citations -f dot -z .gz

A bare number argument sets the threshold, as in "collabnet -s wos 2" or
"collabnet 2 -s wos".

## profiles

	$ collabnet -l

Custom profiles can be defined in a YAML file (-P), by default

	~/.config/collabnet/profiles.yaml

## environment

All defaults can be set via COLLABNET_ variables, e.g. COLLABNET_DATA_DIR,
COLLABNET_PROFILE, COLLABNET_THRESHOLD; a .env file in the current directory
is read as well.

## flags

`, "\n")

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	var (
		articles     = flag.Bool("a", false, "size nodes by number of articles, same as -p articles")
		listProfiles = flag.Bool("l", false, "list available profiles")
		verbose      = flag.Bool("v", false, "verbose output")
		quiet        = flag.Bool("q", false, "only log warnings and errors, no progress")
		showVersion  = flag.Bool("version", false, "show version")
	)
	flag.StringVar(&cfg.DataDir, "d", cfg.DataDir, "directory with export files")
	flag.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "output directory")
	flag.StringVar(&cfg.Profile, "s", cfg.Profile, "source profile name")
	flag.StringVar(&cfg.ProfilesFile, "P", cfg.ProfilesFile, "YAML file with additional profiles")
	flag.StringVar(&cfg.Policy, "p", cfg.Policy, "node size policy: articles or citations (default from profile)")
	flag.IntVar(&cfg.Threshold, "t", cfg.Threshold, "minimum number of publications per author")
	flag.StringVar(&cfg.Format, "f", cfg.Format, "output format: graphml or dot")
	flag.StringVar(&cfg.Compression, "z", cfg.Compression, "compress output, .gz or .zst")
	flag.IntVar(&cfg.Workers, "w", cfg.Workers, "number of workers")
	flag.StringVar(&cfg.Match, "m", cfg.Match, "record matching: index or scan")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "fail on malformed citation counts")
	flag.StringVar(&cfg.ReportFile, "report", cfg.ReportFile, "write a JSON run report to this file")
	flag.StringVar(&cfg.MetricsFile, "metrics", cfg.MetricsFile, "write prometheus metrics to this textfile")
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	threshold, ok, err := parseArgs(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if *showVersion {
		fmt.Println(collabnet.Version)
		os.Exit(0)
	}
	if ok {
		cfg.Threshold = threshold
	}
	if *articles {
		cfg.Policy = string(coauthor.PolicyArticles)
	}
	switch {
	case *verbose:
		cfg.LogLevel = "debug"
	case *quiet:
		cfg.LogLevel = "warning"
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	registry, err := loadProfiles(cfg.ProfilesFile)
	if err != nil {
		log.Fatal(err)
	}
	if *listProfiles {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, name := range registry.Names() {
			p, _ := registry.Lookup(name)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Format, p.AuthorColumn, p.IDColumn, p.CitationColumn)
		}
		w.Flush()
		os.Exit(0)
	}
	if err := run(cfg, registry, *quiet); err != nil {
		log.Fatal(err)
	}
}

// parseArgs parses flags and positional arguments in any order. A positional
// number sets the threshold, the last one wins.
func parseArgs(fs *flag.FlagSet, args []string) (threshold int, ok bool, err error) {
	for {
		if err := fs.Parse(args); err != nil {
			return 0, false, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return threshold, ok, nil
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, false, fmt.Errorf("unexpected argument: %q", args[0])
		}
		threshold, ok = v, true
		args = args[1:]
	}
}

// loadProfiles returns the builtin profiles, plus any from filename or the
// default profiles file.
func loadProfiles(filename string) (*profile.Registry, error) {
	registry := profile.NewRegistry()
	switch {
	case filename != "":
		if err := registry.LoadFile(filename); err != nil {
			return nil, err
		}
	default:
		err := registry.LoadFile(config.DefaultProfilesFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return registry, nil
}

func run(cfg *config.Config, registry *profile.Registry, quiet bool) error {
	report := collabnet.NewReport()
	started := time.Now()
	p, err := registry.Lookup(cfg.Profile)
	if err != nil {
		return err
	}
	if cfg.Policy != "" {
		p = p.WithPolicy(coauthor.Policy(cfg.Policy))
	}
	normalizer, err := p.Normalizer()
	if err != nil {
		return err
	}
	logger := log.WithField("run", report.RunID)
	logger.WithFields(log.Fields{
		"profile":   p.Name,
		"policy":    p.Policy,
		"threshold": cfg.Threshold,
		"data":      cfg.DataDir,
	}).Info("starting")
	paths, err := records.Discover(cfg.DataDir, p.Format)
	if err != nil {
		return err
	}
	recs, stats, err := records.Load(p, paths)
	if err != nil {
		return err
	}
	logger.WithFields(log.Fields{
		"files":      stats.Files,
		"rows":       stats.Rows,
		"duplicates": stats.Duplicates,
		"missing":    stats.MissingAuthors,
		"records":    stats.Records,
	}).Info("loaded records")
	var reporter coauthor.Reporter = progress.Nop{}
	if !quiet {
		reporter = progress.New(os.Stderr, logger)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := coauthor.Run(ctx, recs, coauthor.Options{
		Normalizer: normalizer,
		Separator:  p.Separator,
		MinWeight:  cfg.Threshold,
		Policy:     p.Policy,
		Strict:     cfg.Strict,
		Match:      coauthor.MatchMode(cfg.Match),
		Workers:    cfg.Workers,
		Reporter:   reporter,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	g, err := graphio.NewGraph(res.Matrix, res.Scores, graphio.Meta{
		RunID:     report.RunID,
		Profile:   p.Name,
		Policy:    p.Policy.String(),
		Threshold: cfg.Threshold,
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	output := cfg.OutputPath(p.Name, p.Policy)
	if err := graphio.WriteFile(output, g, graphio.Format(cfg.Format)); err != nil {
		return err
	}
	elapsed := time.Since(started)
	logger.WithFields(log.Fields{
		"nodes": g.NumNodes(),
		"edges": g.NumEdges(),
		"file":  output,
	}).Infof("execution time: %s", collabnet.FormatDuration(elapsed))
	if cfg.MetricsFile != "" {
		m := metrics.New(p.Name, p.Policy.String())
		m.ObserveRecords(stats)
		m.ObserveResult(res)
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
	}
	if cfg.ReportFile != "" {
		report.Profile = p.Name
		report.Policy = p.Policy.String()
		report.Threshold = cfg.Threshold
		report.Match = cfg.Match
		report.Files = paths
		report.Records = stats
		report.Output = output
		report.Elapsed = elapsed
		report.AddResult(res)
		if err := report.WriteFile(cfg.ReportFile); err != nil {
			return err
		}
	}
	return nil
}
