package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alem-hub/school-core/config"
	"github.com/alem-hub/school-core/internal/application/query"
	"github.com/alem-hub/school-core/internal/domain/routine"
	"github.com/alem-hub/school-core/internal/domain/shared"
	"github.com/alem-hub/school-core/internal/infrastructure/persistence/memory"
	rediscache "github.com/alem-hub/school-core/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/school-core/internal/infrastructure/reference"
	"github.com/alem-hub/school-core/pkg/circuitbreaker"
	"github.com/alem-hub/school-core/pkg/logger"
)

// errUsage marks help requests and bad command lines; main exits 2 on it.
var errUsage = errors.New("usage error")

type commandLine struct {
	cfg    *config.Config
	log    *logger.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.stderr, "Usage:")
	fmt.Fprintln(cli.stderr, "  routine -timetable FILE [-reference FILE] [-days D1,D2,...] [-periods N] [-break-after N] - check class routines for clashes")
	fmt.Fprintln(cli.stderr, "  results -input FILE - grade result sheets and build the merit list")
	fmt.Fprintln(cli.stderr, "Both commands accept -pretty and -no-cache, repeated files, and - for stdin.")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errUsage
	}

	switch args[1] {
	case "routine":
		return cli.runRoutine(ctx, args[2:])
	case "results":
		return cli.runResults(ctx, args[2:])
	default:
		cli.printUsage()
		return errUsage
	}
}

// fileList collects a repeatable file flag.
type fileList []string

func (f *fileList) String() string { return strings.Join(*f, ",") }

func (f *fileList) Set(v string) error {
	*f = append(*f, v)
	return nil
}

type outputFlags struct {
	pretty  *bool
	noCache *bool
}

func addOutputFlags(fs *flag.FlagSet) outputFlags {
	return outputFlags{
		pretty:  fs.Bool("pretty", false, "Indent the JSON output."),
		noCache: fs.Bool("no-cache", false, "Always recompute reports."),
	}
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string, files *fileList) error {
	fs.SetOutput(cli.stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	*files = append(*files, fs.Args()...)
	if len(*files) == 0 {
		fs.Usage()
		return errUsage
	}
	return nil
}

func (cli *commandLine) runRoutine(ctx context.Context, args []string) error {
	routineCmd := flag.NewFlagSet("routine", flag.ContinueOnError)
	var files fileList
	routineCmd.Var(&files, "timetable", "Timetable JSON file. Repeatable.")
	refPath := routineCmd.String("reference", cli.cfg.Reference.Path, "Reference YAML with teacher allocations and subject aliases.")
	days := routineCmd.String("days", strings.Join(cli.cfg.Routine.Days, ","), "Comma separated teaching days. Defaults to Sunday to Thursday.")
	periods := routineCmd.Int("periods", cli.cfg.Routine.Periods, "Periods per day.")
	breakAfter := routineCmd.Int("break-after", cli.cfg.Routine.BreakAfter, "Periods taught before the break.")
	out := addOutputFlags(routineCmd)

	if err := cli.parse(routineCmd, args, &files); err != nil {
		return err
	}

	ref := reference.Empty()
	if *refPath != "" {
		var err error
		if ref, err = reference.Load(*refPath); err != nil {
			return err
		}
	}

	layout := routine.DefaultLayout()
	if d := splitList(*days); len(d) > 0 {
		layout.Days = d
	}
	layout.Periods = *periods
	layout.BreakAfter = *breakAfter

	analyzer, err := routine.NewAnalyzer(layout, ref.Allocation, ref.Normalizer)
	if err != nil {
		return err
	}

	cache, closeCache := cli.reportCache(ctx, *out.noCache)
	defer closeCache()
	handler := query.NewAnalyzeRoutineHandler(analyzer, ref.Version, cache, cli.log)

	enc := cli.encoder(*out.pretty)
	for _, path := range files {
		var q query.AnalyzeRoutineQuery
		if err := cli.readJSON(path, &q); err != nil {
			return err
		}
		report, err := handler.Handle(ctx, q)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := enc.Encode(report); err != nil {
			return err
		}
	}
	return nil
}

func (cli *commandLine) runResults(ctx context.Context, args []string) error {
	resultsCmd := flag.NewFlagSet("results", flag.ContinueOnError)
	var files fileList
	resultsCmd.Var(&files, "input", "Result sheet JSON file. Repeatable, one per class or group.")
	out := addOutputFlags(resultsCmd)

	if err := cli.parse(resultsCmd, args, &files); err != nil {
		return err
	}

	cache, closeCache := cli.reportCache(ctx, *out.noCache)
	defer closeCache()
	handler := query.NewProcessResultsHandler(cache, cli.log)

	enc := cli.encoder(*out.pretty)
	for _, path := range files {
		var q query.ProcessResultsQuery
		if err := cli.readJSON(path, &q); err != nil {
			return err
		}
		sheet, err := handler.Handle(ctx, q)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := enc.Encode(sheet); err != nil {
			return err
		}
	}
	return nil
}

// reportCache returns Redis when configured and reachable, otherwise an
// in-process cache that only dedups within this run.
func (cli *commandLine) reportCache(ctx context.Context, disabled bool) (query.ReportCache, func()) {
	if disabled {
		return query.NopCache{}, func() {}
	}

	if rc := cli.cfg.Redis; !rc.Disabled {
		cfg := rediscache.DefaultConfig()
		cfg.URL = rc.URL
		cfg.Host = rc.Host
		cfg.Port = rc.Port
		cfg.Password = rc.Password
		cfg.DB = rc.DB
		cfg.PoolSize = rc.PoolSize
		cfg.MinIdleConns = rc.MinIdleConns
		cfg.DialTimeout = rc.DialTimeout
		cfg.ReadTimeout = rc.ReadTimeout
		cfg.WriteTimeout = rc.WriteTimeout

		c, err := rediscache.NewCache(ctx, cfg)
		if err == nil {
			breaker := circuitbreaker.New("redis-report-cache",
				circuitbreaker.WithOnStateChange(func(name string, from, to circuitbreaker.State) {
					cli.log.Warn("circuit breaker state changed",
						logger.Component(name), logger.String("from", from.String()), logger.String("to", to.String()))
				}))
			return rediscache.NewReportCache(c, rc.ReportTTL, breaker), func() {
				if err := c.Close(); err != nil {
					cli.log.Warn("closing redis", logger.Err(err))
				}
			}
		}
		cli.log.Warn("falling back to in-process report cache",
			logger.Err(shared.WrapError("cache", "Connect", shared.ErrCacheUnavailable, cfg.Addr(), err)))
	}

	mem, err := memory.NewReportCache(memory.DefaultSize)
	if err != nil {
		cli.log.Warn("report cache disabled", logger.Err(err))
		return query.NopCache{}, func() {}
	}
	return mem, func() {}
}

func (cli *commandLine) encoder(pretty bool) *json.Encoder {
	enc := json.NewEncoder(cli.stdout)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc
}

// readJSON decodes one input document. Unknown fields are rejected.
func (cli *commandLine) readJSON(path string, dest any) error {
	var r io.Reader = cli.stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return shared.WrapError("cli", "Read", shared.ErrInvalidFormat, path, err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
