// Command draw runs a complete raffle from the command line: it loads both
// datasets, draws every prize group in dataset order and writes the ledger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/osse101/LuckyDraw_Go/internal/config"
	"github.com/osse101/LuckyDraw_Go/internal/dataset"
	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/draw"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
	"github.com/osse101/LuckyDraw_Go/internal/utils"
)

type options struct {
	participants string
	prizes       string
	groups       []string
	out          string
	snapshot     string
	seed         uint64
	seeded       bool
	verbose      bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "draw:", err)
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	var groups string
	fs.StringVar(&opts.participants, "participants", config.DefaultParticipantsPath, "participants dataset (.csv or .json)")
	fs.StringVar(&opts.prizes, "prizes", config.DefaultPrizesPath, "prizes dataset (.csv or .json)")
	fs.StringVar(&groups, "groups", "", "comma separated groups to draw, in order (default: every group)")
	fs.StringVar(&opts.out, "out", "-", "winners file (.csv or .json), - prints a table")
	fs.StringVar(&opts.snapshot, "snapshot", "", "write the remaining pools and ledger as JSON")
	fs.Uint64Var(&opts.seed, "seed", 0, "seed for a reproducible draw (testing only)")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seeded = true
		}
	})
	for _, g := range strings.Split(groups, ",") {
		if g = strings.TrimSpace(g); g != "" {
			opts.groups = append(opts.groups, g)
		}
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := logger.LogLevelInfo
	if opts.verbose {
		level = logger.LogLevelDebug
	}
	logger.InitLoggerWithWriter(logger.NewConfig(level, logger.LogFormatText, "luckydraw-cli", config.DefaultVersion, config.DefaultEnvironment, false), stderr)

	participants, err := dataset.LoadParticipants(ctx, opts.participants)
	if err != nil {
		return err
	}
	prizes, err := dataset.LoadPrizes(ctx, opts.prizes)
	if err != nil {
		return err
	}

	picker := draw.SecurePicker()
	if opts.seeded {
		slog.Warn("Seeded draw: results are reproducible and must not be used for a real raffle", "seed", opts.seed)
		picker = draw.SeededPicker(opts.seed)
	}

	engine := draw.NewEngine(picker)
	state := draw.NewState(participants, prizes)

	groups := opts.groups
	if len(groups) == 0 {
		groups = state.Groups()
	}

	var skipped []string
	for _, group := range groups {
		if _, err := engine.DrawGroup(ctx, state, group); err != nil {
			if errors.Is(err, domain.ErrInsufficientParticipants) || errors.Is(err, domain.ErrUnknownOrExhaustedGroup) {
				slog.Warn("Group skipped", "group", group, "error", err)
				skipped = append(skipped, group)
				continue
			}
			return fmt.Errorf("draw %q: %w", group, err)
		}
	}

	if err := writeLedger(stdout, opts.out, state.Winners()); err != nil {
		return err
	}

	if opts.snapshot != "" {
		if err := utils.SaveJSON(opts.snapshot, state.Snapshot()); err != nil {
			return err
		}
	}

	remainingParticipants, remainingPrizes, winners := state.Counts()
	slog.Info("Draw finished",
		"winners", winners,
		"participants_left", remainingParticipants,
		"prizes_left", remainingPrizes,
		"skipped_groups", skipped)
	return nil
}

func writeLedger(stdout io.Writer, out string, winners []domain.WinnerRecord) error {
	if out == "-" {
		return printTable(stdout, winners)
	}

	format, err := dataset.FormatFromPath(out)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := dataset.WriteWinners(f, winners, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return f.Close()
}

func printTable(w io.Writer, winners []domain.WinnerRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tGROUP\tPRIZE\tWINNER")
	for _, rec := range winners {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", rec.SequenceNumber, rec.Group, rec.PrizeName, rec.ParticipantName)
	}
	return tw.Flush()
}
