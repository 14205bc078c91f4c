// filter reads a .t42 stream, applies either a page pass-through predicate
// or subpage squashing, and writes the result as another .t42 stream, per
// base spec §6.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/packet"
	"github.com/ZXByteman/vhs-teletext/pipeline"
	"github.com/ZXByteman/vhs-teletext/rawline"
	"github.com/ZXByteman/vhs-teletext/stream"
	"github.com/ZXByteman/vhs-teletext/t42"
)

const (
	logPath      = "filter.log"
	logMaxSize   = 100
	logMaxBackup = 5
	logMaxAge    = 28
)

const (
	exitOK             = 0
	exitOther          = 1
	exitMalformedInput = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	pagePredicate := fs.String("p", "", "page predicate, hex, e.g. 100")
	squash := fs.Bool("squash", false, "squash repeated subpage transmissions by confidence vote")
	maxObs := fs.Int("max-observations", config.DefaultMaxObservations, "N_max_observations for --squash")
	quiet := fs.Int("quiet-frames", config.DefaultQuietFrames, "T_quiet for --squash, in frames")
	input := fs.String("in", "", "input .t42 path (default stdin)")
	if err := fs.Parse(args); err != nil {
		return exitOther
	}

	fileLog := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	log := logging.New(logging.Info, fileLog, true)

	cfg := config.Config{Logger: log, MaxObservations: *maxObs, QuietFrames: *quiet}
	switch {
	case *squash:
		cfg.Mode = config.ModeSquash
	case *pagePredicate != "":
		page, err := strconv.ParseUint(*pagePredicate, 16, 16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "filter: bad -p value %q: %v\n", *pagePredicate, err)
			return exitOther
		}
		cfg.Mode = config.ModePassThrough
		cfg.Page = uint16(page)
	default:
		cfg.Mode = config.ModeRaw
	}
	cfg.Validate()

	in := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitOther
		}
		defer f.Close()
		in = f
	}

	records, err := t42.ReadAll(in)
	if err != nil {
		log.Error("malformed .t42 input", "error", err.Error())
		fmt.Fprintln(os.Stderr, err)
		return exitMalformedInput
	}

	sink := pipeline.NewT42Sink(os.Stdout)
	defer sink.Close()

	filter := stream.New(cfg)
	for i, rec := range records {
		line := &rawline.Line{Bytes: rec, FrameIndex: uint64(i)}
		for j := range line.Confidence {
			line.Confidence[j] = 1
		}
		pkt, err := packet.Decode(line)
		if err != nil {
			log.Debug("dropping record with bad address", "index", i, "error", err.Error())
			continue
		}
		out, pg, emit, flushed := filter.Observe(pkt)
		if emit {
			if err := sink.WritePacket(out); err != nil {
				log.Error("sink write failed", "error", err.Error())
				return exitOther
			}
		}
		if flushed {
			if err := sink.WritePage(pg); err != nil {
				log.Error("sink write failed", "error", err.Error())
				return exitOther
			}
		}
	}
	for _, pg := range filter.Flush() {
		if err := sink.WritePage(pg); err != nil {
			log.Error("sink write failed", "error", err.Error())
			return exitOther
		}
	}
	return exitOK
}
