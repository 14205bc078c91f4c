// deconvolve reads a raw .vbi sample stream and writes decoded teletext
// packets as a .t42 stream, per base spec §6.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ZXByteman/vhs-teletext/config"
	"github.com/ZXByteman/vhs-teletext/deconv"
	"github.com/ZXByteman/vhs-teletext/pipeline"
	"github.com/ZXByteman/vhs-teletext/sample"
)

// Logging configuration, following cmd/rv's conventions.
const (
	logPath      = "deconvolve.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

// Exit codes (base spec §6).
const (
	exitOK             = 0
	exitOther          = 1
	exitMalformedInput = 2
	exitUnknownProfile = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("deconvolve", flag.ContinueOnError)
	device := fs.String("device", config.ProfileBT8x8PAL, "device profile name")
	start := fs.Uint64("start", 0, "first frame index to process")
	stop := fs.Uint64("stop", 0, "last frame index to process (0 = until EOF)")
	printHeaders := fs.Bool("H", false, "print header lines as text to stderr")
	skip := fs.Uint64("S", 0, "skip N frames between prints when -H is set")
	useGPU := fs.Bool("gpu", false, "use the GPU-batched deconvolver backend")
	input := fs.String("in", "", "input .vbi path (default stdin)")
	if err := fs.Parse(args); err != nil {
		return exitOther
	}

	fileLog := &lumberjack.Logger{Filename: logPath, MaxSize: logMaxSize, MaxBackups: logMaxBackup, MaxAge: logMaxAge}
	log := logging.New(logging.Info, fileLog, true)

	lc, err := config.NewLineConfig(*device)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUnknownProfile
	}

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

	src := sample.NewVBISource(in, lc.SamplesPerLine)

	var dec deconv.Deconvolver
	if *useGPU {
		dec = deconv.NewGPU(config.DefaultGPUBatchSize)
	} else {
		dec = deconv.NewCPU()
	}
	defer dec.Close()

	sink := pipeline.NewT42Sink(os.Stdout)
	defer sink.Close()

	cfg := config.Config{
		Device:       *device,
		Mode:         config.ModeRaw,
		StartFrame:   *start,
		StopFrame:    *stop,
		PrintHeaders: *printHeaders,
		SkipFrames:   *skip,
		UseGPU:       *useGPU,
		GPUBatchSize: config.DefaultGPUBatchSize,
		Logger:       log,
	}
	cfg.Validate()

	pl := pipeline.New(cfg, lc, src, dec, &headerPrintingSink{Sink: sink, lc: lc, cfg: cfg})
	if err := pl.Run(context.Background()); err != nil {
		log.Error("deconvolve failed", "error", err.Error())
		fmt.Fprintln(os.Stderr, err)
		return exitOther
	}
	log.Info("deconvolve finished", "linesRecovered", pl.LinesRecovered, "linesRejected", pl.LinesRejected)
	return exitOK
}
