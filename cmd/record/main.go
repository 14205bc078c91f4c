// record captures raw VBI samples from a sound card via ALSA and writes
// them as a headerless .vbi stream, the thin external capture boundary for
// this pipeline (base spec §6).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/ZXByteman/vhs-teletext/capture"
	"github.com/ZXByteman/vhs-teletext/config"
)

const (
	logPath      = "record.log"
	logMaxSize   = 100
	logMaxBackup = 5
	logMaxAge    = 28
)

const (
	exitOK             = 0
	exitOther          = 1
	exitUnknownProfile = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("record", flag.ContinueOnError)
	dev := fs.String("d", "", "ALSA device title (default: first recording-capable device)")
	device := fs.String("device", config.ProfileBT8x8PAL, "device profile name, for sample-rate negotiation")
	output := fs.String("out", "", ".vbi output path (default stdout)")
	frames := fs.Uint64("frames", 0, "stop after this many frames (0 = run until interrupted)")
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

	src, err := capture.OpenALSASource(log, *dev, int(lc.SampleRate), lc.SamplesPerLine)
	if err != nil {
		log.Error("could not open capture device", "error", err.Error())
		fmt.Fprintln(os.Stderr, err)
		return exitOther
	}
	defer src.Close()

	var out io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitOther
		}
		defer f.Close()
		out = f
	}

	log.Info("recording started", "device", *dev, "profile", *device)
	var n uint64
	for *frames == 0 || n < *frames {
		frame, err := src.Next()
		if err != nil {
			log.Error("capture read failed", "error", err.Error())
			fmt.Fprintln(os.Stderr, err)
			return exitOther
		}
		if _, err := out.Write(frame.Samples); err != nil {
			log.Error("write failed", "error", err.Error())
			fmt.Fprintln(os.Stderr, err)
			return exitOther
		}
		n++
	}
	log.Info("recording finished", "frames", n)
	return exitOK
}
