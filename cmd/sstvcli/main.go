// sstvcli - command-line front end for the sstv transceiver library.
//
// Follows cmd/ie32to64's flag-and-subcommand style: per-subcommand
// flag.FlagSet String/Int flags,
// flag.Usage overridden with a worked example block, errors printed via
// fmt.Fprintf(os.Stderr, ...) followed by os.Exit(1).
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/intuitionamiga/sstv-transceiver"
)

func encodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sstvcli <command> [options]\n\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  encode    -in image.png -out out.wav -mode MartinM1\n")
		fmt.Fprintf(os.Stderr, "  decode    -in in.wav -out image.png -mode MartinM1\n")
		fmt.Fprintf(os.Stderr, "  transmit  -in image.png -out out.png -mode MartinM1\n")
		fmt.Fprintf(os.Stderr, "  modes\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  sstvcli modes\n")
		fmt.Fprintf(os.Stderr, "  sstvcli encode -in photo.jpg -out photo.wav -mode Robot36\n")
		fmt.Fprintf(os.Stderr, "  sstvcli decode -in photo.wav -out photo.png -mode Robot36\n")
		fmt.Fprintf(os.Stderr, "  sstvcli transmit -in photo.jpg -out clean.png -mode Robot36\n")
	}

	if len(os.Args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "modes":
		runModes()
	case "encode":
		runEncode(os.Args[2:])
	case "decode":
		runDecode(os.Args[2:])
	case "transmit":
		runTransmit(os.Args[2:])
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runModes() {
	for _, m := range sstv.KnownModes() {
		fmt.Printf("%-12s %dx%d\n", m.Name, m.Width, m.Height)
	}
	fmt.Printf("%-12s parametric (pass -w/-h)\n", sstv.ModeNative)
}

func runEncode(args []string) {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	in := fs.String("in", "", "input image path (png/jpeg)")
	out := fs.String("out", "", "output WAV path")
	mode := fs.String("mode", "MartinM1", "SSTV mode name")
	w := fs.Int("w", 0, "width, for -mode Native only")
	h := fs.Int("h", 0, "height, for -mode Native only")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "error: -in and -out are required")
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: decode image: %v\n", err)
		os.Exit(1)
	}

	o := sstv.NewOrchestrator()
	samples, m, err := o.EncodeOnly(img, *mode, *w, *h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := sstv.WriteWAV(outFile, samples, sstv.SampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("encoded %s (%dx%d) -> %s (%d samples, %.1fs)\n",
		m.Name, m.Width, m.Height, *out, len(samples), float64(len(samples))/float64(sstv.SampleRate))
}

func runDecode(args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	in := fs.String("in", "", "input WAV path")
	out := fs.String("out", "", "output PNG path")
	mode := fs.String("mode", "MartinM1", "SSTV mode name")
	w := fs.Int("w", 0, "width, for -mode Native only")
	h := fs.Int("h", 0, "height, for -mode Native only")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "error: -in and -out are required")
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	o := sstv.NewOrchestrator()
	img, err := o.DecodeBatchFile(f, *mode, *w, *h)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := encodePNG(outFile, img); err != nil {
		fmt.Fprintf(os.Stderr, "error: write png: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("decoded %s -> %s\n", *in, *out)
}

// runTransmit plays src through the real audio device while a shadowing
// decoder reconstructs it off the speaker output, printing live progress;
// once playback stops, it writes the post-stop clean-reference decode
// (the original audio, no effects) to -out as the A/B comparison image.
func runTransmit(args []string) {
	fs := flag.NewFlagSet("transmit", flag.ExitOnError)
	in := fs.String("in", "", "input image path (png/jpeg)")
	out := fs.String("out", "", "output clean-reference PNG path")
	mode := fs.String("mode", "MartinM1", "SSTV mode name")
	width := fs.Int("w", 0, "width, for -mode Native only")
	height := fs.Int("h", 0, "height, for -mode Native only")
	fs.Parse(args)

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "error: -in and -out are required")
		os.Exit(1)
	}

	f, err := os.Open(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: decode image: %v\n", err)
		os.Exit(1)
	}

	o := sstv.NewOrchestrator()

	var handle *sstv.TransmissionHandle
	var clean *image.RGBA
	finished := make(chan struct{})

	handle, err = o.Transmit(src, *mode, *width, *height, nil,
		func(y int, row []color.RGBA) {
			fmt.Printf("\reffected line %3d  progress %3d%%", y, handle.Progress())
		},
		func(y int, row []color.RGBA) {
			if clean == nil {
				clean = image.NewRGBA(image.Rect(0, 0, len(row), handle.Mode.Height))
			}
			for x, c := range row {
				clean.SetRGBA(x, y, c)
			}
		},
		func() { close(finished) },
		func(err error) { fmt.Fprintf(os.Stderr, "\nerror: %v\n", err) },
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := handle.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "error: start playback: %v\n", err)
		os.Exit(1)
	}

	for !handle.Player.Done() {
		time.Sleep(50 * time.Millisecond)
	}
	handle.Stop()

	select {
	case <-finished:
	case <-time.After(30 * time.Second):
		fmt.Fprintln(os.Stderr, "\nerror: clean reference pass timed out")
		os.Exit(1)
	}

	if clean == nil {
		fmt.Fprintln(os.Stderr, "\nerror: no clean reference lines decoded")
		os.Exit(1)
	}

	outFile, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := encodePNG(outFile, clean); err != nil {
		fmt.Fprintf(os.Stderr, "error: write png: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\ntransmitted %s -> %s (clean reference)\n", *in, *out)
}
