package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/px65/program"
)

// Config defines program configuration.
type Config struct {
	Program     string // Path to the program to load.
	Palette     string // Optional palette file replacing the default colors.
	ScaleFactor int    // Amount by which each pixel is scaled.
	FrameSteps  int    // Maximum number of instructions executed per rendered frame.
	Seed        int64  // Random number seed. 0 picks a new seed on every load.
	Fullscreen  bool   // Run in fullscreen?
	Gamepad     bool   // Map a connected gamepad onto keys?
	Debug       bool   // Enable debug mode? This handles breakpoints if enabled.
	PrintTrace  bool   // Print instruction trace data?
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 16
	c.FrameSteps = 20000
	c.Gamepad = true

	flag.Usage = func() {
		fmt.Printf("%s [options] <program file>\n", os.Args[0])
		fmt.Printf("Programs are .asm/.s sources, %s archives, .hex text or raw binary images.\n", program.ArchiveExt)
		flag.PrintDefaults()
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "Run in debug mode: start paused and stop at breakpoints.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.IntVar(&c.FrameSteps, "frame-steps", c.FrameSteps, "Maximum number of instructions executed per frame.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number byte at $fe. 0 means a new seed on every load.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.StringVar(&c.Palette, "palette", c.Palette, "Palette file with up to 16 colors as rrggbb hex values.")
	flag.BoolVar(&c.Gamepad, "gamepad", c.Gamepad, "Map the d-pad and buttons of a connected gamepad onto keys at $ff.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 || c.FrameSteps < 1 {
		fmt.Fprintln(os.Stderr, "scale-factor and frame-steps must be positive")
		os.Exit(1)
	}

	c.Program = flag.Arg(0)
	c.PrintTrace = c.PrintTrace || c.Debug
	return &c
}
