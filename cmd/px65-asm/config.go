package main

import (
	"flag"
	"fmt"
	"os"
)

// Config defines program configuration.
type Config struct {
	Input       string // Input source file to build.
	Output      string // Path to store output in. The extension selects the format.
	DumpArchive bool   // Print a human-readable dump of the assembled archive and exit.
	Disassemble bool   // Print a disassembly listing with source positions and exit.
	RunSteps    int    // Run the program headless for at most this many steps.
	Seed        int64  // Random number seed for headless runs.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.Output = "out.p65"
	c.Seed = 1

	flag.Usage = func() {
		fmt.Printf("%s [options] <input source file>\n", os.Args[0])
		fmt.Println("The output format follows the output file extension: .p65 archive, .hex text or raw binary.")
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Output, "out", c.Output, "Output file.")
	flag.BoolVar(&c.DumpArchive, "dump-ar", c.DumpArchive, "Print a human-readable version of the assembled archive to stdout.")
	flag.BoolVar(&c.Disassemble, "dump", c.Disassemble, "Print a disassembly of the assembled program to stdout.")
	flag.IntVar(&c.RunSteps, "run", c.RunSteps, "Run the program headless for at most N steps and print the framebuffer.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number byte at $fe during headless runs.")
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

	c.Input = flag.Arg(0)
	return &c
}
