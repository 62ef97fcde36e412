// Command crunch compresses a file with the lz or huffman codec and writes
// the result, optionally logging a human-readable summary and verifying
// the round trip before exiting.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/bytepack/crunch"
)

const version = "crunch 0.1.0"

func usage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: crunch [options] <mode> <input> <output>

Modes:
  lz        optimal LZ77-style parse over a hybrid-coded bitstream
  huffman   standalone canonical Huffman codec

Options:
`)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nlzhuff is not implemented: see DESIGN.md for why.\n")
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("crunch", flag.ContinueOnError)
	fs.Usage = func() { usage(fs) }

	logPath := fs.String("log", "", "write a human-readable summary to `path`")
	verify := fs.Bool("verify", false, "decompress the just-compressed output and compare")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if len(args) == 0 {
		usage(fs)
		return 0
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *showVersion {
		fmt.Println(version)
		return 0
	}

	rest := fs.Args()
	if len(rest) != 3 {
		usage(fs)
		return 1
	}

	modeName, inPath, outPath := rest[0], rest[1], rest[2]

	var mode crunch.Mode
	switch modeName {
	case "lz":
		mode = crunch.LZ
	case "huffman":
		mode = crunch.Huffman
	case "lzhuff":
		fmt.Fprintln(os.Stderr, "crunch: lzhuff is not implemented")
		return 1
	default:
		fmt.Fprintf(os.Stderr, "crunch: unknown mode %q (want lz or huffman)\n", modeName)
		return 1
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crunch: %v\n", err)
		return 1
	}

	compressed, err := crunch.Compress(mode, data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crunch: compress: %v\n", err)
		return 1
	}

	if err := os.WriteFile(outPath, compressed, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "crunch: %v\n", err)
		return 1
	}

	if *logPath != "" {
		if err := writeLog(*logPath, modeName, data, compressed); err != nil {
			fmt.Fprintf(os.Stderr, "crunch: log: %v\n", err)
			return 1
		}
	}

	if *verify {
		roundTripped, err := crunch.Decompress(mode, compressed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crunch: verify: decompress failed: %v\n", err)
			return 1
		}
		if !bytes.Equal(roundTripped, data) {
			fmt.Fprintln(os.Stderr, "crunch: verify: round-trip mismatch")
			return 1
		}
	}

	return 0
}

func writeLog(path, mode string, src, compressed []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ratio := 0.0
	if len(src) > 0 {
		ratio = float64(len(compressed)) / float64(len(src))
	}

	_, err = fmt.Fprintf(f,
		"mode: %s\nsource bytes: %d\ncompressed bytes: %d\nratio: %.4f\nsource checksum: %016x\ncompressed checksum: %016x\n",
		mode, len(src), len(compressed), ratio, xxhash.Sum64(src), xxhash.Sum64(compressed),
	)
	return err
}
