// Command word256vm drives hex-encoded EVM bytecode through the word256vm
// opcode dispatcher and prints the resulting stack. It exercises the
// arithmetic core end-to-end without any of the surrounding machinery
// (state, networking, consensus) that a full execution client needs.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	vmlog "github.com/eth2030/word256vm/pkg/log"
	"github.com/eth2030/word256vm/pkg/vm"
)

// legacyCode is the simplest CodeSource: plain (non-EOF) bytecode with no
// sub-containers.
type legacyCode struct {
	bytes []byte
}

func (c *legacyCode) EOFVersion() int { return 0 }

func (c *legacyCode) ReadU8(pc int) (byte, bool) {
	if pc < 0 || pc >= len(c.bytes) {
		return 0, false
	}
	return c.bytes[pc], true
}

func (c *legacyCode) SubContainer(int) ([]byte, bool) { return nil, false }

func main() {
	var (
		codeHex  = flag.String("code", "", "hex-encoded bytecode to execute (0x prefix optional)")
		inputHex = flag.String("input", "", "hex-encoded call data (0x prefix optional)")
		gas      = flag.Uint64("gas", 1_000_000, "gas available to the frame")
		verbose  = flag.Bool("v", false, "log dispatched opcodes (except PUSH/DUP/SWAP) and halts at debug level")
		format   = flag.String("format", "text", "opcode trace format: text, json, or color")
	)
	flag.Parse()

	if *codeHex == "" {
		fmt.Fprintln(os.Stderr, "word256vm: -code is required")
		flag.Usage()
		os.Exit(2)
	}

	code, err := decodeHex(*codeHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "word256vm: invalid -code: %v\n", err)
		os.Exit(2)
	}
	input, err := decodeHex(*inputHex)
	if err != nil {
		fmt.Fprintf(os.Stderr, "word256vm: invalid -input: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	formatter, err := traceFormatter(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "word256vm: %v\n", err)
		os.Exit(2)
	}
	logger := vmlog.NewWithFormatter(level, formatter, os.Stderr).Module("vm")

	f := vm.NewFrame(*gas, &legacyCode{bytes: code}, input)
	f.Logger = logger

	for f.PC < len(code) {
		op, result := f.Step()
		if result.Halt != vm.HaltNone {
			fmt.Fprintf(os.Stderr, "word256vm: halted at pc=%d op=%s: %s\n", f.PC, op, result.Halt)
			os.Exit(1)
		}
	}

	fmt.Printf("gas remaining: %d\n", f.Gas)
	fmt.Println("stack (top first):")
	for i := 0; i < f.Stack.Len(); i++ {
		v, _ := f.Stack.Get(i)
		fmt.Printf("  [%d] %s\n", i, v)
	}
}

// traceFormatter maps the -format flag to the log.LogFormatter that
// renders every opcode trace and halt line.
func traceFormatter(format string) (vmlog.LogFormatter, error) {
	switch format {
	case "text":
		return &vmlog.TextFormatter{}, nil
	case "json":
		return &vmlog.JSONFormatter{}, nil
	case "color":
		return &vmlog.ColorFormatter{}, nil
	default:
		return nil, fmt.Errorf("invalid -format %q (want text, json, or color)", format)
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}
