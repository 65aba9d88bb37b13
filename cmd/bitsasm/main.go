package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/bitsctl/internal/assemble"
	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bitsasm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	mode := flag.String("mode", "subcount", "operator framing: subcount or bitcount")
	flag.Parse()

	logging.ConfigureRuntime()

	lengthMode, err := config.ParseLengthMode(*mode)
	if err != nil {
		return err
	}

	text := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}

	asm, err := assemble.New()
	if err != nil {
		return err
	}
	hexOut, err := asm.AssembleHex(text, lengthMode)
	if err != nil {
		return err
	}
	fmt.Println(hexOut)
	return nil
}
