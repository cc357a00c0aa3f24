// Command textscan runs modifier extraction on already-recognized tooltip
// text. Useful for debugging catalog patterns without an OCR round trip.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"item-scanner/internal/extract"
	"item-scanner/internal/version"
)

func main() {
	textPath := flag.String("file", "", "Path to a text file of tooltip lines (default: stdin)")
	itemType := flag.String("context", "", "Optional item category hint")
	ocrConf := flag.Float64("conf", 0.9, "Simulated OCR confidence in [0,1]")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("textscan %s\n", version.String())
		return
	}

	var lines []string
	if *textPath != "" {
		data, err := os.ReadFile(*textPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read text file: %v\n", err)
			os.Exit(1)
		}
		lines = strings.Split(string(data), "\n")
	} else {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
	}

	engine, err := extract.New(nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build engine: %v\n", err)
		os.Exit(1)
	}

	var itemCtx *extract.Context
	if *itemType != "" {
		itemCtx = &extract.Context{ItemType: *itemType}
	}

	matches := engine.ExtractFromText(strings.Join(lines, "\n"), *ocrConf, itemCtx)
	if len(matches) == 0 {
		fmt.Println("No modifiers recognized")
		return
	}

	for _, m := range matches {
		tier := m.Tier
		if tier == "" {
			tier = "-"
		}
		fmt.Printf("%-18s tier=%-4s conf=%.3f method=%-10s sim=%.2f values=%v  %q\n",
			m.Name, tier, m.Confidence, m.Method, m.Similarity, m.Values, m.RawText)
	}
}
