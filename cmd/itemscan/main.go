// Command itemscan extracts modifiers from an item tooltip screenshot.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"

	"item-scanner/internal/extract"
	"item-scanner/internal/learning"
	"item-scanner/internal/ocr"
	"item-scanner/internal/preprocess"
	"item-scanner/internal/rarity"
	"item-scanner/internal/version"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

func main() {
	imagePath := flag.String("image", "", "Path to tooltip screenshot (PNG, JPEG, BMP, or TIFF)")
	itemType := flag.String("context", "", "Optional item category hint, e.g. weapon or ring")
	learnPath := flag.String("learning", "", "Optional path to a persistent learning store")
	showStats := flag.Bool("stats", false, "Print learning statistics after extraction")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("itemscan %s\n", version.String())
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: itemscan -image <path> [-context weapon] [-learning store.json] [-stats]")
		os.Exit(1)
	}

	f, err := os.Open(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	src, format, err := image.Decode(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := src.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())

	mat, err := preprocess.MatFromImage(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer mat.Close()

	backend, err := ocr.NewTesseract()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR backend: %v\n", err)
		os.Exit(1)
	}
	defer backend.Close()

	var opts []extract.Option
	var fileStore *learning.FileStore
	if *learnPath != "" {
		fileStore, err = learning.NewFileStore(*learnPath, learning.DefaultCap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open learning store: %v\n", err)
			os.Exit(1)
		}
		opts = append(opts, extract.WithStore(fileStore))
	}

	engine, err := extract.New(backend, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build engine: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Rarity: %s\n", rarity.Detect(mat))

	var itemCtx *extract.Context
	if *itemType != "" {
		itemCtx = &extract.Context{ItemType: *itemType}
		fmt.Printf("Context hint: %s\n", *itemType)
	}

	matches := engine.Extract(mat, itemCtx)
	if len(matches) == 0 {
		fmt.Println("\nNo modifiers detected")
	} else {
		fmt.Printf("\nDetected %d modifiers:\n", len(matches))
		fmt.Printf("%-18s %-6s %12s %-12s %-8s %s\n",
			"Modifier", "Tier", "Confidence", "Method", "Sim", "Raw text")
		for _, m := range matches {
			tier := m.Tier
			if tier == "" {
				tier = "-"
			}
			fmt.Printf("%-18s %-6s %12.2f %-12s %8.2f %s\n",
				m.Name, tier, m.Confidence, m.Method, m.Similarity, m.RawText)
		}
	}

	if *showStats {
		printStats(engine)
	}

	if fileStore != nil {
		if err := fileStore.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save learning store: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nLearning store saved to %s\n", fileStore.Path())
	}
}

func printStats(engine *extract.Engine) {
	stats := engine.LearningStats()
	if len(stats) == 0 {
		fmt.Println("\nNo learning history yet")
		return
	}

	fmt.Printf("\nLearning statistics:\n")
	fmt.Printf("%-18s %8s %14s %s\n", "Modifier", "Count", "Success rate", "Trend")
	for _, name := range sortedNames(stats) {
		s := stats[name]
		fmt.Printf("%-18s %8d %14.2f %s\n", name, s.Count, s.SuccessRate, s.Trend)
	}
}

// sortedNames orders the stats table rows for stable output.
func sortedNames(stats map[string]learning.TypeStats) []string {
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
