//go:build ignore
// +build ignore

// Generates the command reference: go run ./cmd/inkleaf/doc_gen.go -out docs
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	inkleaf "github.com/mithrel/inkleaf/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	out := flag.String("out", "docs", "output directory for the markdown and man pages")
	flag.Parse()

	root := inkleaf.NewRootCmd()
	// Stable output so regenerated docs diff cleanly.
	root.DisableAutoGenTag = true

	mdDir := filepath.Join(*out, "commands")
	manDir := filepath.Join(*out, "man1")
	for _, dir := range []string{mdDir, manDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create %s: %v", dir, err)
		}
	}

	if err := doc.GenMarkdownTree(root, mdDir); err != nil {
		log.Fatalf("markdown docs: %v", err)
	}

	header := &doc.GenManHeader{
		Title:   "INKLEAF",
		Section: "1",
		Source:  "inkleaf",
		Manual:  "Inkleaf Manual",
	}
	if err := doc.GenManTree(root, header, manDir); err != nil {
		log.Fatalf("man pages: %v", err)
	}
	log.Printf("wrote %s and %s", mdDir, manDir)
}
