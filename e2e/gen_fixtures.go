//go:build ignore

// gen_fixtures writes sample inputs for a manual smoke run of the converter.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/onewebp-cli/internal/testutil"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	files := map[string][]byte{
		"banner.jpg": testutil.JPEG(testutil.Gradient(1600, 900)),
		"card.png":   testutil.PNG(testutil.SolidWithBorder(200, 150, 60)),
		"logo.png":   testutil.PNG(testutil.AlphaGradient(100, 100)),
		"photo.webp": testutil.WebP(testutil.Gradient(400, 225)),
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(files), dir)
}
