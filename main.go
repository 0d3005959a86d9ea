package main

import (
	"fmt"
	"os"

	"github.com/AnyUserName/onewebp-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "onewebp:", err)
		os.Exit(1)
	}
}
