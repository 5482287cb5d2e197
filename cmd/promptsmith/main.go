// Promptsmith - render and optimize prompts against a token budget
package main

import (
	"os"

	"github.com/HartBrook/promptsmith/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
