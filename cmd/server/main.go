package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/eudistrict/chancery/internal/cli"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
