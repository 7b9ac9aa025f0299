package main

import (
	"fmt"
	"os"

	"github.com/abhisek/flashdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flashdeck:", err)
		os.Exit(1)
	}
}
