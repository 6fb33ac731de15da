// fg runs an FL source file.
package main

import (
	"fmt"
	"os"

	"github.com/flscript/fl"
)

const usage = "usage: fg <path-to-.fg>"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	_, err := fl.RunFile(os.Args[1], &fl.Config{Stdout: os.Stdout, Stdin: os.Stdin})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
