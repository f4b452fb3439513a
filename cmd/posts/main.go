package main

import (
	"fmt"
	"os"

	_ "github.com/ncobase/posts/data/all"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
