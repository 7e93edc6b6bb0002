package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dynmacros/cmd/dynmacros"
	"github.com/arthur-debert/dynmacros/pkg/style"
	"github.com/arthur-debert/dynmacros/pkg/types"
)

func main() {
	rootCmd := dynmacros.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := style.New(os.Stderr, style.NoColor(os.Stderr, types.EnvFromOS()))
		fmt.Fprintln(os.Stderr, r.Error(err))
		os.Exit(1)
	}
}
