package main

import (
	"os"

	"github.com/msto63/ockham/cmd/ockham/cmd"
	okerror "github.com/msto63/ockham/pkg/core/error"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(okerror.ExitCode(err))
	}
}
