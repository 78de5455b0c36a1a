package main

import (
	"os"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
