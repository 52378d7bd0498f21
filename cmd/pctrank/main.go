package main

import (
	"os"

	"github.com/Fepozopo/pctrank/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
