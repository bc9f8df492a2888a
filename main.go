package main

import (
	"os"

	"github.com/llehouerou/empress/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
