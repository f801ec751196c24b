package main

import (
	"os"

	"github.com/fhcalc/financial-health-calculator/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
