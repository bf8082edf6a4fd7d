package main

import (
	"os"

	"github.com/JonMunkholm/csvschema/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
