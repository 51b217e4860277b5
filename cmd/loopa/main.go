package main

import (
	"loopa-cli/cmd/loopa/cmd"
)

func main() {
	cmd.Execute()
}
