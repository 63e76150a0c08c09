package main

import "github.com/sadopc/daytally/internal/cli"

func main() {
	cli.Execute()
}
