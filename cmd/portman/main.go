package main

import "github.com/ngmaloney/portman-terminal/internal/cli"

func main() {
	cli.Execute()
}
