package main

import "github.com/amterp/palettator/internal/cli"

func main() {
	cli.Run()
}
