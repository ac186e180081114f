package main

import "github.com/mcpalette/mcpalette/cmd"

func main() {
	cmd.Execute()
}
