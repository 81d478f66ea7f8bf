package main

import "github.com/panyam/vecalc/cmd/vecalc/commands"

func main() {
	commands.Execute()
}
