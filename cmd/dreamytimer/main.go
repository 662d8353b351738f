package main

import "dreamytimer/cmd/dreamytimer/commands"

func main() {
	commands.Execute()
}
