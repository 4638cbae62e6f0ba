package main

import "github.com/Kariqs/kartdaily-api/commands"

func main() {
	commands.Execute()
}
