package main

import "github.com/sprintdeck/sprintdeck/cmd"

func main() {
	cmd.Execute()
}
