package main

import "github.com/twiced-technology-gmbh/todocurses/cmd"

func main() {
	cmd.Execute()
}
