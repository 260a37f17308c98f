package main

import "github.com/OpenTraceLab/kicad2easyeda/cmd/kicad2easyeda/cmd"

func main() {
	cmd.Execute()
}
