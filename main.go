package main

import "github.com/robmorgan/metronome/cmd"

func main() {
	cmd.Execute()
}
