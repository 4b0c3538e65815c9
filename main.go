package main

import "GenrePulse/cmd"

func main() {
	cmd.Execute()
}
