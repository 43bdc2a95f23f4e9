package main

import "github.com/KaramelBytes/peakpick-cli/cmd"

func main() {
	cmd.Execute()
}
