package main

import "github.com/timvw/helix-panes/cmd"

func main() {
	cmd.Execute()
}
