package main

import "figsync/cmd/figsync-cli/cmd"

func main() {
	cmd.Execute()
}
