package main

import "vaultis/cmd/vaultctl/cmd"

func main() {
	cmd.Execute()
}
