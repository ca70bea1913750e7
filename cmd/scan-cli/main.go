package main

import "recircle-core/cmd/scan-cli/cmd"

func main() {
	cmd.Execute()
}
