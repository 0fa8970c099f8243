package main

import "github.com/nfrund/userdesk/cmd/userdesk-cli/cmd"

func main() {
	cmd.Execute()
}
