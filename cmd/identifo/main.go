package main

import "github.com/madappgang/identifo-go/cmd/identifo/cmd"

func main() {
	cmd.Execute()
}
