package main

import "codeplan/cmd/codeplan-cli/cmd"

func main() {
	cmd.Execute()
}
