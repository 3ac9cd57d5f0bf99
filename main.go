package main

import "github.com/darmiel/advisor/cmd"

func main() {
	cmd.Execute()
}
