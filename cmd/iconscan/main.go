package main

import "github.com/loanflow/iconscan/internal/cli"

func main() {
	cli.Execute()
}
