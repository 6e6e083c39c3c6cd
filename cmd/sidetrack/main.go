package main

import "github.com/rpggio/sidetrack/internal/cli"

func main() {
	cli.Execute()
}
