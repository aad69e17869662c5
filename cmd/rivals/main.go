package main

import (
	"github.com/starkrivals/starkrivals/internal/cli"
)

func main() {
	cli.Execute()
}
