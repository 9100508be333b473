package main

import (
	"github.com/bookworm-labs/book-review-hub/cli"
)

func main() {
	cli.Execute()
}
