package main

import "book-review-backend/internal/cli"

func main() {
	cli.Execute()
}
