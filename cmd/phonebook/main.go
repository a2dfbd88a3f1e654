// Command phonebook manages a personal contact directory.
package main

import "github.com/mesh-intelligence/phonebook/internal/cli"

func main() {
	cli.Execute()
}
