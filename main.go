package main

import "github.com/heram/storefront/cmd"

func main() {
	cmd.Start()
}
