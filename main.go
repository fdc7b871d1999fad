package main

import "github.com/notargets/anisometric/cmd"

func main() {
	cmd.Execute()
}
