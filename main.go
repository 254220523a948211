package main

import "github.com/kisixing/srcdeps-core/cmd"

func main() {
	cmd.Execute()
}
