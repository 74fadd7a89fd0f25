package main

import "github.com/zinc-sig/uploadgen/cmd"

func main() {
	cmd.Execute()
}
