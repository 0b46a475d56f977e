package main

import "github.com/quocvuong92/fs-cli/cmd"

func main() {
	cmd.Execute()
}
