package main

import "github.com/aure/fgtusage/cmd"

func main() {
	cmd.Execute()
}
