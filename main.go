package main

import "github.com/alexiusacademia/gosfd/cmd"

func main() {
	cmd.Execute()
}
