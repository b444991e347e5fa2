package main

import "github.com/josephlewis42/mishell/cmd"

func main() {
	cmd.Execute()
}
