package main

import "github.com/aaearon/check-secunet/cmd"

func main() {
	cmd.Execute()
}
