package main

import "github.com/jamesbehr/lnwrap/cmd"

func main() {
	cmd.Execute()
}
