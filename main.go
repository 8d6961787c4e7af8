package main

import "github.com/jfmyers9/bandsintown/cmd"

func main() {
	cmd.Execute()
}
