package main

import "prsk-lab/cmd"

func main() {
	cmd.Execute()
}
