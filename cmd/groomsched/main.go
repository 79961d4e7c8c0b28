package main

import "github.com/example/groom-scheduler/cmd"

func main() {
	cmd.Execute()
}
