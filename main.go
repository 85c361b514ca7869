package main

import "github.com/Tiliavir/work-hours-logger/cmd"

func main() {
	cmd.Execute()
}
