package main

import "github.com/gifnar/volunteerlog/cmd"

func main() {
	cmd.Execute()
}
