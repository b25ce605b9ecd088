package main

import "lesson-reservations/cmd"

func main() {
	cmd.Execute()
}
