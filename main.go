package main

import "untis-notifier/cmd"

func main() {
	cmd.Execute()
}
