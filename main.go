package main

import "github.com/frahmantamala/activity-tracker/cmd"

func main() {
	cmd.Execute()
}
