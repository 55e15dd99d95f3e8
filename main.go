package main

import "github.com/KaramelBytes/salesreport-cli/cmd"

func main() {
	cmd.Execute()
}
