package main

import "revhistory/cmd/revhistory/cmd"

func main() {
	cmd.Execute()
}
