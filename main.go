package main

import "schema-provisioner/cmd"

func main() {
	cmd.Execute()
}
