package main

import "workbook-merger/cmd"

func main() {
	cmd.Execute()
}
