package main

import "familykarting/admin/cmd"

func main() {
	cmd.Execute()
}
