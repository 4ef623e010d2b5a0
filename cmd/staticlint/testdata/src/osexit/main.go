package main

import "os"

func helper() {
	os.Exit(2)
}

func main() {
	defer helper()
	if len(os.Args) > 1 {
		os.Exit(1) // want "os.Exit call is forbidden in main function"
	}
}
