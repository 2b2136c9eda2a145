// Package main implements the spacex CLI.
package main

func main() {
	Execute()
}
