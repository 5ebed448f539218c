// Command formkit-demo drives a signup form from the command line.
package main

func main() {
	Execute()
}
