// Command orbitctl inspects and maintains the registries and runs the
// visualization engine headless.
package main

func main() {
	Execute()
}
