// Command byamlctl inspects and converts BYAML files.
package main

func main() {
	execute()
}
