// Command medimorph is the operational CLI for the MEDIMORPH data
// layer: connection diagnostics, account seeding and collection
// statistics.
package main

func main() {
	Execute()
}
