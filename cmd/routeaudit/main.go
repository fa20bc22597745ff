// Command routeaudit reconciles a supervisor route map against the roster
// of employees missing records, from the command line or over HTTP.
package main

func main() {
	Execute()
}
