// Command starwars-seed prepares a database for the Star Wars favorites API.
//
//	starwars-seed seed --config=config/local.yaml
//	starwars-seed version
package main

import "github.com/aanand-mishra/starwars-api/internal/cli"

func main() {
	cli.Execute()
}
