// Command ynab-export flattens a YNAB budget into tab-separated tables.
package main

import "github.com/mesh-intelligence/ynab-export/internal/cli"

func main() {
	cli.Execute()
}
