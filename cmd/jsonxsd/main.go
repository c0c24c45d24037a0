// Command jsonxsd renders JSON samples into XSD/XML pairs.
package main

import "github.com/brettsor/jsonxsd/internal/cli"

func main() {
	cli.Execute()
}
