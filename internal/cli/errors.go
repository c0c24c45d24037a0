package cli

import "github.com/brettsor/jsonxsd"

func asTaxonomyError(err error) (*jsonxsd.Error, bool) {
	e, ok := err.(*jsonxsd.Error)
	return e, ok
}
