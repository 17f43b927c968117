package catalog

import "fmt"

// ArtRef maps an image seed to an opaque art reference. Rendering is an
// external concern; the core only threads the reference through to the
// presentation layer.
func ArtRef(seed int64) string {
	return fmt.Sprintf("art://%d", seed)
}
