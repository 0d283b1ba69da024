// pkg/checksum/checksum.go
package checksum

import (
	"fmt"
	"io"
	"os"

	"zombiezen.com/go/nix"
)

// File computes the SHA-256 digest of the file at path. The returned hash
// renders in the formats package consumers expect from fetchable artifacts
// (SRI and nix base32).
func File(path string) (nix.Hash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nix.Hash{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := nix.NewHasher(nix.SHA256)
	if _, err := io.Copy(h, f); err != nil {
		return nix.Hash{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return h.SumHash(), nil
}
