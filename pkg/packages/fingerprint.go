package packages

import (
	"bytes"
	"io/fs"
	"path"
	"slices"

	"github.com/matzehuels/typespub/pkg/cache"
	"github.com/matzehuels/typespub/pkg/errors"
)

// Fingerprint computes the content hash of the package files below root.
// Files are hashed in sorted order together with their names, so renaming a
// file changes the fingerprint.
func Fingerprint(root fs.FS, d *TypingsData) (string, error) {
	files := slices.Clone(d.Files)
	slices.Sort(files)

	var buf bytes.Buffer
	for _, name := range files {
		data, err := fs.ReadFile(root, path.Join(d.Dir(), name))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPackage, err, "fingerprint %s", d.Name)
		}
		buf.WriteString(name)
		buf.WriteByte(0)
		buf.Write(data)
		buf.WriteByte(0)
	}
	return cache.Hash(buf.Bytes()), nil
}
