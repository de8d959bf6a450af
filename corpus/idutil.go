package corpus

import (
	"fmt"
	"strings"
)

// Volume identifiers have the form "<library>.<local id>", e.g.
// "uc1.b312920". The local part may contain characters that are unsafe in
// filesystem paths (':', '/', '.'); the cleaned form substitutes them the
// way the dataset's pairtree layout does.

var idCleaner = strings.NewReplacer(":", "+", "/", "=", ".", ",")

// CleanID returns the filesystem-safe form of a volume identifier: the
// library prefix untouched, unsafe characters in the local part replaced
// (':' -> '+', '/' -> '=', '.' -> ',').
func CleanID(id string) (string, error) {
	lib, local, err := splitID(id)
	if err != nil {
		return "", err
	}
	return lib + "." + idCleaner.Replace(local), nil
}

// PairtreePath returns the dataset-relative path of a volume's primary
// feature file in the rsync-style pairtree layout:
//
//	uc1.b312920 -> uc1/pairtree_root/b3/12/92/0/b312920/uc1.b312920.json.bz2
func PairtreePath(id string) (string, error) {
	lib, local, err := splitID(id)
	if err != nil {
		return "", err
	}
	clean := idCleaner.Replace(local)
	parts := []string{lib, "pairtree_root"}
	parts = append(parts, pairtreeSegments(clean)...)
	parts = append(parts, clean, lib+"."+clean+".json.bz2")
	return strings.Join(parts, "/"), nil
}

func splitID(id string) (lib, local string, err error) {
	lib, local, ok := strings.Cut(id, ".")
	if !ok || lib == "" || local == "" {
		return "", "", fmt.Errorf("malformed volume id %q: want <library>.<local id>", id)
	}
	return lib, local, nil
}

// pairtreeSegments splits a cleaned local id into the two-character
// directory segments of a pairtree, with a trailing one-character segment
// for odd lengths.
func pairtreeSegments(clean string) []string {
	var segs []string
	for len(clean) > 2 {
		segs = append(segs, clean[:2])
		clean = clean[2:]
	}
	return append(segs, clean)
}
