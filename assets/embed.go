package assets

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed catalog.json sql/*.sql
var FS embed.FS

// CatalogJSON returns the built-in catalog document.
func CatalogJSON() ([]byte, error) {
	return FS.ReadFile("catalog.json")
}

// Migrations returns the embedded migration names in apply order.
func Migrations() ([]string, error) {
	names, err := fs.Glob(FS, "sql/*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Migration returns the SQL text of one embedded migration.
func Migration(name string) (string, error) {
	b, err := FS.ReadFile(name)
	return string(b), err
}
