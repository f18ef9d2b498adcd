// Package stdlib embeds the small set of tmc source modules shipped
// with the compiler itself, grounded on the teacher's pkg/embed
// approach to bundling runtime assets via go:embed.
package stdlib

import "embed"

//go:embed std/*.tmc
var fs embed.FS

// Modules maps an import name ("bool", "identity") to its tmc source.
var Modules = mustLoad()

func mustLoad() map[string]string {
	entries, err := fs.ReadDir("std")
	if err != nil {
		panic(err)
	}
	mods := make(map[string]string, len(entries))
	for _, entry := range entries {
		data, err := fs.ReadFile("std/" + entry.Name())
		if err != nil {
			panic(err)
		}
		name := entry.Name()
		name = name[:len(name)-len(".tmc")]
		mods[name] = string(data)
	}
	return mods
}

// Lookup returns the source of an embedded stdlib module by import
// name, and whether it exists.
func Lookup(name string) (string, bool) {
	src, ok := Modules[name]
	return src, ok
}
