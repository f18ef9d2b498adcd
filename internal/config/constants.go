package config

// Version is the current tmc version.
var Version = "0.1.0"

const SourceFileExt = ".tmc"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".tmc"}

// TrimSourceExt removes the source extension from a filename, if present.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with a recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode indicates if the program is running under `go test`.
var IsTestMode = false

// Built-in identifier names with fixed types (spec.md §3 "Built-ins").
const (
	BuiltinSet    = "set"
	BuiltinGet    = "get"
	BuiltinNext   = "next"
	BuiltinPrev   = "prev"
	BuiltinY      = "Y"
	BuiltinAccept = "accept"
	BuiltinReject = "reject"
	BuiltinAbort  = "abort"
)

// Builtins is the set of every fixed-type built-in identifier.
var Builtins = map[string]bool{
	BuiltinSet: true, BuiltinGet: true, BuiltinNext: true, BuiltinPrev: true,
	BuiltinY: true, BuiltinAccept: true, BuiltinReject: true, BuiltinAbort: true,
}

// ReservedExportChars are characters a symbol literal may never contain,
// because the awmorp export format uses them as field/record separators.
const ReservedExportChars = "_;*"
