package domain

// EntryPoint is one candidate program entry found by static scanning. It is
// resolved from raw source text, so it exists whether or not the project
// compiles.
type EntryPoint struct {
	QualifiedName string // package-qualified class name, e.g. "pkg.sub.Runner"
	SourceFile    string // file the main() signature was found in
}
