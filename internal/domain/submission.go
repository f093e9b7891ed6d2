package domain

// Submission represents one student project directory to be graded.
type Submission struct {
	Name string // directory base name, used as the report key
	Root string // absolute path to the project's top-level directory
}

// SourceSet is the product of scanning one submission: the qualifying source
// files in deterministic walk order, their concatenated text, and whether any
// of them belongs to the compiled language.
type SourceSet struct {
	Root          string
	Files         []string // paths relative to Root, lexical walk order
	CombinedText  string   // per-file "File: <relpath>" headers followed by content
	HasCompilable bool
}
