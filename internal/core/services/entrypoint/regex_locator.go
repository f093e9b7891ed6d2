package entrypoint

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/scan"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

var (
	// mainRe matches the canonical entry signature: String[] or String...
	// parameter, any variable name, flexible whitespace, case-insensitive.
	mainRe = regexp.MustCompile(`(?i)public\s+static\s+void\s+main\s*\(\s*String(?:\[\]|\.\.\.)\s+\w+\s*\)`)

	// pkgRe captures the optional package declaration at the top of the file.
	pkgRe = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;\s*$`)

	// classRe captures class declarations; spans between consecutive matches
	// decide which class encloses the main() hit.
	classRe = regexp.MustCompile(`\b(public\s+)?class\s+([A-Za-z_]\w*)\b`)
)

// classDecl is one class declaration found in a file, with the character
// offset where its declaration starts.
type classDecl struct {
	name   string
	public bool
	start  int
}

// RegexLocator resolves entry points with text-pattern scanning.
type RegexLocator struct {
	logger primary.Logger
}

// NewRegexLocator creates the regex-based entry point locator.
func NewRegexLocator(logger primary.Logger) *RegexLocator {
	return &RegexLocator{logger: logger}
}

// FindEntryPoints scans every compilable source file under root, in lexical
// walk order, and reports the qualified name of the class enclosing each
// file's first main() signature.
func (l *RegexLocator) FindEntryPoints(root string) ([]domain.EntryPoint, error) {
	var candidates []domain.EntryPoint

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), scan.CompileExtension) {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			l.logger.Warn("Skipping unreadable source during entry point scan", "file", path, "error", readErr)
			return nil
		}

		if name, ok := l.resolveFile(string(content), path); ok {
			candidates = append(candidates, domain.EntryPoint{
				QualifiedName: name,
				SourceFile:    path,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for entry points: %w", root, err)
	}
	return candidates, nil
}

// resolveFile finds the first main() signature in one file's text and composes
// the qualified name of its enclosing class.
func (l *RegexLocator) resolveFile(text, path string) (string, bool) {
	mainLoc := mainRe.FindStringIndex(text)
	if mainLoc == nil {
		return "", false
	}

	pkg := ""
	if m := pkgRe.FindStringSubmatch(text); m != nil {
		pkg = m[1]
	}

	classes := declaredClasses(text)
	name, ok := enclosingClass(classes, mainLoc[0], len(text))
	if !ok {
		// malformed file or entry point outside any class span: fall back
		// through the ordered strategies
		name = resolveFallback(classes, path)
	}

	if pkg != "" {
		return pkg + "." + name, true
	}
	return name, true
}

// declaredClasses lists the class declarations of a file in textual order.
func declaredClasses(text string) []classDecl {
	matches := classRe.FindAllStringSubmatchIndex(text, -1)
	decls := make([]classDecl, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, classDecl{
			name:   text[m[4]:m[5]],
			public: m[2] != -1,
			start:  m[0],
		})
	}
	return decls
}

// enclosingClass picks the declared class whose textual span (declaration
// start to the next declaration's start, or end of file) contains offset.
func enclosingClass(classes []classDecl, offset, textLen int) (string, bool) {
	for i, c := range classes {
		end := textLen
		if i+1 < len(classes) {
			end = classes[i+1].start
		}
		if c.start <= offset && offset < end {
			return c.name, true
		}
	}
	return "", false
}

// fallbackStrategy names one way to pick a class when the enclosing span
// cannot be determined. Strategies are evaluated in order; the first hit wins.
type fallbackStrategy func(classes []classDecl, path string) (string, bool)

var fallbackChain = []fallbackStrategy{
	firstPublicClass,
	fileStem,
}

func resolveFallback(classes []classDecl, path string) string {
	for _, strategy := range fallbackChain {
		if name, ok := strategy(classes, path); ok {
			return name
		}
	}
	// fileStem always hits, so this is unreachable
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func firstPublicClass(classes []classDecl, _ string) (string, bool) {
	for _, c := range classes {
		if c.public {
			return c.name, true
		}
	}
	return "", false
}

func fileStem(_ []classDecl, path string) (string, bool) {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)), true
}
