// Where: internal/architecture/scan_test.go
// What: Shared source walker for architecture guard tests.
package architecture

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const internalImportPrefix = "github.com/dbt-marketing-analytics/dbtops/internal/"

type sourceFile struct {
	rel  string // path relative to internal/, slash separated
	file *ast.File
}

func (s sourceFile) pkg() string {
	return pathDir(s.rel)
}

func (s sourceFile) imports() []string {
	out := make([]string, 0, len(s.file.Imports))
	for _, imp := range s.file.Imports {
		out = append(out, strings.Trim(imp.Path.Value, "\""))
	}
	return out
}

// scanInternal parses every non-test Go file under internal/.
func scanInternal(t *testing.T, mode parser.Mode) (*token.FileSet, []sourceFile) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	root := filepath.Clean(filepath.Join(wd, ".."))
	fset := token.NewFileSet()
	var files []sourceFile

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".go") || strings.HasSuffix(d.Name(), "_test.go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		file, err := parser.ParseFile(fset, path, nil, mode)
		if err != nil {
			return err
		}
		files = append(files, sourceFile{rel: filepath.ToSlash(rel), file: file})
		return nil
	})
	if err != nil {
		t.Fatalf("scan internal packages: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no sources found under %s", root)
	}
	return fset, files
}

func pathDir(rel string) string {
	idx := strings.LastIndex(rel, "/")
	if idx < 0 {
		return ""
	}
	return rel[:idx]
}

func topLayer(pkg string) string {
	head, _, _ := strings.Cut(pkg, "/")
	return head
}

func internalPackage(importPath string) (string, bool) {
	if !strings.HasPrefix(importPath, internalImportPrefix) {
		return "", false
	}
	return strings.TrimPrefix(importPath, internalImportPrefix), true
}
