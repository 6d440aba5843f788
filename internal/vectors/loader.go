package vectors

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var vectorFS embed.FS

var (
	embeddedOnce   sync.Once
	embeddedSuites []*Suite
	embeddedErr    error
)

// Load returns the embedded suites, parsing them on first use.
func Load() ([]*Suite, error) {
	embeddedOnce.Do(func() {
		embeddedSuites, embeddedErr = loadEmbedded()
	})
	return embeddedSuites, embeddedErr
}

func loadEmbedded() ([]*Suite, error) {
	entries, err := vectorFS.ReadDir("testdata")
	if err != nil {
		return nil, &LoadError{File: "testdata", Message: "failed to read directory", Cause: err}
	}

	var suites []*Suite
	for _, e := range entries {
		name := path.Join("testdata", e.Name())
		data, err := vectorFS.ReadFile(name)
		if err != nil {
			return nil, &LoadError{File: name, Message: "failed to read file", Cause: err}
		}
		s, err := parseFile(name, data)
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// Parse parses a suite from YAML bytes.
func Parse(data []byte) (*Suite, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}

	var s Suite
	if err := doc.Decode(&s); err != nil {
		return nil, &LoadError{Message: "failed to decode suite", Cause: err}
	}

	if s.Name == "" {
		return nil, &LoadError{Message: "suite name is required"}
	}
	if !s.Kind.Valid() {
		return nil, &LoadError{Message: fmt.Sprintf("unknown suite kind %q", s.Kind)}
	}
	if len(s.Vectors) == 0 {
		return nil, &LoadError{Message: "suite must have at least one vector"}
	}

	lines := vectorLines(&doc)
	for i := range s.Vectors {
		if i < len(lines) {
			s.Vectors[i].Line = lines[i]
		}
		if msg := validate(s.Kind, s.Vectors[i]); msg != "" {
			return nil, &LoadError{Line: s.Vectors[i].Line, Message: msg}
		}
	}
	return &s, nil
}

// vectorLines returns the line of each item of the top-level vectors list.
func vectorLines(doc *yaml.Node) []int {
	if len(doc.Content) == 0 {
		return nil
	}
	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "vectors" {
			continue
		}
		var lines []int
		for _, item := range root.Content[i+1].Content {
			lines = append(lines, item.Line)
		}
		return lines
	}
	return nil
}

// validate returns what the vector lacks for its kind, or "".
func validate(k Kind, v Vector) string {
	switch k {
	case KindParse:
		if v.Text == "" {
			return "parse vector needs text"
		}
	case KindFormat:
		if len(v.Start) == 0 || len(v.End) == 0 {
			return "format vector needs start and end"
		}
	case KindRound:
		if len(v.Start) == 0 || v.Unit == "" {
			return "round vector needs start and unit"
		}
	case KindWeek:
		if v.Year == 0 || v.YearDay == 0 {
			return "week vector needs year and yearday"
		}
	}
	if v.Expect.empty() {
		return "vector has no expectation"
	}
	return ""
}

func (e Expect) empty() bool {
	return len(e.Start) == 0 && len(e.End) == 0 && e.Unit == "" &&
		e.Duration == 0 && e.Abbr == "" && e.ISO == "" &&
		e.ISOYear == 0 && e.Week == 0 && e.Error == ""
}

func parseFile(name string, data []byte) (*Suite, error) {
	s, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = name
			return nil, le
		}
		return nil, &LoadError{File: name, Message: err.Error()}
	}
	s.File = name
	return s, nil
}

// LoadFile loads a suite from a file.
func LoadFile(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	return parseFile(path, data)
}

// LoadDir loads all suites from a directory, sorted by file name.
// Only files with .yaml or .yml extensions are loaded.
func LoadDir(dir string) ([]*Suite, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &LoadError{File: dir, Message: "failed to read directory", Cause: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	suites := make([]*Suite, 0, len(names))
	for _, name := range names {
		s, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		suites = append(suites, s)
	}
	return suites, nil
}

// OfKind returns the suites of kind k.
func OfKind(suites []*Suite, k Kind) []*Suite {
	var out []*Suite
	for _, s := range suites {
		if s.Kind == k {
			out = append(out, s)
		}
	}
	return out
}
