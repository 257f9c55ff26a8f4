package modules

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultVersion is reported for modules whose module.info has no Version line
const DefaultVersion = "0.0.0"

var (
	keyValueRegex   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):(?:\s+(.*))?$`)
	dependencyRegex = regexp.MustCompile(`^(\w+)\s+\(([^)]+)\)$`)
	listSepRegex    = regexp.MustCompile(`,\s+`)
)

// Metadata is the parsed content of a module.info file
type Metadata struct {
	Name             string                `json:"name"`
	Version          string                `json:"version"`
	ShortDescription string                `json:"short_description"`
	Description      string                `json:"description"`
	Depends          map[string]Dependency `json:"depends"`
	Extra            map[string]string     `json:"extra,omitempty"`
}

// Dependency is a version requirement on another module. Any is set when
// the dependency accepts every version; Constraint then stays empty.
type Dependency struct {
	Any        bool
	Constraint string
}

// AnyVersion is the dependency on any version of a module
var AnyVersion = Dependency{Any: true}

// String returns the constraint text, or "*" for any version
func (d Dependency) String() string {
	if d.Any {
		return "*"
	}
	return d.Constraint
}

// MarshalJSON encodes any-version dependencies as true and the rest as
// their constraint string.
func (d Dependency) MarshalJSON() ([]byte, error) {
	if d.Any {
		return []byte("true"), nil
	}
	return json.Marshal(d.Constraint)
}

// UnmarshalJSON accepts true or a constraint string
func (d *Dependency) UnmarshalJSON(data []byte) error {
	var flag bool
	if err := json.Unmarshal(data, &flag); err == nil {
		if !flag {
			return fmt.Errorf("dependency must be true or a constraint string")
		}
		*d = AnyVersion
		return nil
	}

	var constraint string
	if err := json.Unmarshal(data, &constraint); err != nil {
		return fmt.Errorf("failed to parse dependency: %w", err)
	}
	*d = Dependency{Constraint: constraint}
	return nil
}

// NewMetadata returns the record used when a module has no metadata file
func NewMetadata(name string) *Metadata {
	return &Metadata{
		Name:    name,
		Version: DefaultVersion,
		Depends: make(map[string]Dependency),
		Extra:   make(map[string]string),
	}
}

// LoadMetadata reads a module.info file. A missing file is not an error and
// yields the default record.
func LoadMetadata(name, path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewMetadata(name), nil
		}
		return nil, fmt.Errorf("failed to open metadata file: %w", err)
	}
	defer f.Close()

	return ParseMetadata(name, f)
}

// ParseMetadata parses the line-oriented "Key: value" format of module.info.
//
// Lines starting with a space or tab continue the description when it is the
// most recent key; a blank line inside the description keeps a paragraph
// break. Lines which are neither continuations nor key/value pairs are
// ignored, as are continuation lines appearing before any description.
func ParseMetadata(name string, r io.Reader) (*Metadata, error) {
	p := &metadataParser{m: NewMetadata(name)}

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			p.parseLine(strings.TrimRight(line, " \t\r\n"))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read metadata: %w", err)
		}
	}

	p.m.Description = strings.TrimRight(p.m.Description, "\n")
	return p.m, nil
}

type metadataParser struct {
	m   *Metadata
	key string
}

func (p *metadataParser) parseLine(line string) {
	m := p.m

	if p.key == "description" {
		if line == "" {
			if m.Description != "" {
				m.Description += "\n"
			}
			return
		}
		if isContinuation(line) {
			m.appendDescription(strings.TrimLeft(line, " \t"))
			return
		}
	}

	if line == "" || isContinuation(line) {
		return
	}

	matches := keyValueRegex.FindStringSubmatch(line)
	if matches == nil {
		return
	}

	p.key = lowerFirst(matches[1])
	value := matches[2]

	switch p.key {
	case "name":
		if value != "" {
			m.Name = value
		}
	case "version":
		if value != "" {
			m.Version = value
		}
	case "depends":
		parseDepends(value, m.Depends)
	case "description":
		m.ShortDescription = value
		m.Description = value
	default:
		m.Extra[p.key] = value
	}
}

func (m *Metadata) appendDescription(text string) {
	if m.Description == "" {
		m.Description = text
		return
	}
	m.Description += "\n" + text
}

// parseDepends accepts a single token, which depends on any version of the
// module it names, or a list of "name (constraint)" entries separated by a
// comma and whitespace. List entries of any other form are dropped.
func parseDepends(value string, deps map[string]Dependency) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	if !strings.ContainsAny(value, " \t") {
		deps[value] = AnyVersion
		return
	}

	for _, part := range listSepRegex.Split(value, -1) {
		if matches := dependencyRegex.FindStringSubmatch(strings.TrimSpace(part)); matches != nil {
			deps[matches[1]] = Dependency{Constraint: strings.TrimSpace(matches[2])}
		}
	}
}

func isContinuation(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
