package modules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata_Depends(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]Dependency
	}{
		{
			name:     "no depends line",
			input:    "Name: monitoring\nVersion: 1.0\n",
			expected: map[string]Dependency{},
		},
		{
			name:     "single bare name",
			input:    "Depends: foo\n",
			expected: map[string]Dependency{"foo": AnyVersion},
		},
		{
			name:  "constraints",
			input: "Depends: foo (>=1.0), bar (1.2)\n",
			expected: map[string]Dependency{
				"foo": {Constraint: ">=1.0"},
				"bar": {Constraint: "1.2"},
			},
		},
		{
			name:     "single token with punctuation",
			input:    "Depends: foo-bar\n",
			expected: map[string]Dependency{"foo-bar": AnyVersion},
		},
		{
			name:     "single dotted token",
			input:    "Depends: foo.bar\n",
			expected: map[string]Dependency{"foo.bar": AnyVersion},
		},
		{
			name:     "comma without space is one token",
			input:    "Depends: foo,bar\n",
			expected: map[string]Dependency{"foo,bar": AnyVersion},
		},
		{
			name:  "list with malformed entries",
			input: "Depends: foo (>=1.0), baz, not-a-name (1.0), (1.0), qux (), quux(2.0)\n",
			expected: map[string]Dependency{
				"foo": {Constraint: ">=1.0"},
			},
		},
		{
			name:     "list entries need a space after the comma",
			input:    "Depends: foo (>=1.0),bar (1.2)\n",
			expected: map[string]Dependency{},
		},
		{
			name:     "empty value",
			input:    "Depends:\n",
			expected: map[string]Dependency{},
		},
		{
			name:     "lower case key",
			input:    "depends: ido (2.0)\n",
			expected: map[string]Dependency{"ido": {Constraint: "2.0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMetadata("monitoring", strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Depends)
		})
	}
}

func TestParseMetadata_Description(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		short       string
		description string
	}{
		{
			name:        "single line",
			input:       "Description: Monitoring frontend\n",
			short:       "Monitoring frontend",
			description: "Monitoring frontend",
		},
		{
			name:        "continuation lines",
			input:       "Description: Monitoring frontend\n  Shows hosts and services.\n\tAnd their history.\nVersion: 1.0\n",
			short:       "Monitoring frontend",
			description: "Monitoring frontend\nShows hosts and services.\nAnd their history.",
		},
		{
			name:        "paragraph break",
			input:       "Description: Short\n  first\n\n  second\n",
			short:       "Short",
			description: "Short\nfirst\n\nsecond",
		},
		{
			name:        "trailing blank lines",
			input:       "Description: Short\n  more\n\n\n",
			short:       "Short",
			description: "Short\nmore",
		},
		{
			name:        "empty first line",
			input:       "Description:\n  Only continuation\n",
			short:       "",
			description: "Only continuation",
		},
		{
			name:        "continuation before any description is ignored",
			input:       "  stray line\nName: monitoring\n  another stray\nDescription: Short\n",
			short:       "Short",
			description: "Short",
		},
		{
			name:        "key after description ends it",
			input:       "Description: Short\nVersion: 2.0\n  not description\n",
			short:       "Short",
			description: "Short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMetadata("monitoring", strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.short, m.ShortDescription)
			assert.Equal(t, tt.description, m.Description)
		})
	}
}

func TestParseMetadata_Fields(t *testing.T) {
	input := strings.Join([]string{
		"Name: Monitoring",
		"Version: 2.1.0\r",
		"Homepage: https://example.com/monitoring",
		"this line is not a key value pair",
		"Version:2.2",
		"",
	}, "\n")

	m, err := ParseMetadata("monitoring", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "Monitoring", m.Name)
	assert.Equal(t, "2.1.0", m.Version)
	assert.Equal(t, map[string]string{"homepage": "https://example.com/monitoring"}, m.Extra)
}

func TestParseMetadata_Defaults(t *testing.T) {
	m, err := ParseMetadata("monitoring", strings.NewReader("Name:\nVersion:\n"))
	require.NoError(t, err)

	assert.Equal(t, NewMetadata("monitoring"), m)
	assert.Equal(t, DefaultVersion, m.Version)
}

func TestParseMetadata_LongLine(t *testing.T) {
	long := strings.Repeat("x", 256*1024)
	input := "Name: monitoring\nDescription: " + long + "\nVersion: 2.0.0\nDepends: ido (>=1.0)"

	m, err := ParseMetadata("monitoring", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, long, m.ShortDescription)
	assert.Equal(t, "2.0.0", m.Version)
	assert.Equal(t, map[string]Dependency{"ido": {Constraint: ">=1.0"}}, m.Depends)
}

func TestParseMetadata_Deterministic(t *testing.T) {
	input := "Name: monitoring\nVersion: 1.0\nDepends: a (1), b\nDescription: x\n  y\nFoo: bar\n"

	first, err := ParseMetadata("monitoring", strings.NewReader(input))
	require.NoError(t, err)
	second, err := ParseMetadata("monitoring", strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoadMetadata_MissingFile(t *testing.T) {
	m, err := LoadMetadata("monitoring", filepath.Join(t.TempDir(), "module.info"))
	require.NoError(t, err)
	assert.Equal(t, NewMetadata("monitoring"), m)
}

func TestDescriptorMetadataIsReadOnce(t *testing.T) {
	d, _ := newModule(t, nil, "monitoring", map[string]string{
		"module.info": "Version: 1.0\nDescription: First\n",
	})

	assert.Equal(t, "1.0", d.Version())
	first := d.Metadata()

	require.NoError(t, os.WriteFile(d.MetadataFile(), []byte("Version: 2.0\nDescription: Second\n"), 0644))

	assert.Same(t, first, d.Metadata())
	assert.Equal(t, "1.0", d.Version())
	assert.Equal(t, "First", d.ShortDescription())
	assert.Equal(t, "First", d.Description())
}

func TestDescriptorMetadataWithoutFile(t *testing.T) {
	d, hook := newModule(t, nil, "monitoring", nil)

	assert.Equal(t, DefaultVersion, d.Version())
	assert.Equal(t, "monitoring", d.Metadata().Name)
	assert.Empty(t, d.Dependencies())
	assert.Empty(t, warnings(hook))
}

func TestDescriptorMetadataUnreadable(t *testing.T) {
	// a directory opens fine but cannot be read
	d, hook := newModule(t, nil, "monitoring", map[string]string{
		"module.info/": "",
	})

	assert.Equal(t, DefaultVersion, d.Version())
	assert.Equal(t, DefaultVersion, d.Version())
	assert.Len(t, warnings(hook), 1)
}

func TestDependencyJSON(t *testing.T) {
	deps := map[string]Dependency{
		"foo": AnyVersion,
		"bar": {Constraint: ">=1.0"},
	}

	data, err := json.Marshal(deps)
	require.NoError(t, err)
	assert.JSONEq(t, `{"foo": true, "bar": ">=1.0"}`, string(data))

	var decoded map[string]Dependency
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, deps, decoded)

	var d Dependency
	assert.Error(t, json.Unmarshal([]byte("false"), &d))
	assert.Error(t, json.Unmarshal([]byte("12"), &d))
	assert.Equal(t, "*", AnyVersion.String())
	assert.Equal(t, ">=1.0", deps["bar"].String())
}
