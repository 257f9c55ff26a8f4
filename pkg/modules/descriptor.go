package modules

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
)

const (
	// RunScriptName is executed once while the module is registered
	RunScriptName = "run.lua"
	// ConfigScriptName declares permissions, restrictions and routes
	ConfigScriptName = "configuration.lua"
	// MetadataFileName holds the module's name, version, description and dependencies
	MetadataFileName = "module.info"
)

// Descriptor represents one discovered module: its name, its directory
// layout and the state accumulated while it is configured and registered.
//
// A Descriptor is not safe for concurrent use. Modules are registered one
// at a time during startup.
type Descriptor struct {
	name    string
	baseDir string
	host    Host
	log     *logrus.Entry

	cssDir        string
	jsDir         string
	libDir        string
	configDir     string
	localeDir     string
	formDir       string
	controllerDir string
	runScript     string
	configScript  string
	metadataFile  string

	metadata *Metadata

	permissions  map[string]Capability
	restrictions map[string]Capability

	configScriptLaunched bool

	routes []NamedRoute
	state  State
}

// NewDescriptor creates the descriptor of the module named name located in
// baseDir. All paths are derived here and never change afterwards. A nil
// host behaves like a host without any collaborators.
func NewDescriptor(host Host, name, baseDir string, log *logrus.Logger) *Descriptor {
	if host == nil {
		host = nullHost{}
	}
	if log == nil {
		log = logrus.New()
	}

	return &Descriptor{
		name:          name,
		baseDir:       baseDir,
		host:          host,
		log:           log.WithField("module", name),
		cssDir:        filepath.Join(baseDir, "public", "css"),
		jsDir:         filepath.Join(baseDir, "public", "js"),
		libDir:        filepath.Join(baseDir, "library"),
		configDir:     filepath.Join(baseDir, "config"),
		localeDir:     filepath.Join(baseDir, "application", "locale"),
		formDir:       filepath.Join(baseDir, "application", "forms"),
		controllerDir: filepath.Join(baseDir, "application", "controllers"),
		runScript:     filepath.Join(baseDir, RunScriptName),
		configScript:  filepath.Join(baseDir, ConfigScriptName),
		metadataFile:  filepath.Join(baseDir, MetadataFileName),
		permissions:   make(map[string]Capability),
		restrictions:  make(map[string]Capability),
	}
}

func (d *Descriptor) Name() string { return d.name }
func (d *Descriptor) BaseDir() string { return d.baseDir }
func (d *Descriptor) CSSDir() string { return d.cssDir }
func (d *Descriptor) JSDir() string { return d.jsDir }
func (d *Descriptor) LibDir() string { return d.libDir }
func (d *Descriptor) ConfigDir() string { return d.configDir }
func (d *Descriptor) LocaleDir() string { return d.localeDir }
func (d *Descriptor) FormDir() string { return d.formDir }
func (d *Descriptor) ControllerDir() string { return d.controllerDir }
func (d *Descriptor) RunScript() string { return d.runScript }
func (d *Descriptor) ConfigScript() string { return d.configScript }
func (d *Descriptor) MetadataFile() string { return d.metadataFile }

// CSSFilename is the module's stylesheet
func (d *Descriptor) CSSFilename() string {
	return filepath.Join(d.cssDir, "module.less")
}

// JSFilename is the module's script bundle
func (d *Descriptor) JSFilename() string {
	return filepath.Join(d.jsDir, "module.js")
}

// HasCSS reports whether the module ships a stylesheet
func (d *Descriptor) HasCSS() bool {
	return isFile(d.CSSFilename())
}

// HasJS reports whether the module ships a script bundle
func (d *Descriptor) HasJS() bool {
	return isFile(d.JSFilename())
}

// State returns how far Register got
func (d *Descriptor) State() State {
	return d.state
}

// Metadata returns the module's metadata, reading module.info on first use.
// The result is cached for the lifetime of the descriptor and shared by all
// callers, so it must not be modified; an unreadable file is logged and the
// defaults are cached in its place.
func (d *Descriptor) Metadata() *Metadata {
	if d.metadata != nil {
		return d.metadata
	}

	metadata, err := LoadMetadata(d.name, d.metadataFile)
	if err != nil {
		d.log.Warnf("Cannot read metadata of module %s from %s: %v", d.name, d.metadataFile, err)
		metadata = NewMetadata(d.name)
	}
	d.metadata = metadata

	return d.metadata
}

func (d *Descriptor) Version() string {
	return d.Metadata().Version
}

func (d *Descriptor) ShortDescription() string {
	return d.Metadata().ShortDescription
}

func (d *Descriptor) Description() string {
	return d.Metadata().Description
}

// Dependencies returns a copy of the modules this module depends on
func (d *Descriptor) Dependencies() map[string]Dependency {
	return maps.Clone(d.Metadata().Depends)
}

// Config decodes config/<name>.toml. A missing file yields an empty map.
func (d *Descriptor) Config(name string) (map[string]any, error) {
	path := filepath.Join(d.configDir, name+".toml")
	values := make(map[string]any)

	if _, err := toml.DecodeFile(path, &values); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to load config %s of module %s: %w", name, d.name, err)
	}

	return values, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// isReadable reports whether path is a regular file that can be opened
func isReadable(path string) bool {
	if !isFile(path) {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

type nullHost struct{}

func (nullHost) IsWeb() bool { return false }
func (nullHost) ClassLoader() ClassLoader { return nil }
func (nullHost) Dispatcher() Dispatcher { return nil }
func (nullHost) Router() Router { return nil }
func (nullHost) Translator() Translator { return nil }
func (nullHost) Hooks() HookRegistry { return nil }
