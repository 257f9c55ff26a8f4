package modules

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/paperandsoap/icingaweb2/pkg/observability"
	"github.com/sirupsen/logrus"
)

var moduleNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// ValidateModuleName checks that name can be used as a module name
func ValidateModuleName(name string) error {
	if !moduleNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidModuleName, name)
	}
	return nil
}

// ManagerConfig tells the Manager where modules live
type ManagerConfig struct {
	// ModulePaths are searched in order for installed modules. The first
	// directory containing a module of a given name wins.
	ModulePaths []string
	// EnabledDir holds one symlink per enabled module
	EnabledDir string
	// MetadataCacheSize and MetadataCacheTTL bound the cache of metadata
	// read from modules which are installed but not loaded
	MetadataCacheSize int
	MetadataCacheTTL  time.Duration
}

// Manager discovers installed modules, enables and disables them and keeps
// the descriptors of all modules registered with the host.
type Manager struct {
	host        Host
	modulePaths []string
	enabledDir  string
	loaded      map[string]*Descriptor
	metadata    *metadataCache
	metrics     *observability.Metrics
	log         *logrus.Logger

	// loadMu serializes registrations and descriptor access since
	// descriptors are not safe for concurrent use; mu protects loaded
	loadMu sync.Mutex
	mu     sync.RWMutex
}

// NewManager creates a module manager for host
func NewManager(host Host, cfg ManagerConfig, log *logrus.Logger, metrics *observability.Metrics) *Manager {
	if log == nil {
		log = logrus.New()
	}

	return &Manager{
		host:        host,
		modulePaths: cfg.ModulePaths,
		enabledDir:  cfg.EnabledDir,
		loaded:      make(map[string]*Descriptor),
		metadata:    newMetadataCache(cfg.MetadataCacheSize, cfg.MetadataCacheTTL),
		metrics:     metrics,
		log:         log,
	}
}

// EnabledDir returns the directory holding the enabled module links
func (m *Manager) EnabledDir() string {
	return m.enabledDir
}

// ListInstalledModules returns the names of all modules found in the module paths
func (m *Manager) ListInstalledModules() []string {
	installed := m.installedModules()

	names := make([]string, 0, len(installed))
	for name := range installed {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// InstalledModulePath returns the directory of an installed module
func (m *Manager) InstalledModulePath(name string) (string, bool) {
	path, ok := m.installedModules()[name]
	return path, ok
}

func (m *Manager) installedModules() map[string]string {
	installed := make(map[string]string)

	for _, dir := range m.modulePaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				m.log.Debugf("Module path does not exist: %s", dir)
			} else {
				m.log.Warnf("Failed to read module path %s: %v", dir, err)
			}
			continue
		}

		for _, entry := range entries {
			name := entry.Name()
			if _, seen := installed[name]; seen || ValidateModuleName(name) != nil {
				continue
			}

			path := filepath.Join(dir, name)
			if !isDir(path) {
				continue
			}
			installed[name] = path
		}
	}

	return installed
}

// ListEnabledModules returns the names of all enabled modules. A missing
// enabled directory means no module is enabled.
func (m *Manager) ListEnabledModules() ([]string, error) {
	if m.enabledDir == "" {
		return []string{}, nil
	}

	entries, err := os.ReadDir(m.enabledDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read enabled modules: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if ValidateModuleName(name) != nil {
			continue
		}
		if !isDir(filepath.Join(m.enabledDir, name)) {
			m.log.Warnf("Enabled module %s does not point to a directory", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// IsEnabled reports whether the module has an entry in the enabled directory
func (m *Manager) IsEnabled(name string) bool {
	if m.enabledDir == "" || ValidateModuleName(name) != nil {
		return false
	}
	_, err := os.Lstat(filepath.Join(m.enabledDir, name))
	return err == nil
}

// EnableModule links an installed module into the enabled directory. The
// module is loaded on the next LoadEnabledModules or by a running Watcher.
func (m *Manager) EnableModule(name string) error {
	if err := ValidateModuleName(name); err != nil {
		return err
	}

	target, ok := m.InstalledModulePath(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrModuleNotInstalled, name)
	}

	if m.IsEnabled(name) {
		return fmt.Errorf("%w: %s", ErrModuleAlreadyEnabled, name)
	}

	if err := os.MkdirAll(m.enabledDir, 0755); err != nil {
		return fmt.Errorf("failed to create enabled modules directory: %w", err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve module path: %w", err)
	}

	if err := os.Symlink(absTarget, filepath.Join(m.enabledDir, name)); err != nil {
		return fmt.Errorf("failed to enable module %s: %w", name, err)
	}

	m.log.Infof("Enabled module: %s", name)
	return nil
}

// DisableModule removes the module's link from the enabled directory. An
// already loaded module stays registered until the process restarts.
func (m *Manager) DisableModule(name string) error {
	if err := ValidateModuleName(name); err != nil {
		return err
	}

	link := filepath.Join(m.enabledDir, name)
	info, err := os.Lstat(link)
	if m.enabledDir == "" || err != nil {
		return fmt.Errorf("%w: %s", ErrModuleNotEnabled, name)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("cannot disable module %s: %s is not a symlink", name, link)
	}

	if err := os.Remove(link); err != nil {
		return fmt.Errorf("failed to disable module %s: %w", name, err)
	}

	m.log.Infof("Disabled module: %s", name)
	return nil
}

// LoadEnabledModules registers every enabled module which is not loaded yet.
// A module failing to register does not stop the others; the names of the
// failed modules are returned.
func (m *Manager) LoadEnabledModules(ctx context.Context) ([]string, error) {
	enabled, err := m.ListEnabledModules()
	if err != nil {
		return nil, err
	}

	var failed []string
	for _, name := range enabled {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		if m.HasLoaded(name) {
			continue
		}

		if err := m.LoadModuleContext(ctx, name, filepath.Join(m.enabledDir, name)); err != nil {
			// Register already logged failing run units
			if !errors.Is(err, ErrRegistrationFailed) {
				m.log.Warnf("Failed to load module %s: %v", name, err)
			}
			failed = append(failed, name)
		}
	}

	return failed, nil
}

// LoadModule creates the descriptor of a module and registers it with the
// host. An empty baseDir is resolved through the enabled directory and then
// the module paths. Only successfully registered modules are kept.
func (m *Manager) LoadModule(name, baseDir string) error {
	return m.LoadModuleContext(context.Background(), name, baseDir)
}

// LoadModuleContext is LoadModule recording a span under the trace of ctx
func (m *Manager) LoadModuleContext(ctx context.Context, name, baseDir string) (err error) {
	ctx, span := startSpan(ctx, "modules.LoadModule", name)
	defer func() { endSpan(span, err) }()

	if err := ValidateModuleName(name); err != nil {
		return err
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	if m.HasLoaded(name) {
		return fmt.Errorf("%w: %s", ErrModuleAlreadyLoaded, name)
	}

	if baseDir == "" {
		var ok bool
		if baseDir, ok = m.resolveModulePath(name); !ok {
			return fmt.Errorf("%w: %s", ErrModuleNotInstalled, name)
		}
	}

	if resolved, err := filepath.EvalSymlinks(baseDir); err == nil {
		baseDir = resolved
	}

	if !isDir(baseDir) {
		return fmt.Errorf("%w: %s has no directory %s", ErrModuleNotInstalled, name, baseDir)
	}

	d := NewDescriptor(m.host, name, baseDir, m.log)
	ok := d.RegisterContext(ctx)
	m.metrics.RecordRegistration(name, ok)
	if !ok {
		return fmt.Errorf("%w: %s", ErrRegistrationFailed, name)
	}

	m.mu.Lock()
	m.loaded[name] = d
	count := len(m.loaded)
	m.mu.Unlock()

	m.metrics.SetModulesLoaded(count)
	observability.WithTraceContext(ctx, m.log).Infof("Loaded module: %s (%s)", name, baseDir)

	return nil
}

func (m *Manager) resolveModulePath(name string) (string, bool) {
	if m.IsEnabled(name) {
		return filepath.Join(m.enabledDir, name), true
	}
	return m.InstalledModulePath(name)
}

// GetModule returns the descriptor of a loaded module
func (m *Manager) GetModule(name string) (*Descriptor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, exists := m.loaded[name]
	return d, exists
}

// HasLoaded reports whether the module is registered
func (m *Manager) HasLoaded(name string) bool {
	_, exists := m.GetModule(name)
	return exists
}

// ListLoadedModules returns the names of all registered modules
func (m *Manager) ListLoadedModules() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.loaded))
	for name := range m.loaded {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// LoadedModules returns the descriptors of all registered modules sorted by name
func (m *Manager) LoadedModules() []*Descriptor {
	names := m.ListLoadedModules()

	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		if d, ok := m.loaded[name]; ok {
			result = append(result, d)
		}
	}

	return result
}

// ModuleCapabilities lists what one module declared
type ModuleCapabilities struct {
	Module       string       `json:"module" yaml:"module"`
	Permissions  []Capability `json:"permissions" yaml:"permissions"`
	Restrictions []Capability `json:"restrictions" yaml:"restrictions"`
}

// Capabilities collects the permissions and restrictions of every loaded
// module, e.g. for an authorization layer building its role editor. The
// configuration units of modules not configured yet run here.
func (m *Manager) Capabilities() []ModuleCapabilities {
	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	descriptors := m.LoadedModules()
	result := make([]ModuleCapabilities, 0, len(descriptors))
	for _, d := range descriptors {
		result = append(result, capabilitiesOf(d))
	}

	return result
}

// ModuleCapabilities returns what a single loaded module declared
func (m *Manager) ModuleCapabilities(name string) (*ModuleCapabilities, bool) {
	d, ok := m.GetModule(name)
	if !ok {
		return nil, false
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	caps := capabilitiesOf(d)
	return &caps, true
}

func capabilitiesOf(d *Descriptor) ModuleCapabilities {
	return ModuleCapabilities{
		Module:       d.Name(),
		Permissions:  SortedCapabilities(d.ProvidedPermissions()),
		Restrictions: SortedCapabilities(d.ProvidedRestrictions()),
	}
}

// ModuleInfo is a snapshot of a loaded module's descriptor
type ModuleInfo struct {
	Name     string       `json:"name"`
	BaseDir  string       `json:"base_dir"`
	State    string       `json:"state"`
	Metadata Metadata     `json:"metadata"`
	HasCSS   bool         `json:"has_css"`
	HasJS    bool         `json:"has_js"`
	Routes   []NamedRoute `json:"routes"`
}

// ModuleInfo describes a loaded module, reading its metadata if needed
func (m *Manager) ModuleInfo(name string) (*ModuleInfo, bool) {
	d, ok := m.GetModule(name)
	if !ok {
		return nil, false
	}

	m.loadMu.Lock()
	defer m.loadMu.Unlock()

	return &ModuleInfo{
		Name:     d.Name(),
		BaseDir:  d.BaseDir(),
		State:    d.State().String(),
		Metadata: *d.Metadata(),
		HasCSS:   d.HasCSS(),
		HasJS:    d.HasJS(),
		Routes:   d.Routes(),
	}, true
}

// InstalledModuleMetadata returns the metadata of an installed module.
// Loaded modules answer from their descriptor; for the others module.info
// is parsed and cached. The result must not be modified.
func (m *Manager) InstalledModuleMetadata(name string) (*Metadata, error) {
	if err := ValidateModuleName(name); err != nil {
		return nil, err
	}

	if d, ok := m.GetModule(name); ok {
		m.loadMu.Lock()
		defer m.loadMu.Unlock()
		return d.Metadata(), nil
	}

	path, ok := m.InstalledModulePath(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotInstalled, name)
	}

	return m.metadata.get(name, path)
}

// MetadataCacheStats reports the use of the installed module metadata cache
func (m *Manager) MetadataCacheStats() MetadataCacheStats {
	return m.metadata.stats()
}

// SortedCapabilities returns the values of caps ordered by name
func SortedCapabilities(caps map[string]Capability) []Capability {
	result := make([]Capability, 0, len(caps))
	for _, c := range caps {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
