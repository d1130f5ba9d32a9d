package loader

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/wippyai/shader-validator/errors"
)

// Component file names. Both are versioned, externally supplied
// WebAssembly components; the loader only locates and reads them.
const (
	ValidatorComponent   = "shader-validator.wasm"
	DiagnosticsComponent = "shader-diagnostics.wasm"
)

// EnvSearchPath is the environment variable holding the default search
// path: a list of directories separated by the OS path-list separator.
const EnvSearchPath = "SHADER_COMPONENT_PATH"

// Loader locates validator and diagnostics components on the host
// filesystem.
type Loader struct {
	searchPath []string
	selfDir    func() (string, error)
}

// New creates a loader whose default search path is the EnvSearchPath
// directories followed by the working directory.
func New() *Loader {
	var dirs []string
	if env := os.Getenv(EnvSearchPath); env != "" {
		for _, d := range filepath.SplitList(env) {
			if d != "" {
				dirs = append(dirs, d)
			}
		}
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return &Loader{
		searchPath: dirs,
		selfDir:    executableDir,
	}
}

// NewWithPath creates a loader with an explicit default search path,
// bypassing the environment.
func NewWithPath(dirs []string) *Loader {
	return &Loader{
		searchPath: append([]string(nil), dirs...),
		selfDir:    executableDir,
	}
}

// Validator loads the mandatory validator component. It first tries the
// default search path; if that fails it falls back to the directory of
// the running executable, so the component can ship next to the binary.
// Exhausting both reports a hard not-found error.
func (l *Loader) Validator() ([]byte, error) {
	data, searched := l.search(ValidatorComponent, l.searchPath)
	if data != nil {
		return data, nil
	}

	self, err := l.selfDir()
	if err != nil {
		Logger().Warn("unable to determine path to self",
			zap.Error(err))
		return nil, errors.NotFound(ValidatorComponent, searched)
	}

	path := filepath.Join(self, ValidatorComponent)
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}
	searched = append(searched, self)

	return nil, errors.NotFound(ValidatorComponent, searched)
}

// Diagnostics loads the optional diagnostics component from the default
// search path only. Absence, unreadability, or any other failure is
// silently reported as "not present" — diagnostics are a convenience,
// never an error.
func (l *Loader) Diagnostics() ([]byte, bool) {
	data, _ := l.search(DiagnosticsComponent, l.searchPath)
	if data == nil {
		return nil, false
	}
	return data, true
}

// search tries each directory in order and returns the first readable
// match along with the list of directories tried.
func (l *Loader) search(name string, dirs []string) ([]byte, []string) {
	searched := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		searched = append(searched, dir)
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		return data, searched
	}
	return nil, searched
}

// executableDir resolves the directory containing the running binary,
// following symlinks.
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(resolved), nil
}
