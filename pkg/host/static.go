package host

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/paperandsoap/icingaweb2/pkg/httputil"
	"github.com/paperandsoap/icingaweb2/pkg/modules"
)

// AssetDirs resolves a module name to the module's base directory
type AssetDirs func(module string) (string, bool)

// StaticController serves files from public/js and public/img of modules
type StaticController struct {
	dirs AssetDirs
}

// NewStaticController creates a static controller
func NewStaticController(dirs AssetDirs) *StaticController {
	return &StaticController{dirs: dirs}
}

// Register makes the controller's actions available to every module
func (c *StaticController) Register(d *Dispatcher) {
	d.Handle("", modules.StaticController, modules.JavascriptAction, c.serve("js"))
	d.Handle("", modules.StaticController, modules.ImageAction, c.serve("img"))
}

func (c *StaticController) serve(subdir string) ActionHandler {
	return func(w http.ResponseWriter, r *http.Request, params Params) {
		name := params[modules.ModuleNameParam]
		file := params["file"]

		if file == "" || file != filepath.Base(file) || strings.HasPrefix(file, ".") {
			httputil.WriteNotFoundError(w, "file not found")
			return
		}

		baseDir, ok := c.dirs(name)
		if !ok {
			httputil.WriteNotFoundError(w, "module not found: "+name)
			return
		}

		http.ServeFile(w, r, filepath.Join(baseDir, "public", subdir, file))
	}
}
