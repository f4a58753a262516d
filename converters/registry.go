package converters

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/darianmavgo/ora2pg/converters/common"
	"github.com/pingcap/errors"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]common.Driver)
)

// Register makes a report sink available by the provided name.
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(name string, driver common.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("converters: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("converters: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Export writes provider to w using the named report sink.
func Export(ctx context.Context, driverName string, provider common.RowProvider, w io.Writer, opts *common.ExportOptions) error {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return errors.Errorf("converters: unknown driver %q (forgotten import?)", driverName)
	}
	return driver.Export(ctx, provider, w, opts)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// DriverForPath picks a report sink name from the file extension.
func DriverForPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite", nil
	case ".xlsx":
		return "excel", nil
	default:
		return "", errors.Errorf("unsupported report file type: %q", ext)
	}
}
