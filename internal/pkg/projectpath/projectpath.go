// Package projectpath resolves the repository root at build time so that
// config files such as .env can be found regardless of the working directory.
package projectpath

import (
	"path/filepath"
	"runtime"
)

var (
	_, b, _, _ = runtime.Caller(0)

	// Root folder of this project
	Root = filepath.Join(filepath.Dir(b), "../../..")
)
