package hosts

import (
	"os"
	"path/filepath"
)

func DefaultPath() string {
	root := os.Getenv("SystemRoot")
	if len(root) == 0 {
		root = `C:\Windows`
	}

	return filepath.Join(root, "System32", "drivers", "etc", "hosts")
}
