package utils

import (
	"os"
	"path/filepath"
)

// GetProjectRootDir walks upward from the working directory until it
// finds go.mod. Tests run with the package directory as cwd, so a fixed
// number of ".." hops is not reliable.
func GetProjectRootDir() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// we panic. cdk is build time only.
			panic("go.mod not found above " + wd)
		}
		dir = parent
	}
}
