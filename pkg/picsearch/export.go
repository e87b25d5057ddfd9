package picsearch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	"k8s.io/klog/v2"
)

// Export copies the picture at path into outDir and returns the new path.
func Export(path string, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	dest := filepath.Join(outDir, filepath.Base(path))
	if err := copy.Copy(path, dest); err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}

	klog.Infof("exported %s -> %s", path, dest)
	return dest, nil
}
