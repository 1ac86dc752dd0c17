// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold the SQLite database
// addressed by dsn. In-memory DSNs and files in the working directory need no
// directory and are left alone.
func EnsureParentDir(dsn string) error {
	if IsMemoryDSN(dsn) {
		return nil
	}

	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.SplitN(clean, "?", 2)[0]

	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
