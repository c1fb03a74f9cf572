// Package store persists calculator state between runs: the calculation
// history and the result cache. Both are msgpack files replaced atomically.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// CacheDir returns $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func CacheDir(app string) (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache", app)
}

// StateDir returns $XDG_STATE_HOME/app, falling back to ~/.local/state/app.
func StateDir(app string) (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"), app)
}

func xdgDir(env, fallback, app string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	return filepath.Join(base, app), nil
}

// writeAtomic encodes v into a temp file next to path and renames it over path.
func writeAtomic(path string, v any) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// readFile decodes path into v. A missing file reports false with no error.
func readFile(path string, v any) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
