package tx

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// writeFileDurable replaces path with data without ever exposing a torn
// write: the bytes go to a temp file in the same directory, are fsynced,
// and are renamed over the previous file. Parent directories are created
// as needed.
func writeFileDurable(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// loadList reads a JSON list from path. A missing file is an empty list; an
// unparsable one is logged and treated as empty rather than wedging every
// caller on a corrupt byte.
func loadList[T any](path string, log *slog.Logger) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		log.Warn("treating unparsable ledger as empty", "path", path, "error", err)
		return nil
	}
	return list
}

// storeList rewrites path with the full list, durably.
func storeList[T any](path string, list []T) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return writeFileDurable(path, data)
}
