// Package backup creates rotated copies of the local study store.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// MaxBackups is the maximum number of backups to keep.
	MaxBackups = 14
	// BackupDirName is the name of the backup directory.
	BackupDirName = "backups"
	// BackupPrefix is the prefix for backup entries.
	BackupPrefix = "jindo-"
)

// Info describes one existing backup.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager copies the store (a SQLite file or a JSON record directory) into
// a sibling backups directory and rotates old copies out.
type Manager struct {
	dataPath  string
	backupDir string
}

func NewManager(dataPath string) *Manager {
	// A directory store keeps its backups inside itself; a database file
	// keeps them alongside, like the file's other siblings.
	backupParent := filepath.Dir(dataPath)
	if info, err := os.Stat(dataPath); err == nil && info.IsDir() {
		backupParent = dataPath
	}
	return &Manager{
		dataPath:  dataPath,
		backupDir: filepath.Join(backupParent, BackupDirName),
	}
}

// GetBackupDir returns the backup directory path.
func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup copies the store into a timestamped entry and rotates old
// backups. It returns the path of the new backup.
func (m *Manager) CreateBackup() (string, error) {
	info, err := os.Stat(m.dataPath)
	if err != nil {
		return "", fmt.Errorf("store does not exist: %s", m.dataPath)
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupPath, err := m.uniqueBackupPath(info.IsDir())
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		err = copyJSONDir(m.dataPath, backupPath)
	} else {
		err = copyFile(m.dataPath, backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up store: %w", err)
	}

	if err := m.rotate(); err != nil {
		// Rotation failure should not fail the backup itself.
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}

	return backupPath, nil
}

func (m *Manager) uniqueBackupPath(isDir bool) (string, error) {
	suffix := ".db"
	if isDir {
		suffix = ""
	}

	name := BackupPrefix + time.Now().Format("20060102-150405") + suffix
	path := filepath.Join(m.backupDir, name)
	counter := 1
	for {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", BackupPrefix, time.Now().Format("20060102-150405"), counter, suffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup name")
		}
	}
}

// ListBackups returns the existing backups, newest first.
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), BackupPrefix) {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: fi.ModTime(),
			Size:      fi.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for _, old := range backups[min(len(backups), MaxBackups):] {
		if err := os.RemoveAll(old.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", old.Path, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// copyJSONDir copies the store's top-level .json records into dst. Nested
// directories (including the backups directory itself) are skipped.
func copyJSONDir(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0700); err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
