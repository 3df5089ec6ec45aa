package tasklist

import "os"

// BackupSuffix is appended to a task file's name by BackupFile.
const BackupSuffix = ".bak"

// BackupFile copies filename to filename+BackupSuffix, replacing any older
// backup, and returns the backup path. The copy keeps the original's mode.
func BackupFile(filename string) (string, error) {
	if err := checkFilename(filename); err != nil {
		return "", err
	}
	backup := filename + BackupSuffix

	info, err := os.Stat(filename)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: filename, Err: err}
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: filename, Err: err}
	}
	if err := os.WriteFile(backup, data, info.Mode().Perm()); err != nil {
		return "", &PersistenceError{Op: "backup", Path: backup, Err: err}
	}
	return backup, nil
}
