package dataservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	sqlite "modernc.org/sqlite"

	"timekeeper/internal/models"
)

// backupConn is the online-backup surface of the sqlite driver connection,
// reached through sql.Conn.Raw. NewBackup copies this database into dstPath;
// NewRestore copies srcPath into this database.
type backupConn interface {
	NewBackup(dstPath string) (*sqlite.Backup, error)
	NewRestore(srcPath string) (*sqlite.Backup, error)
}

// Backup copies the live database into a timestamped file in the backups
// directory using the engine's online-backup mechanism, so the copy is
// consistent even though the source is open. A partial file left by a failed
// backup is deleted; only complete backups persist. Returns the backup path.
func (s *Service) Backup(ctx context.Context) (string, error) {
	path := filepath.Join(s.backupsDir,
		fmt.Sprintf("timekeeper_backup_%s.db", time.Now().Format(stampLayout)))

	err := s.onlineCopy(ctx, func(c backupConn) (*sqlite.Backup, error) {
		return c.NewBackup(path)
	})
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Error("failed to remove partial backup", "path", path, "error", rmErr)
		}
		return "", err
	}

	return path, nil
}

// Restore overwrites the live database's contents from a backup file as one
// logical operation. It is destructive: no pre-restore copy of the current
// state is taken.
func (s *Service) Restore(ctx context.Context, backupPath string) error {
	info, err := os.Stat(backupPath)
	if err != nil || info.IsDir() {
		return models.Invalid("backup_path", "does not exist or is not a file")
	}

	return s.onlineCopy(ctx, func(c backupConn) (*sqlite.Backup, error) {
		return c.NewRestore(backupPath)
	})
}

// onlineCopy runs a full backup pass on the live connection and finalizes it.
func (s *Service) onlineCopy(ctx context.Context, start func(backupConn) (*sqlite.Backup, error)) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.Raw(func(driverConn any) error {
		c, ok := driverConn.(backupConn)
		if !ok {
			return errors.New("driver connection does not support online backup")
		}

		bck, err := start(c)
		if err != nil {
			return err
		}
		for {
			more, err := bck.Step(-1)
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
		return bck.Finish()
	})
}
