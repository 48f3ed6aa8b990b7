package cli

import (
	"fmt"

	"github.com/haerye/jindo/internal/backup"
)

type BackupCmd struct {
	List bool `short:"l" help:"List existing backups instead of creating one."`
}

func (c *BackupCmd) Run(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetDataPath())

	if c.List {
		backups, err := mgr.ListBackups()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		for _, b := range backups {
			fmt.Printf("  %s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
		}
		return nil
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}
