package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/haerye/jindo/internal/backup"
	"github.com/haerye/jindo/internal/dateutil"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: store reachable
	if err := ctx.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: progress record sane
	if ctx.Progress != nil {
		if err := checkProgressShape(ctx); err != nil {
			fmt.Printf("❌ Progress record: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Progress record: OK\n")
		}
	} else {
		fmt.Printf("⊘ Progress record: SKIPPED (storage not reachable)\n")
	}

	// Check 3: no other jindo process sharing the store
	if err := checkConcurrentProcess(); err != nil {
		fmt.Printf("⚠ Concurrent process: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent process: OK\n")
	}

	// Check 4: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkProgressShape(ctx *Context) error {
	p := ctx.Progress.Summary()
	if p.TotalItems <= 0 {
		return fmt.Errorf("total items is %d, expected a positive goal sum", p.TotalItems)
	}
	if p.Percent < 0 || p.Percent > 100 {
		return fmt.Errorf("percent %d outside [0,100]", p.Percent)
	}
	if p.LastStudyDate != "" {
		if _, err := dateutil.ParseDay(p.LastStudyDate); err != nil {
			return fmt.Errorf("last study date is malformed: %w", err)
		}
	}
	if len(p.CompletedItemKeys) < p.CompletedByCategory["hangul"] {
		return fmt.Errorf("completed key set smaller than the hangul bucket count")
	}
	return nil
}

// checkConcurrentProcess warns when another jindo process is running; two
// processes sharing one store can clobber each other's writes.
func checkConcurrentProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not enumerate processes: %w", err)
	}

	self := os.Getpid()
	name := strings.TrimSuffix(filepath.Base(os.Args[0]), ".exe")
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == name {
			return fmt.Errorf("another %s process is running (pid %d)", name, p.Pid())
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetDataPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found; run 'jindo backup'")
	}
	if time.Since(backups[0].Timestamp) > 7*24*time.Hour {
		return fmt.Errorf("most recent backup is older than 7 days")
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock reports %s, which predates this tool", now.Format(time.RFC3339))
	}
	if dateutil.Today() != dateutil.FormatDay(now) {
		return fmt.Errorf("local day computation is inconsistent")
	}
	return nil
}
