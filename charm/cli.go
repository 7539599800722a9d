// ABOUTME: CLI commands for Charm KV sync of the workspace slices
// ABOUTME: SSH key auth means there is no login/logout; wipe clears only the prefixed slices

package charm

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// SyncCommand dispatches `echoes sync <sub>`.
func SyncCommand(c *Client, args []string) error {
	if len(args) == 0 {
		return syncUsage(os.Stdout)
	}

	switch args[0] {
	case "status":
		return SyncStatusCommand(c, args[1:])
	case "now":
		return SyncNowCommand(c, args[1:])
	case "wipe":
		return SyncWipeCommand(c, args[1:])
	case "auto":
		return SetAutoSyncCommand(c, args[1:])
	default:
		_ = syncUsage(os.Stdout)
		return fmt.Errorf("unknown sync command: %s", args[0])
	}
}

func syncUsage(w io.Writer) error {
	fmt.Fprintln(w, "Usage: echoes sync <status|now|wipe|auto>")
	return nil
}

// SyncStatusCommand shows the server, auto-sync setting and persisted slices.
func SyncStatusCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync status", flag.ExitOnError)
	_ = fs.Parse(args)

	fmt.Println("Charm Sync Status")
	fmt.Println("─────────────────")
	fmt.Printf("Server:    %s\n", c.Host())
	fmt.Printf("Auto-sync: %v\n", c.AutoSync())

	if c.IsConnected() {
		if id, err := c.ID(); err == nil {
			fmt.Printf("ID:        %s\n", id)
		}
	} else {
		fmt.Println("Status:    Not connected")
	}

	slices, err := c.Slices()
	if err != nil {
		return fmt.Errorf("failed to list slices: %w", err)
	}
	fmt.Printf("Slices:    %d\n", len(slices))
	for _, name := range slices {
		fmt.Printf("  - %s\n", name)
	}

	return nil
}

// SyncWipeCommand deletes the workspace slices. Every slice falls back to its
// seeded default the next time the workspace loads.
func SyncWipeCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync wipe", flag.ExitOnError)
	confirm := fs.Bool("confirm", false, "Confirm data wipe")
	_ = fs.Parse(args)

	if !*confirm {
		fmt.Println("WARNING: This will delete ALL workspace data!")
		fmt.Println()
		fmt.Println("To confirm, run:")
		fmt.Println("  echoes sync wipe --confirm")
		return nil
	}

	if err := c.Wipe(); err != nil {
		return fmt.Errorf("failed to wipe slices: %w", err)
	}

	fmt.Println("✓ All data wiped, defaults will be reseeded on next start")
	return nil
}

// SyncNowCommand performs an immediate sync.
func SyncNowCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync now", flag.ExitOnError)
	verbose := fs.Bool("verbose", false, "Show verbose output")
	_ = fs.Parse(args)

	if *verbose {
		fmt.Println("Syncing with server...")
	}

	if err := c.Sync(); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Println("✓ Synced")
	return nil
}

// SetAutoSyncCommand enables or disables auto-sync.
func SetAutoSyncCommand(c *Client, args []string) error {
	fs := flag.NewFlagSet("sync auto", flag.ExitOnError)
	enable := fs.Bool("enable", false, "Enable auto-sync")
	disable := fs.Bool("disable", false, "Disable auto-sync")
	_ = fs.Parse(args)

	if *enable == *disable {
		fmt.Println("Usage: echoes sync auto --enable|--disable")
		return nil
	}

	if err := c.SetAutoSync(*enable); err != nil {
		return fmt.Errorf("failed to update auto-sync: %w", err)
	}

	if *enable {
		fmt.Println("✓ Auto-sync enabled")
	} else {
		fmt.Println("✓ Auto-sync disabled")
	}
	return nil
}
