// ABOUTME: Migration utility that copies every workspace slice between storage backends
// ABOUTME: Provides dry-run, sqlite backup and overwrite protection for safe moves

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/harperreed/echoes/charm"
	"github.com/harperreed/echoes/config"
	"github.com/harperreed/echoes/db"
	"github.com/harperreed/echoes/persist"
)

func main() {
	from := flag.String("from", "", "Source backend: charm, sqlite:<path> or redis:<addr> (required)")
	to := flag.String("to", "", "Destination backend, same forms as -from (required)")
	prefix := flag.String("prefix", persist.DefaultPrefix, "Slice key prefix")
	dryRun := flag.Bool("dry-run", false, "Show what would happen without making changes")
	backup := flag.Bool("backup", true, "Back up a sqlite destination before writing")
	force := flag.Bool("force", false, "Overwrite slices that already exist in the destination")
	flag.Parse()

	if *from == "" || *to == "" {
		log.Fatal("Error: -from and -to flags are required")
	}
	if *from == *to {
		log.Fatal("Error: -from and -to must differ")
	}

	if *backup && !*dryRun {
		if err := backupSQLite(*to); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
	}

	srcKV, closeSrc, err := openBackend(*from, *prefix)
	if err != nil {
		log.Fatalf("Failed to open source: %v", err)
	}
	defer closeSrc()

	dstKV, closeDst, err := openBackend(*to, *prefix)
	if err != nil {
		log.Fatalf("Failed to open destination: %v", err)
	}
	defer closeDst()

	src := persist.New(srcKV, persist.WithPrefix(*prefix))
	dst := persist.New(dstKV, persist.WithPrefix(*prefix))

	res, err := copySlices(src, dst, *dryRun, *force)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	verb := "Copied"
	if *dryRun {
		verb = "[DRY RUN] Would copy"
	}
	for _, name := range res.Copied {
		log.Printf("%s slice: %s", verb, name)
	}
	for _, name := range res.Skipped {
		log.Printf("Skipped existing slice: %s (use -force to overwrite)", name)
	}
	log.Printf("Migration completed: %d copied, %d skipped", len(res.Copied), len(res.Skipped))
}

// result lists the slices a migration touched.
type result struct {
	Copied  []string
	Skipped []string
}

// copySlices copies raw slice bytes from src to dst. Slices already present
// in dst are skipped unless force is set.
func copySlices(src, dst *persist.Store, dryRun, force bool) (result, error) {
	var res result

	names, err := src.Slices()
	if err != nil {
		return res, fmt.Errorf("failed to list source slices: %w", err)
	}
	existing, err := dst.Slices()
	if err != nil {
		return res, fmt.Errorf("failed to list destination slices: %w", err)
	}
	present := make(map[string]bool, len(existing))
	for _, name := range existing {
		present[name] = true
	}

	for _, name := range names {
		if present[name] && !force {
			res.Skipped = append(res.Skipped, name)
			continue
		}
		if !dryRun {
			data, err := src.Raw(name)
			if err != nil {
				return res, fmt.Errorf("failed to read %s: %w", name, err)
			}
			if err := dst.PutRaw(name, data); err != nil {
				return res, fmt.Errorf("failed to write %s: %w", name, err)
			}
		}
		res.Copied = append(res.Copied, name)
	}
	return res, nil
}

func openBackend(spec, prefix string) (persist.KV, func(), error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "charm":
		c, err := charm.Open(charm.FromStorage(config.StorageConfig{
			Prefix: prefix,
			Charm:  config.CharmConfig{AutoSync: true},
		}))
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	case "sqlite":
		if arg == "" {
			arg = db.DefaultPath()
		}
		database, err := db.OpenDatabase(arg)
		if err != nil {
			return nil, nil, err
		}
		return db.NewKV(database), func() { _ = database.Close() }, nil
	case "redis":
		r, err := persist.NewRedisKV(persist.RedisConfig{Addr: arg})
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", spec)
	}
}

func backupSQLite(spec string) error {
	kind, path, _ := strings.Cut(spec, ":")
	if kind != "sqlite" || path == "" {
		return nil
	}
	input, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102-150405"))
	log.Printf("Creating backup: %s", backupPath)
	if err := os.WriteFile(backupPath, input, 0644); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	return nil
}
