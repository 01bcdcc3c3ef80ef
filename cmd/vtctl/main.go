// vtctl es la herramienta operativa: migraciones de esquema y reconciliación
// de contadores.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sanikant20/videoTube-Server/internal/config"
	"github.com/sanikant20/videoTube-Server/internal/store/core"
	"github.com/sanikant20/videoTube-Server/internal/store/pg"
	migrations "github.com/sanikant20/videoTube-Server/migrations/postgres"
)

func main() {
	_ = godotenv.Load()

	var configPath string

	root := &cobra.Command{
		Use:   "vtctl",
		Short: "Operaciones de mantenimiento del backend videotube",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "configs/config.example.yaml", "Path al YAML de configuración")

	root.AddCommand(migrateCmd(&configPath))
	root.AddCommand(reconcileCmd(&configPath))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openPool(ctx context.Context, configPath string) (*pgxpool.Pool, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("config load: %w", err)
	}
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	return pool, cfg, nil
}

// ------- migrate -------

func migrateCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [up|down] [steps]",
		Short: "Aplica las migraciones embebidas (*_up.sql / *_down.sql)",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "up"
			steps := 0
			if len(args) >= 1 {
				action = strings.ToLower(args[0])
			}
			if len(args) >= 2 {
				if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
					steps = n
				}
			}

			ctx := cmd.Context()
			pool, _, err := openPool(ctx, *configPath)
			if err != nil {
				return err
			}
			defer pool.Close()

			switch action {
			case "up":
				return runMigrations(ctx, pool, "_up.sql", steps, false)
			case "down":
				return runMigrations(ctx, pool, "_down.sql", steps, true)
			default:
				return fmt.Errorf("acción desconocida %q: usar up | down [steps]", action)
			}
		},
	}
	return cmd
}

func runMigrations(ctx context.Context, pool *pgxpool.Pool, suffix string, steps int, reverse bool) error {
	files, err := listSQL(suffix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Printf("No hay migraciones %s. Nada que hacer.", suffix)
		return nil
	}
	sort.Strings(files)
	if reverse {
		for i, j := 0, len(files)-1; i < j; i, j = i+1, j-1 {
			files[i], files[j] = files[j], files[i]
		}
	}
	if steps > 0 && steps < len(files) {
		files = files[:steps]
	}

	log.Printf("Aplicando %d migración(es)...", len(files))
	for _, f := range files {
		b, err := fs.ReadFile(migrations.FS, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		start := time.Now()
		if _, err := pool.Exec(ctx, string(b)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}
		log.Printf("OK %s (%s)", f, time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

func listSQL(suffix string) ([]string, error) {
	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

// ------- reconcile -------

func reconcileCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile <target-type> [target-id]",
		Short: "Corrige contadores denormalizados contra el ledger de engagement",
		Long: `Sin target-id recorre todas las filas del tipo dado.
Los tipos válidos son: video, comment, tweet, channel.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tt, err := core.ParseTargetType(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{})
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 2 {
				return reconcileOne(ctx, store, core.Target{Type: tt, ID: args[1]})
			}
			return reconcileAll(ctx, store, tt)
		},
	}
	return cmd
}

func reconcileOne(ctx context.Context, store *pg.Store, t core.Target) error {
	n, err := store.ReconcileCounter(ctx, t)
	if err != nil {
		return fmt.Errorf("reconcile %s/%s: %w", t.Type, t.ID, err)
	}
	log.Printf("OK %s/%s count=%d", t.Type, t.ID, n)
	return nil
}

func reconcileAll(ctx context.Context, store *pg.Store, tt core.TargetType) error {
	table := map[core.TargetType]string{
		core.TargetVideo:   "video",
		core.TargetComment: "comment",
		core.TargetTweet:   "tweet",
		core.TargetChannel: "app_user",
	}[tt]

	rows, err := store.Pool().Query(ctx, `SELECT id FROM `+table)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	fixed := 0
	for _, id := range ids {
		if _, err := store.ReconcileCounter(ctx, core.Target{Type: tt, ID: id}); err != nil {
			log.Printf("FAIL %s/%s: %v", tt, id, err)
			continue
		}
		fixed++
	}
	log.Printf("Reconciliadas %d/%d filas de %s", fixed, len(ids), table)
	return nil
}
