// Command seed-catalog loads product catalog files into PostgreSQL and can
// optionally seed a session token for local development.
//
// Catalog files are JSON Lines, one product per line, optionally gzip
// compressed:
//
//	{"code":"001","name":"Oranges","price":"5.90","category":"Fruit"}
//
// All *.jsonl and *.jsonl.gz files in the catalog directory are ingested
// concurrently.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ethrva/shopfront/internal/domain/product"
	"github.com/ethrva/shopfront/internal/domain/session"
	"github.com/ethrva/shopfront/internal/storage/postgres"
)

type productLine struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

func main() {
	var (
		databaseURL     string
		catalogDir      string
		sessionToken    string
		sessionCustomer string
		sessionPepper   string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&catalogDir, "catalog-dir", "db/seed", "directory containing *.jsonl[.gz] catalog files")
	flag.StringVar(&sessionToken, "session-token", "", "session token to seed (or SHOPFRONT_SEED_TOKEN env)")
	flag.StringVar(&sessionCustomer, "session-customer", "", "customer ID the seeded session belongs to")
	flag.StringVar(&sessionPepper, "session-pepper", "", "HMAC pepper for session token hashing (or SHOPFRONT_SESSION_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if sessionToken == "" {
		sessionToken = os.Getenv("SHOPFRONT_SEED_TOKEN")
	}
	if sessionPepper == "" {
		sessionPepper = os.Getenv("SHOPFRONT_SESSION_PEPPER")
	}
	if sessionToken != "" && sessionCustomer == "" {
		slog.Error("--session-customer is required when seeding a session token")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, catalogDir, sessionToken, sessionCustomer, sessionPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, catalogDir, token, customerID, pepper string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	files, err := catalogFiles(catalogDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		slog.Warn("no catalog files found", slog.String("dir", catalogDir))
	}

	products := postgres.NewProductRepository(pool)

	g, gctx := errgroup.WithContext(ctx)
	for _, path := range files {
		g.Go(func() error {
			n, err := ingestFile(gctx, products, path)
			if err != nil {
				return errors.Wrapf(err, "ingest %s", path)
			}
			slog.Info("catalog file ingested",
				slog.String("file", filepath.Base(path)),
				slog.Int("products", n),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if token != "" {
		sessions := postgres.NewSessionRepository(pool)
		err := sessions.Upsert(ctx, session.Session{
			TokenHash:  session.HashToken([]byte(pepper), token),
			CustomerID: customerID,
		})
		if err != nil {
			return errors.Wrap(err, "seed session")
		}
		slog.Info("session seeded", slog.String("customer_id", customerID))
	}

	return nil
}

// catalogFiles lists ingestable files in dir, sorted by name.
func catalogFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog dir")
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".jsonl") || strings.HasSuffix(name, ".jsonl.gz") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// ingestFile upserts every product line in path and returns the count.
func ingestFile(ctx context.Context, products *postgres.ProductRepository, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrap(err, "open")
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return 0, errors.Wrap(err, "gzip reader")
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	count := 0
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var p productLine
		if err := json.Unmarshal([]byte(line), &p); err != nil {
			return count, errors.Wrapf(err, "parse line %d", count+1)
		}
		if p.Code == "" || p.Name == "" {
			return count, errors.Errorf("line %d: code and name are required", count+1)
		}

		err := products.Upsert(ctx, product.Product{
			Code:     p.Code,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
		})
		if err != nil {
			return count, errors.Wrapf(err, "upsert %s", p.Code)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, errors.Wrap(err, "scan")
	}
	return count, nil
}
