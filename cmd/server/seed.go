package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ecommerce-system/ecommerce-api/internal/service"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML fixture format accepted by "seed".
type seedFile struct {
	Users    []seedUser    `yaml:"users"`
	Products []seedProduct `yaml:"products"`
}

type seedUser struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

type seedProduct struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	PriceCents  int64  `yaml:"price_cents"`
	Stock       int    `yaml:"stock"`
}

// seedResult counts what a seed run did.
type seedResult struct {
	UsersCreated    int
	UsersSkipped    int
	ProductsCreated int
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load users and products from a YAML fixture",
		Long: `seed inserts the users and products listed in a YAML fixture:

  users:
    - id: 0b6f3c1e-6a43-4d59-9d0e-5d7f3f1b9c21   # optional, usually the token subject
      email: ada@example.com
      name: Ada
  products:
    - name: Keyboard
      description: Mechanical, tenkeyless
      price_cents: 8999
      stock: 12

Users whose email already exists are skipped. Products are always inserted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			fixture, err := loadSeedFile(args[0])
			if err != nil {
				return err
			}

			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(ctx, cfg.Database, log)
			if err != nil {
				return err
			}

			app, err := newApplication(ctx, cfg, log, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.cleanup()

			res, err := seed(ctx, fixture, app.userService, app.catalogService, log)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "users: %d created, %d skipped; products: %d created\n",
				res.UsersCreated, res.UsersSkipped, res.ProductsCreated)
			return nil
		},
	}
}

// loadSeedFile reads and decodes a fixture from path.
func loadSeedFile(path string) (*seedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return decodeSeedFile(bytes.NewReader(data))
}

// decodeSeedFile decodes a fixture, rejecting unknown keys.
func decodeSeedFile(r io.Reader) (*seedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f seedFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &f, nil
}

// seed creates the fixture's users and products. Users that already exist
// are skipped; any other failure stops the run.
func seed(
	ctx context.Context,
	f *seedFile,
	users service.UserService,
	catalog service.CatalogService,
	logger *slog.Logger,
) (*seedResult, error) {
	res := &seedResult{}

	for i, u := range f.Users {
		var err error
		if u.ID != "" {
			id, parseErr := uuid.Parse(u.ID)
			if parseErr != nil {
				return res, fmt.Errorf("users[%d]: invalid id %q: %w", i, u.ID, parseErr)
			}
			_, err = users.RegisterUser(ctx, id, u.Email, u.Name)
		} else {
			_, err = users.CreateUser(ctx, u.Email, u.Name)
		}

		switch {
		case err == nil:
			res.UsersCreated++
		case store.IsDuplicateError(err):
			res.UsersSkipped++
			logger.Info("skipping existing user", slog.Int("index", i))
		default:
			return res, fmt.Errorf("users[%d]: %w", i, err)
		}
	}

	for i, p := range f.Products {
		if _, err := catalog.CreateProduct(ctx, p.Name, p.Description, p.PriceCents, p.Stock); err != nil {
			return res, fmt.Errorf("products[%d]: %w", i, err)
		}
		res.ProductsCreated++
	}

	logger.Info("seed completed",
		slog.Int("users_created", res.UsersCreated),
		slog.Int("users_skipped", res.UsersSkipped),
		slog.Int("products_created", res.ProductsCreated))
	return res, nil
}
