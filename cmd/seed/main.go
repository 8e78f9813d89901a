// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"posadmin/internal/core/id"
	"posadmin/internal/infrastructure/storage/postgres"
	"posadmin/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}
	if err := seedDefaultBranch(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed default branch", "error", err)
	}
	if err := seedBaseCatalogs(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed base catalogs", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@posadmin.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, name, role, branch_id,
			is_active, failed_login_attempts, created_at, updated_at, version
		)
		VALUES ($1, $2, $3, 'System Admin', 'admin', NULL, true, 0, $4, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDefaultBranch(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	now := time.Now().UTC()

	tag, err := pool.Pool.Exec(ctx, `
		INSERT INTO cat_branches (
			id, code, name, address, phone, is_active, is_default,
			deletion_mark, version, created_at, updated_at
		)
		VALUES ($1, 'MAIN', 'Main Branch', NULL, NULL, true, true, false, 1, $2, $2)
		ON CONFLICT (code) DO NOTHING
	`, id.New(), now)
	if err != nil {
		return fmt.Errorf("insert default branch: %w", err)
	}

	if tag.RowsAffected() > 0 {
		log.Info("default branch created")
	}
	return nil
}

func seedBaseCatalogs(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	now := time.Now().UTC()

	units := []struct {
		code, name, abbr string
		fractions        bool
	}{
		{"PCS", "Pieces", "pcs", false},
		{"KG", "Kilogram", "kg", true},
		{"L", "Liter", "l", true},
		{"BOX", "Box", "box", false},
	}
	for _, u := range units {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_units (
				id, code, name, abbreviation, allow_fractions,
				deletion_mark, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, $5, false, 1, $6, $6)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), u.code, u.name, u.abbr, u.fractions, now)
		if err != nil {
			return fmt.Errorf("insert unit %s: %w", u.code, err)
		}
	}

	methods := []struct {
		code, name, mtype string
		requiresRef       bool
	}{
		{"CASH", "Cash", "cash", false},
		{"CARD", "Card", "card", true},
		{"EWALLET", "E-Wallet", "ewallet", true},
		{"TRANSFER", "Bank Transfer", "bank_transfer", true},
	}
	for _, m := range methods {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_payment_methods (
				id, code, name, type, is_active, requires_reference,
				deletion_mark, version, created_at, updated_at
			)
			VALUES ($1, $2, $3, $4, true, $5, false, 1, $6, $6)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), m.code, m.name, m.mtype, m.requiresRef, now)
		if err != nil {
			return fmt.Errorf("insert payment method %s: %w", m.code, err)
		}
	}

	log.Info("base catalogs seeded")
	return nil
}
