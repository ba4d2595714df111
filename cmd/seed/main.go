// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/Timbal-Mexico/barocerp-sub000/internal/core/id"
	"github.com/Timbal-Mexico/barocerp-sub000/internal/infrastructure/storage/postgres"
	"github.com/Timbal-Mexico/barocerp-sub000/pkg/logger"
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

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	if err := seedRolesAndPermissions(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed roles and permissions", "error", err)
	}

	if err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// permissionSeed describes one permission row.
type permissionSeed struct {
	code     string
	name     string
	resource string
	action   string
}

func crudPermissions(resource, label string, extra ...string) []permissionSeed {
	actions := append([]string{"read", "create", "update", "delete"}, extra...)
	perms := make([]permissionSeed, 0, len(actions))
	for _, action := range actions {
		perms = append(perms, permissionSeed{
			code:     resource + ":" + action,
			name:     label + " " + action,
			resource: resource,
			action:   action,
		})
	}
	return perms
}

func seedRolesAndPermissions(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	var perms []permissionSeed
	perms = append(perms, crudPermissions("catalog:product", "Products")...)
	perms = append(perms, crudPermissions("catalog:warehouse", "Warehouses")...)
	perms = append(perms, crudPermissions("catalog:lead", "Leads")...)
	perms = append(perms, crudPermissions("document:sale", "Sales", "post", "unpost")...)
	perms = append(perms, crudPermissions("document:goods_receipt", "Goods receipts", "post", "unpost")...)
	perms = append(perms,
		permissionSeed{"register:stock:read", "Stock register read", "register:stock", "read"},
		permissionSeed{"report:sales:read", "Sales reports read", "report:sales", "read"},
	)

	for _, p := range perms {
		_, err := pool.Exec(ctx, `
			INSERT INTO permissions (id, code, name, resource, action)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), p.code, p.name, p.resource, p.action)
		if err != nil {
			return fmt.Errorf("insert permission %s: %w", p.code, err)
		}
	}

	roles := []struct {
		code        string
		name        string
		description string
		isSystem    bool
	}{
		{"admin", "Administrator", "Full access to everything", true},
		{"manager", "Sales Manager", "Leads, sales and stock visibility", true},
		{"storekeeper", "Storekeeper", "Goods receipts and stock", true},
	}

	for _, r := range roles {
		_, err := pool.Exec(ctx, `
			INSERT INTO roles (id, code, name, description, is_system)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (code) DO NOTHING
		`, id.New(), r.code, r.name, r.description, r.isSystem)
		if err != nil {
			return fmt.Errorf("insert role %s: %w", r.code, err)
		}
	}

	// Role-permission grants. Admin bypasses permission checks so it gets
	// everything only for visibility in the UI.
	grants := map[string][]string{
		"admin": {"%"},
		"manager": {
			"catalog:product:%", "catalog:warehouse:read", "catalog:lead:%",
			"document:sale:%", "register:stock:read", "report:sales:read",
		},
		"storekeeper": {
			"catalog:product:read", "catalog:warehouse:%",
			"document:goods_receipt:%", "register:stock:read",
		},
	}

	for roleCode, patterns := range grants {
		for _, pattern := range patterns {
			_, err := pool.Exec(ctx, `
				INSERT INTO role_permissions (role_id, permission_id)
				SELECT r.id, p.id
				FROM roles r, permissions p
				WHERE r.code = $1 AND p.code LIKE $2
				ON CONFLICT DO NOTHING
			`, roleCode, pattern)
			if err != nil {
				return fmt.Errorf("grant %s to %s: %w", pattern, roleCode, err)
			}
		}
	}

	log.Infow("roles and permissions seeded", "permissions", len(perms), "roles", len(roles))
	return nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@barocerp.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND deleted_at IS NULL`,
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
	_, err = pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, 1)
	`, userID, adminEmail, string(passwordHash))
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE code = 'admin'
		ON CONFLICT DO NOTHING
	`, userID)
	if err != nil {
		log.Warnw("failed to assign admin role", "error", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// Warehouses
	warehouses := []struct {
		name      string
		address   string
		wType     string
		isDefault bool
	}{
		{"Main Warehouse", "Av. Revolucion 120, CDMX", "main", true},
		{"Downtown Store", "Calle Madero 5, CDMX", "retail", false},
		{"Transit", "Virtual", "transit", false},
	}

	for i, w := range warehouses {
		code := fmt.Sprintf("WH-%03d", i+1)
		_, err := pool.Exec(ctx, `
			INSERT INTO cat_warehouses (id, code, name, address, type, is_active, is_default, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, true, $6, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, id.New(), code, w.name, w.address, w.wType, w.isDefault)
		if err != nil {
			log.Warnw("failed to seed warehouse", "name", w.name, "error", err)
		}
	}

	// Products are inserted through the COPY protocol: bulk demo catalogs
	// are the seeder's hot path when loading real store assortments.
	products := []struct {
		name  string
		sku   string
		price string
	}{
		{"A4 Office Paper", "PAP-A4", "89.00"},
		{"Blue Ballpoint Pen", "PEN-BLU", "7.50"},
		{"Desktop Stapler", "STP-001", "120.00"},
		{"Paper Clips 28mm (100)", "CLP-028", "15.00"},
		{"Lever Arch Folder", "FOL-REG", "64.90"},
		{"Whiteboard Marker", "MRK-WB", "22.00"},
	}

	txManager := postgres.NewTxManager(pool)
	inserter := postgres.NewBatchInserter(txManager)

	rows := make([][]any, 0, len(products))
	for i, p := range products {
		price, err := decimal.NewFromString(p.price)
		if err != nil {
			return fmt.Errorf("parse price for %s: %w", p.sku, err)
		}
		rows = append(rows, []any{
			id.New(),
			fmt.Sprintf("PR-%05d", i+1),
			p.name,
			"goods",
			p.sku,
			price,
			true,
			false,
			1,
			false,
			[]byte("{}"),
		})
	}

	err := txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		inserted, err := inserter.CopyFromSlice(ctx, "cat_products",
			[]string{
				"id", "code", "name", "type", "sku", "unit_price",
				"is_active", "is_folder", "version", "deletion_mark",
				"attributes",
			}, rows)
		if err != nil {
			return err
		}
		log.Infow("products copied", "count", inserted)
		return nil
	})
	if err != nil {
		// COPY has no ON CONFLICT; a second run trips unique codes.
		log.Warnw("failed to bulk insert products (already seeded?)", "error", err)
	}

	log.Info("demo data seeded successfully")
	return nil
}
