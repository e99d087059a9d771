package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"realty-crm.backend/internal/config"
	"realty-crm.backend/internal/domain/entities"
	domainerrors "realty-crm.backend/internal/domain/errors"
	domainrepo "realty-crm.backend/internal/domain/repositories"
	"realty-crm.backend/internal/infrastructure/repositories"
	"realty-crm.backend/pkg/crypto"
	"realty-crm.backend/pkg/utils"
)

var openSeedDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false, TranslateError: true})
}

var openSeedSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type adminSeedRuntime interface {
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

type adminSeedDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (adminSeedRuntime, io.Closer, error)
	out     io.Writer
}

type adminSeedRuntimeImpl struct {
	userRepo domainrepo.UserRepository
}

func (r adminSeedRuntimeImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.userRepo.GetByEmail(ctx, email)
}

func (r adminSeedRuntimeImpl) Create(ctx context.Context, user *entities.User) error {
	return r.userRepo.Create(ctx, user)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultAdminSeedDeps() adminSeedDeps {
	return adminSeedDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (adminSeedRuntime, io.Closer, error) {
			dsn := cfg.Database.URL()
			db, err := openSeedDB(dsn)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openSeedSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			return adminSeedRuntimeImpl{
				userRepo: repositories.NewUserRepository(db),
			}, sqlDB, nil
		},
		out: os.Stdout,
	}
}

func runAdminSeed(args []string, deps adminSeedDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultAdminSeedDeps()
		deps.prepare = def.prepare
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("admin-seed", flag.ContinueOnError)
	emailFlag := fs.String("email", "", "admin email (required)")
	passwordFlag := fs.String("password", "", "admin password (required)")
	nameFlag := fs.String("name", "Platform Admin", "admin display name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *emailFlag == "" {
		return fmt.Errorf("--email is required")
	}
	if *passwordFlag == "" {
		return fmt.Errorf("--password is required")
	}
	if err := crypto.ValidatePasswordStrength(*passwordFlag); err != nil {
		return fmt.Errorf("weak password: %w", err)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	ctx := context.Background()
	if existing, err := runtime.GetByEmail(ctx, *emailFlag); err == nil {
		return fmt.Errorf("user %s already exists (role=%s)", existing.Email, existing.Role)
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := crypto.HashPassword(*passwordFlag)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		ID:            utils.GenerateUUIDv7(),
		Email:         *emailFlag,
		PasswordHash:  hash,
		FullName:      *nameFlag,
		Role:          entities.UserRoleAdmin,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := runtime.Create(ctx, user); err != nil {
		return fmt.Errorf("failed creating admin user: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created admin account")
	_, _ = fmt.Fprintf(deps.out, "user_id=%s\n", user.ID.String())
	_, _ = fmt.Fprintf(deps.out, "email=%s\n", user.Email)
	return nil
}

func main() {
	if err := runAdminSeed(os.Args[1:], defaultAdminSeedDeps()); err != nil {
		log.Fatal(err)
	}
}
