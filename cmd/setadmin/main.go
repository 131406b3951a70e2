package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	identityapp "github.com/peeves/backend/internal/application/identity"
	"github.com/peeves/backend/internal/infrastructure/config"
	"github.com/peeves/backend/internal/infrastructure/logger"
	"github.com/peeves/backend/internal/infrastructure/persistence"
)

func main() {
	var (
		email   string
		enable  bool
		disable bool
	)

	flag.StringVar(&email, "email", "", "Email of the account to change")
	flag.BoolVar(&enable, "enable", false, "Grant the admin claim")
	flag.BoolVar(&disable, "disable", false, "Revoke the admin claim")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	if email == "" {
		log.Fatal("Email required. Usage: setadmin --email <email> --enable|--disable")
	}
	if enable == disable {
		log.Fatal("Exactly one of --enable or --disable is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	userRepo := persistence.NewGormUserRepository(db.DB)
	accountService := identityapp.NewAccountService(userRepo, log)

	user, err := accountService.SetAdminByEmail(context.Background(), identityapp.SetAdminRequest{
		Email:   email,
		Enabled: enable,
	})
	if err != nil {
		log.Fatal("Failed to update admin claim", zap.Error(err))
	}

	// The new claim is only embedded in tokens issued after this point
	log.Info("Admin claim updated",
		zap.String("email", user.Email),
		zap.Bool("admin", user.Admin),
	)
	fmt.Println("The change takes effect on the user's next login.")
}
