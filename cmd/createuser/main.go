package main

import (
	"flag"
	"fmt"
	"os"

	"fintrack/internal/database"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	username := flag.String("username", "", "login name (required)")
	email := flag.String("email", "", "email address")
	password := flag.String("password", "", "plaintext password (required)")
	superuser := flag.Bool("superuser", false, "grant superuser rights")
	staff := flag.Bool("staff", false, "mark as staff")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createuser -username <name> -password <pw> [-email <addr>] [-superuser] [-staff]")
		os.Exit(2)
	}

	if err := run(*username, *email, *password, *superuser, *staff); err != nil {
		logger.Get().Fatalf("createuser: %v", err)
	}
}

func run(username, email, password string, superuser, staff bool) error {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	userService := services.NewUserService(dbManager.DB())
	user, err := userService.CreateUser(username, email, password, superuser, staff)
	if err != nil {
		return err
	}

	logger.Get().Infof("Created user %s (id=%d, superuser=%v)", user.Username, user.ID, user.IsSuperuser)
	return nil
}
