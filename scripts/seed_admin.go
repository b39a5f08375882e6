package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/efiling-api/config"
	"github.com/linesmerrill/efiling-api/databases"
	"github.com/linesmerrill/efiling-api/models"
	"github.com/linesmerrill/efiling-api/services"
)

// Creates the first admin account, which cannot be self registered
// Usage: go run scripts/seed_admin.go <full name> <email> <password>
func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run scripts/seed_admin.go <full name> <email> <password>")
		fmt.Println(`Example: go run scripts/seed_admin.go "Court Registrar" registrar@court.example 0i2rinbcp12yc31h`)
		os.Exit(1)
	}

	conf := config.New()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := databases.NewClient(conf)
	if err != nil {
		zap.S().Fatalw("failed to create client", "error", err)
	}
	if err := client.Connect(ctx); err != nil {
		zap.S().Fatalw("failed to connect to database", "error", err)
	}
	defer client.Disconnect(context.Background())

	db := databases.NewDatabase(conf, client)
	if err := databases.EnsureIndexes(ctx, db, conf.NationalIDScope); err != nil {
		zap.S().Fatalw("failed to ensure indexes", "error", err)
	}

	directory := services.NewDirectory(databases.NewUserDatabase(db), true)
	identity, err := directory.Register(ctx, services.RegisterInput{
		FullName: os.Args[1],
		Email:    os.Args[2],
		Password: os.Args[3],
		Role:     models.RoleAdmin,
	})
	if err != nil {
		zap.S().Fatalw("failed to create admin", "error", err)
	}
	fmt.Printf("Admin %s created with id %s\n", identity.Email, identity.ID)
}
