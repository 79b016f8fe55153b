package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/globalyuen/achievepack-sub004/internal/config"
	"github.com/globalyuen/achievepack-sub004/internal/mailer"
	"github.com/globalyuen/achievepack-sub004/internal/outbox"
	"github.com/globalyuen/achievepack-sub004/internal/store"
)

func main() {
	addUserCmd := flag.NewFlagSet("add-user", flag.ExitOnError)
	username := addUserCmd.String("username", "", "Username for the new admin user")
	password := addUserCmd.String("password", "", "Password for the new admin user")

	testSendCmd := flag.NewFlagSet("test-send", flag.ExitOnError)
	testEmail := testSendCmd.String("email", "", "Address to send the test email to")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-user', 'drain-outbox' or 'test-send' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-user":
		addUserCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addUserCmd.PrintDefaults()
			os.Exit(1)
		}
		createUser(*username, *password)
	case "drain-outbox":
		drainOutbox()
	case "test-send":
		testSendCmd.Parse(os.Args[2:])
		if *testEmail == "" {
			fmt.Println("email is required")
			testSendCmd.PrintDefaults()
			os.Exit(1)
		}
		testSend(*testEmail)
	default:
		fmt.Println("expected 'add-user', 'drain-outbox' or 'test-send' subcommand")
		os.Exit(1)
	}
}

func openStore() *store.Store {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	// Ensure schema exists if running cli before server
	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createUser(username, password string) {
	db := openStore()
	defer db.Close()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	if err := db.CreateUser(context.Background(), username, string(hashedPassword)); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User '%s' created successfully.\n", username)
}

// drainOutbox runs a single delivery pass over the pending notifications.
// Useful when the server is down but customers are waiting on status emails.
func drainOutbox() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db := openStore()
	defer db.Close()

	client := newMailClient(cfg)
	outboxStore := outbox.NewStore(db.DB)
	processor := outbox.NewProcessor(outboxStore, &outbox.EmailSender{Client: client}, cfg.OutboxInterval, slog.Default())

	ctx := context.Background()
	before, _ := outboxStore.CountPending(ctx)
	if err := processor.RunOnce(ctx); err != nil {
		log.Fatalf("Outbox pass failed: %v", err)
	}
	after, _ := outboxStore.CountPending(ctx)

	fmt.Printf("Outbox drained: %d pending before, %d pending after.\n", before, after)
}

func testSend(email string) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := newMailClient(cfg)
	_, err = client.SendOne(context.Background(), mailer.Recipient{Email: email},
		"Delivery test", "<p>Hi {{name}},</p><p>This is a delivery test. If you can read this, outgoing mail works.</p>")
	if err != nil {
		log.Fatalf("Test send failed: %v", err)
	}

	fmt.Printf("Test email sent to %s.\n", email)
}

func newMailClient(cfg *config.Config) *mailer.Client {
	return mailer.NewClient(mailer.ClientConfig{
		BaseURL:      cfg.BrevoBaseURL,
		APIKey:       cfg.BrevoAPIKey,
		SenderEmail:  cfg.SenderEmail,
		SenderName:   cfg.SenderName,
		ReplyToEmail: cfg.ReplyToEmail,
		ReplyToName:  cfg.ReplyToName,
	}, slog.Default())
}
