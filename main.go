package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/asaidimu/go-rowwise/core/expr"
	"github.com/asaidimu/go-rowwise/core/frame"
	"github.com/asaidimu/go-rowwise/core/transform"
	"github.com/asaidimu/go-rowwise/sqlite"
	"github.com/asaidimu/go-rowwise/utils"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const dbFileName = "products.db"

// Product is the record type this demo ingests into a frame.
type Product struct {
	SKU    string  `json:"sku"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Stock  int64   `json:"stock"`
	Active bool    `json:"active"`
}

func main() {
	// --- Database Initialization ---
	// Remove the database file if it already exists to start fresh
	if err := os.Remove(dbFileName); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing database file %s: %v", dbFileName, err)
	}
	fmt.Printf("Starting fresh: removed existing %s (if any).\n", dbFileName)

	// Open SQLite database connection to a file
	db, err := sql.Open("sqlite3", dbFileName)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}

	defer func() {
		if cErr := db.Close(); cErr != nil {
			log.Printf("Error closing database connection: %v", cErr)
		}
		fmt.Println("Database connection closed.")
	}()

	store := sqlite.NewStore(db, nil, nil, nil)

	// Initialize the transformation pipeline
	pipeline, err := transform.NewPipeline(nil)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer pipeline.Close()
	fmt.Println("Initialized pipeline.")
	// --- End Database Initialization ---

	pipeline.RegisterSubscription(transform.RegisterSubscriptionOptions{
		Event: transform.ApplySuccess,
		Callback: func(ctx context.Context, event transform.Event) error {
			plan := ""
			if event.Plan != nil {
				plan = *event.Plan
			}
			fmt.Printf("Event %s: %s\n", event.Type, plan)
			return nil
		},
	})

	pipeline.RegisterSubscription(transform.RegisterSubscriptionOptions{
		Event: transform.EvaluateSuccess,
		Callback: func(ctx context.Context, event transform.Event) error {
			expression := ""
			if event.Expression != nil {
				expression = *event.Expression
			}
			fmt.Printf("Event %s: %s\n", event.Type, expression)
			return nil
		},
	})

	// Helper to print a frame as a table
	printFrame := func(fr *frame.Frame) {
		names := fr.Names()
		line := strings.Repeat("-", 15*len(names))
		fmt.Println(line)
		for _, name := range names {
			fmt.Printf("%-14s ", name)
		}
		fmt.Println()
		fmt.Println(line)
		for i := 0; i < fr.Len(); i++ {
			row := fr.Row(i)
			for _, name := range names {
				fmt.Printf("%-14v ", row[name])
			}
			fmt.Println()
		}
		fmt.Println(line)
	}

	// --- Ingest Records Into a Frame ---
	fmt.Println("Ingesting product records into a frame...")
	products := []Product{
		{SKU: "A-100", Name: "Keyboard", Price: 16.0, Stock: 40, Active: true},
		{SKU: "A-200", Name: "Mouse", Price: 8.5, Stock: 120, Active: true},
		{SKU: "B-300", Name: "Monitor", Price: 40.0, Stock: 8, Active: true},
		{SKU: "B-400", Name: "Webcam", Price: 12.0, Stock: 25, Active: false},
		{SKU: "C-500", Name: "Cable", Price: 5.25, Stock: 300, Active: true},
	}

	rows, err := utils.StructsToMaps(products)
	if err != nil {
		log.Fatalf("Failed to convert products to maps: %v", err)
	}

	fr, err := frame.FromMaps(rows, "sku", "name", "price", "stock", "active")
	if err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}
	fmt.Printf("Built %s\n", fr)

	validation := fr.Validate()
	if !validation.Valid {
		fmt.Println("Validation failed! Issues found:")
		for _, issue := range validation.Issues {
			fmt.Printf("  Code: %s, Message: %s, Path: %s, Severity: %s\n",
				issue.Code, issue.Message, issue.Path, issue.Severity)
		}
	} else {
		fmt.Println("Validation successful!")
	}

	printFrame(fr)
	// --- End Ingest Records Into a Frame ---

	// --- Row-Wise Evaluation ---
	fmt.Println("\nEvaluating stock value (price * stock) per product:")
	stockValue := expr.NewMult(expr.NewName("price"), expr.NewName("stock"))

	result, err := pipeline.Evaluate(fr, stockValue, nil)
	if err != nil {
		log.Fatalf("Failed to evaluate stock value: %v", err)
	}
	for i, value := range result.Values {
		fmt.Printf("%-14s %v\n", products[i].SKU, value)
	}
	// --- End Row-Wise Evaluation ---

	// --- Plan Application ---
	// The discount rate and stock floor come from an enclosing scope rather
	// than from the frame itself.
	fmt.Println("\nApplying a sale plan to active, stocked products:")
	policy := expr.NewScope(map[string]any{
		"discount": 0.25,
		"floor":    int64(10),
	}, nil)

	salePlan := transform.NewPlanBuilder().
		Where(expr.NewAnd(
			expr.NewName("active"),
			expr.NewGreaterThanOrEqual(expr.NewName("stock"), expr.NewName("floor")),
		)).
		Mutate("sale_price", expr.NewMult(
			expr.NewName("price"),
			expr.NewMinus(expr.NewLiteral(1.0), expr.NewName("discount")),
		)).
		Select().
		Include("sku", "name", "price", "sale_price").
		Rename("sale_price", "promo_price").
		End().
		Build()

	sale, err := pipeline.Apply(fr, &salePlan, policy)
	if err != nil {
		log.Fatalf("Failed to apply sale plan: %v", err)
	}
	printFrame(sale)
	// --- End Plan Application ---

	// --- Persistence Round Trip ---
	ctx := context.Background()

	fmt.Println("\nSaving the frame to SQLite and loading it back:")
	if err := store.Save(ctx, "products", fr); err != nil {
		log.Fatalf("Failed to save frame: %v", err)
	}

	loaded, err := store.Load(ctx, "products")
	if err != nil {
		log.Fatalf("Failed to load frame: %v", err)
	}
	printFrame(loaded)
	fmt.Printf("Round trip faithful: %t\n", fr.Equal(loaded))

	fmt.Println("\nQuerying the stored frame with plain SQL:")
	cheap, err := store.Query(ctx, "SELECT sku, name, price FROM products WHERE price < ? ORDER BY price;", 12.0)
	if err != nil {
		log.Fatalf("Failed to query products: %v", err)
	}
	printFrame(cheap)
	// --- End Persistence Round Trip ---

	// --- Transactional Writes ---
	txStore, err := store.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	if err := txStore.Save(ctx, "products_backup", sale); err != nil {
		txStore.Rollback()
		log.Fatalf("Failed to save backup frame: %v", err)
	}
	if err := txStore.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	exists, err := store.Exists(ctx, "products_backup")
	if err != nil {
		log.Fatalf("Failed to check for backup table: %v", err)
	}
	fmt.Printf("\nBackup table created inside a transaction: %t\n", exists)
	// --- End Transactional Writes ---

	// --- Instructions ---
	fmt.Printf("\nDatabase created successfully at: %s\n", dbFileName)
	fmt.Println("You can inspect this database file using the 'sqlite3' command-line tool:")
	fmt.Printf("1. Open your terminal.\n")
	fmt.Printf("2. Navigate to the directory where 'main.go' and '%s' are located.\n", dbFileName)
	fmt.Printf("3. Run: sqlite3 %s\n", dbFileName)
	fmt.Printf("4. Inside the sqlite3 prompt, you can run SQL commands:\n")
	fmt.Printf("    - .tables (to list tables)\n")
	fmt.Printf("    - .schema products (to view table schema)\n")
	fmt.Printf("    - SELECT * FROM products; (to view data)\n")
	fmt.Printf("    - .quit (to exit)\n")
	// --- End Instructions ---

	// Drop the demo tables
	fmt.Println("Dropping demo tables...")
	if err := store.Drop(ctx, "products"); err != nil {
		log.Fatalf("Failed to drop products table: %v", err)
	}
	if err := store.Drop(ctx, "products_backup"); err != nil {
		log.Fatalf("Failed to drop backup table: %v", err)
	}
	fmt.Println("Dropped demo tables.")
}
