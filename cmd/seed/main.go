package main

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendtrack/internal/config"
	"spendtrack/internal/db"
	"spendtrack/internal/model"
	"spendtrack/internal/repository"
)

const (
	demoEmail    = "demo@spendtrack.local"
	demoPassword = "password1"
	demoName     = "Demo User"
)

type seedCategory struct {
	Name  string
	Color string
}

type seedExpense struct {
	AmountCents int64
	Note        string
	DayOfMonth  int
	Category    string // empty means uncategorized
}

var seedCategories = []seedCategory{
	{Name: "Groceries", Color: "green"},
	{Name: "Transport", Color: "blue"},
	{Name: "Dining", Color: "amber"},
	{Name: "Utilities", Color: "slate"},
}

var seedExpenses = []seedExpense{
	{AmountCents: 4250, Note: "weekly shop", DayOfMonth: 1, Category: "Groceries"},
	{AmountCents: 1200, Note: "metro card top-up", DayOfMonth: 3, Category: "Transport"},
	{AmountCents: 8900, Note: "dinner out", DayOfMonth: 5, Category: "Dining"},
	{AmountCents: 150000, Note: "electricity bill", DayOfMonth: 10, Category: "Utilities"},
	{AmountCents: 3675, Note: "weekly shop", DayOfMonth: 8, Category: "Groceries"},
	{AmountCents: 999, Note: "", DayOfMonth: 14, Category: ""},
	{AmountCents: 2500, Note: "taxi", DayOfMonth: 21, Category: "Transport"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Expense{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	expenseRepo := repository.NewExpenseRepository(gormDB)

	user, err := ensureDemoUser(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", user.Email, user.ID)

	categories, created, err := ensureCategories(ctx, categoryRepo, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}
	log.Printf("Categories ready: %d total, %d created", len(categories), created)

	inserted, err := seedMonthOfExpenses(ctx, expenseRepo, user.ID, categories)
	if err != nil {
		log.Fatalf("Failed to seed expenses: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Expenses inserted this run: %d", inserted)
	log.Printf("  - Sign in with %s / %s", demoEmail, demoPassword)
}

func ensureDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        demoEmail,
		Name:         demoName,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func ensureCategories(ctx context.Context, repo repository.CategoryRepository, userID uuid.UUID) (map[string]uuid.UUID, int, error) {
	byName := make(map[string]uuid.UUID, len(seedCategories))
	created := 0
	for _, sc := range seedCategories {
		existing, err := repo.FindOwnedByName(ctx, userID, sc.Name)
		if err == nil {
			byName[sc.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, created, err
		}
		category := &model.Category{UserID: userID, Name: sc.Name, Color: sc.Color}
		if err := repo.Create(ctx, category); err != nil {
			return nil, created, err
		}
		byName[sc.Name] = category.ID
		created++
	}
	return byName, created, nil
}

// seedMonthOfExpenses writes the sample expenses into the current calendar
// month. Re-running the seed inserts a fresh batch; it makes no attempt to
// dedupe sample data.
func seedMonthOfExpenses(ctx context.Context, repo repository.ExpenseRepository, userID uuid.UUID, categories map[string]uuid.UUID) (int, error) {
	today := model.Today()
	inserted := 0
	for _, se := range seedExpenses {
		spentAt := model.NewDate(today.Year(), today.Month(), se.DayOfMonth)

		expense := &model.Expense{
			UserID:      userID,
			AmountCents: se.AmountCents,
			Currency:    model.DefaultCurrency,
			Note:        se.Note,
			SpentAt:     spentAt,
		}
		if se.Category != "" {
			if id, ok := categories[se.Category]; ok {
				categoryID := id
				expense.CategoryID = &categoryID
			}
		}
		if err := repo.Create(ctx, expense); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
