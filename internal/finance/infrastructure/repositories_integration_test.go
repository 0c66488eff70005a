package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/fintrackapp/fintrack/db"
	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
)

// setupTestDB starts a throwaway Postgres container and applies the real
// migrations, so the repositories run against the same schema as production.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("fintrack_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})

	require.NoError(t, db.Ping())
	require.NoError(t, database.RunMigrations(db))
	return db
}

func createTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	userID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO users (id, name, email, password_hash) VALUES ($1, $2, $3, $4)`,
		userID, "Integration Tester", userID+"@example.com", "not-a-real-hash",
	)
	require.NoError(t, err)
	return userID
}

func TestRepositoriesIntegration(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	otherUserID := createTestUser(t, db)

	categoryRepo := NewCategoryRepository(db)
	accountRepo := NewAccountRepository(db)
	transactionRepo := NewTransactionRepository(db)
	goalRepo := NewGoalRepository(db)
	scoreRuleRepo := NewScoreRuleRepository(db)

	groceries := &domain.Category{UserID: userID, Name: "Groceries"}
	rent := &domain.Category{UserID: userID, Name: "Rent"}
	wallet := &domain.Account{UserID: userID, Name: "Wallet", Type: "cash"}

	t.Run("categories", func(t *testing.T) {
		require.NoError(t, categoryRepo.Save(groceries))
		assert.Greater(t, groceries.ID, 0)
		require.NoError(t, categoryRepo.Save(rent))

		// Same name for the same user hits the unique constraint.
		err := categoryRepo.Save(&domain.Category{UserID: userID, Name: "Groceries"})
		assert.ErrorIs(t, err, financeErrors.ErrConflict)

		// The same name for another user is fine.
		require.NoError(t, categoryRepo.Save(&domain.Category{UserID: otherUserID, Name: "Groceries"}))

		found, err := categoryRepo.FindByName(userID, "Groceries")
		require.NoError(t, err)
		assert.Equal(t, groceries.ID, found.ID)

		_, err = categoryRepo.FindByID(otherUserID, groceries.ID)
		assert.ErrorIs(t, err, financeErrors.ErrNotFound)

		exists, err := categoryRepo.ExistsByName(userID, "Rent", rent.ID)
		require.NoError(t, err)
		assert.False(t, exists, "excluding its own id should not count as a duplicate")
	})

	t.Run("accounts", func(t *testing.T) {
		require.NoError(t, accountRepo.Save(wallet))
		assert.Greater(t, wallet.ID, 0)

		count, err := accountRepo.CountByUser(userID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		found, err := accountRepo.FindByName(userID, "Wallet")
		require.NoError(t, err)
		assert.Equal(t, "cash", found.Type)

		err = accountRepo.Save(&domain.Account{UserID: userID, Name: "Wallet", Type: "bank"})
		assert.ErrorIs(t, err, financeErrors.ErrConflict)
	})

	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)

	seed := func(day int, description, txType string, amount float64, categoryID *int) domain.Transaction {
		transaction := domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Description: description,
			Amount:      amount,
			Type:        txType,
			Date:        time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC),
			CategoryID:  categoryID,
			AccountID:   &wallet.ID,
		}
		require.NoError(t, transactionRepo.Save(transaction))
		return transaction
	}

	t.Run("transactions", func(t *testing.T) {
		salary := seed(1, "Salary", domain.TypeCredit, 3000, nil)
		seed(5, "Supermarket", domain.TypeDebit, 200.50, &groceries.ID)
		seed(10, "Rent March", domain.TypeDebit, 1200, &rent.ID)
		seed(20, "Bakery", domain.TypeDebit, 49.50, &groceries.ID)

		found, err := transactionRepo.FindByID(userID, salary.ID)
		require.NoError(t, err)
		assert.Equal(t, "Salary", found.Description)
		assert.True(t, found.Date.Equal(salary.Date))

		_, err = transactionRepo.FindByID(otherUserID, salary.ID)
		assert.ErrorIs(t, err, financeErrors.ErrNotFound)

		filter := domain.TransactionFilter{Type: domain.TypeDebit, StartDate: &march, EndDate: &april}
		listed, err := transactionRepo.FindByUser(userID, filter, 10, 0)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "Bakery", listed[0].Description, "listing is date descending")

		count, err := transactionRepo.CountByUser(userID, filter)
		require.NoError(t, err)
		assert.Equal(t, 3, count)

		debits, err := transactionRepo.SumByTypeInRange(userID, domain.TypeDebit, march, april)
		require.NoError(t, err)
		assert.InDelta(t, 1450.0, debits, 0.001)

		breakdown, err := transactionRepo.SumDebitsByCategoryInRange(userID, march, april)
		require.NoError(t, err)
		require.Len(t, breakdown, 2)
		assert.Equal(t, "Groceries", breakdown[0].CategoryName)
		assert.InDelta(t, 250.0, breakdown[0].Amount, 0.001)

		spent, err := transactionRepo.SumDebitsForCategoryInRange(userID, rent.ID, march, april)
		require.NoError(t, err)
		assert.InDelta(t, 1200.0, spent, 0.001)

		referenced, err := transactionRepo.ExistsByCategory(userID, groceries.ID)
		require.NoError(t, err)
		assert.True(t, referenced)

		salary.Description = "Salary March"
		require.NoError(t, transactionRepo.Update(salary))
		found, err = transactionRepo.FindByID(userID, salary.ID)
		require.NoError(t, err)
		assert.Equal(t, "Salary March", found.Description)

		err = transactionRepo.Delete(otherUserID, salary.ID)
		assert.ErrorIs(t, err, financeErrors.ErrNotFound)
		require.NoError(t, transactionRepo.Delete(userID, salary.ID))
		_, err = transactionRepo.FindByID(userID, salary.ID)
		assert.ErrorIs(t, err, financeErrors.ErrNotFound)
	})

	t.Run("transactions in a database transaction", func(t *testing.T) {
		before, err := transactionRepo.CountByUser(userID, domain.TransactionFilter{})
		require.NoError(t, err)

		tx, err := transactionRepo.BeginTransaction()
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			imported := domain.Transaction{
				ID:          uuid.NewString(),
				UserID:      userID,
				Description: "Imported",
				Amount:      10,
				Type:        domain.TypeDebit,
				Date:        march,
			}
			require.NoError(t, transactionRepo.SaveWithTransaction(imported, tx))
		}
		require.NoError(t, tx.Commit())

		after, err := transactionRepo.CountByUser(userID, domain.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, before+2, after)
	})

	t.Run("goals", func(t *testing.T) {
		monthTag := "2026-03"
		tagged := &domain.Goal{
			UserID: userID, Name: "March budget", Kind: domain.GoalMonthlySpend,
			TargetAmount: 2000, MonthTag: &monthTag,
		}
		require.NoError(t, goalRepo.Save(tagged))
		assert.Greater(t, tagged.ID, 0)
		assert.False(t, tagged.CreatedAt.IsZero())

		untagged := &domain.Goal{
			UserID: userID, Name: "Emergency fund", Kind: domain.GoalSavings,
			TargetAmount: 500,
		}
		require.NoError(t, goalRepo.Save(untagged))

		goals, err := goalRepo.FindForMonth(userID, "2026-03")
		require.NoError(t, err)
		assert.Len(t, goals, 2)

		goals, err = goalRepo.FindForMonth(userID, "2026-04")
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Emergency fund", goals[0].Name)
	})

	t.Run("score rules", func(t *testing.T) {
		rule := &domain.ScoreRule{
			UserID: userID, CategoryID: groceries.ID,
			MonthlyLimit: 300, WarningPct: 0.80, Active: true,
		}
		require.NoError(t, scoreRuleRepo.Save(rule))
		assert.Greater(t, rule.ID, 0)

		err := scoreRuleRepo.Save(&domain.ScoreRule{
			UserID: userID, CategoryID: groceries.ID,
			MonthlyLimit: 100, WarningPct: 0.50, Active: true,
		})
		assert.ErrorIs(t, err, financeErrors.ErrConflict, "one rule per category per user")

		inactive := &domain.ScoreRule{
			UserID: userID, CategoryID: rent.ID,
			MonthlyLimit: 1500, WarningPct: 0.90, Active: false,
		}
		require.NoError(t, scoreRuleRepo.Save(inactive))

		active, err := scoreRuleRepo.FindActiveWithCategory(userID)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "Groceries", active[0].CategoryName)
		assert.InDelta(t, 300.0, active[0].MonthlyLimit, 0.001)

		rule.MonthlyLimit = 350
		require.NoError(t, scoreRuleRepo.Update(*rule))
		updated, err := scoreRuleRepo.FindByID(userID, rule.ID)
		require.NoError(t, err)
		assert.InDelta(t, 350.0, updated.MonthlyLimit, 0.001)

		require.NoError(t, scoreRuleRepo.Delete(userID, rule.ID))
		_, err = scoreRuleRepo.FindByID(userID, rule.ID)
		assert.ErrorIs(t, err, financeErrors.ErrNotFound)
	})
}
