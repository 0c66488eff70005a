package application

import (
	"math"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
)

// Dashboard is the chart-ready monthly report: lifetime totals, month totals,
// the expense breakdown by category, the cumulative daily balance series and
// the progress of every goal bound to the month.
type Dashboard struct {
	Month             string                  `json:"month"`
	TotalCredit       float64                 `json:"total_credit"`
	TotalDebit        float64                 `json:"total_debit"`
	Balance           float64                 `json:"balance"`
	MonthCredit       float64                 `json:"month_credit"`
	MonthDebit        float64                 `json:"month_debit"`
	CategoryBreakdown []domain.CategoryAmount `json:"category_breakdown"`
	DailyBalances     []DailyBalance          `json:"daily_balances"`
	Goals             []GoalProgress          `json:"goals"`
}

type DailyBalance struct {
	Date    string  `json:"date"`
	Balance float64 `json:"balance"`
}

type GoalProgress struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Kind       string  `json:"kind"`
	CategoryID *int    `json:"category_id,omitempty"`
	Target     float64 `json:"target"`
	Current    float64 `json:"current"`
	Percent    float64 `json:"percent"`
}

type DashboardService struct {
	transactions domain.TransactionRepository
	goals        domain.GoalRepository
}

func NewDashboardService(transactions domain.TransactionRepository, goals domain.GoalRepository) *DashboardService {
	return &DashboardService{transactions: transactions, goals: goals}
}

// GetDashboard recomputes the whole report from the database on every call.
func (s *DashboardService) GetDashboard(userID, monthTag string) (*Dashboard, error) {
	window := MonthWindowFromTag(monthTag)

	totalCredit, err := s.transactions.SumByType(userID, domain.TypeCredit)
	if err != nil {
		return nil, err
	}
	totalDebit, err := s.transactions.SumByType(userID, domain.TypeDebit)
	if err != nil {
		return nil, err
	}
	monthCredit, err := s.transactions.SumByTypeInRange(userID, domain.TypeCredit, window.Start, window.Next)
	if err != nil {
		return nil, err
	}
	monthDebit, err := s.transactions.SumByTypeInRange(userID, domain.TypeDebit, window.Start, window.Next)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.transactions.SumDebitsByCategoryInRange(userID, window.Start, window.Next)
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		breakdown = []domain.CategoryAmount{}
	}

	daily, err := s.dailyBalances(userID, window)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalProgress(userID, window, monthCredit, monthDebit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Month:             window.Tag,
		TotalCredit:       totalCredit,
		TotalDebit:        totalDebit,
		Balance:           totalCredit - totalDebit,
		MonthCredit:       monthCredit,
		MonthDebit:        monthDebit,
		CategoryBreakdown: breakdown,
		DailyBalances:     daily,
		Goals:             goals,
	}, nil
}

// dailyBalances accumulates signed per-day deltas into a running balance with
// one point for every calendar day of the month, zero-delta days included.
func (s *DashboardService) dailyBalances(userID string, window MonthWindow) ([]DailyBalance, error) {
	transactions, err := s.transactions.FindInRange(userID, window.Start, window.Next)
	if err != nil {
		return nil, err
	}

	deltas := make(map[string]float64)
	for _, transaction := range transactions {
		day := transaction.Date.UTC().Format("2006-01-02")
		if transaction.Type == domain.TypeCredit {
			deltas[day] += transaction.Amount
		} else {
			deltas[day] -= transaction.Amount
		}
	}

	series := make([]DailyBalance, 0, window.Days())
	running := 0.0
	for day := window.Start; day.Before(window.Next); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		running += deltas[key]
		series = append(series, DailyBalance{Date: key, Balance: running})
	}
	return series, nil
}

func (s *DashboardService) goalProgress(userID string, window MonthWindow, monthCredit, monthDebit float64) ([]GoalProgress, error) {
	goals, err := s.goals.FindForMonth(userID, window.Tag)
	if err != nil {
		return nil, err
	}

	progress := make([]GoalProgress, 0, len(goals))
	for _, goal := range goals {
		var current float64
		switch goal.Kind {
		case domain.GoalMonthlySpend:
			current = monthDebit
		case domain.GoalSavings:
			current = monthCredit - monthDebit
		case domain.GoalCategorySpend:
			if goal.CategoryID == nil {
				continue
			}
			current, err = s.transactions.SumDebitsForCategoryInRange(userID, *goal.CategoryID, window.Start, window.Next)
			if err != nil {
				return nil, err
			}
		default:
			continue
		}

		progress = append(progress, GoalProgress{
			ID:         goal.ID,
			Name:       goal.Name,
			Kind:       goal.Kind,
			CategoryID: goal.CategoryID,
			Target:     goal.TargetAmount,
			Current:    current,
			Percent:    goalPercent(current, goal.TargetAmount),
		})
	}
	return progress, nil
}

// goalPercent clamps progress into [0, 100] and reports 0 for non-positive
// targets.
func goalPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	percent := current / target * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return math.Round(percent*10) / 10
}
