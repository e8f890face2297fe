// Package calculator содержит чистые функции для бюджетных расчетов.
// Форматирование сумм остается на вызывающей стороне.
package calculator

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveMonths возвращается, когда срок цели не положителен
var ErrNonPositiveMonths = errors.New("months must be positive")

var (
	needsShare   = decimal.NewFromFloat(0.5)
	wantsShare   = decimal.NewFromFloat(0.3)
	savingsShare = decimal.NewFromFloat(0.2)
)

// Split - бюджет по правилу 50/30/20
type Split struct {
	Needs         decimal.Decimal
	Wants         decimal.Decimal
	SavingsTarget decimal.Decimal
}

// BudgetSummary - итог сценария бюджета
type BudgetSummary struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Savings  decimal.Decimal
	Split
	OnTrack bool
}

// Fund - размеры резервного фонда
type Fund struct {
	MonthlyExpenses decimal.Decimal
	ThreeMonth      decimal.Decimal
	SixMonth        decimal.Decimal
}

// GoalPlan - график накоплений на цель
type GoalPlan struct {
	Target  decimal.Decimal
	Months  decimal.Decimal
	Monthly decimal.Decimal
}

// BudgetSplit делит доход на нужды, желания и сбережения
func BudgetSplit(income decimal.Decimal) Split {
	return Split{
		Needs:         income.Mul(needsShare),
		Wants:         income.Mul(wantsShare),
		SavingsTarget: income.Mul(savingsShare),
	}
}

// Summarize сравнивает фактические сбережения с целевыми 20%
func Summarize(income, expenses decimal.Decimal) BudgetSummary {
	split := BudgetSplit(income)
	savings := income.Sub(expenses)
	return BudgetSummary{
		Income:   income,
		Expenses: expenses,
		Savings:  savings,
		Split:    split,
		OnTrack:  savings.GreaterThanOrEqual(split.SavingsTarget),
	}
}

// Verdict возвращает "on track" или "below target"
func (s BudgetSummary) Verdict() string {
	if s.OnTrack {
		return "on track"
	}
	return "below target"
}

// EmergencyFund считает фонд на 3 и 6 месяцев
func EmergencyFund(monthlyExpenses decimal.Decimal) Fund {
	return Fund{
		MonthlyExpenses: monthlyExpenses,
		ThreeMonth:      monthlyExpenses.Mul(decimal.NewFromInt(3)),
		SixMonth:        monthlyExpenses.Mul(decimal.NewFromInt(6)),
	}
}

// GoalMonthlySavings считает ежемесячный взнос, округленный до копеек
func GoalMonthlySavings(target, months decimal.Decimal) (decimal.Decimal, error) {
	if !months.IsPositive() {
		return decimal.Zero, ErrNonPositiveMonths
	}
	return target.DivRound(months, 2), nil
}

// PlanGoal собирает GoalPlan для цели
func PlanGoal(target, months decimal.Decimal) (GoalPlan, error) {
	monthly, err := GoalMonthlySavings(target, months)
	if err != nil {
		return GoalPlan{}, err
	}
	return GoalPlan{Target: target, Months: months, Monthly: monthly}, nil
}
