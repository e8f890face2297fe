package service

import (
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/finbot/internal/calculator"
	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/parser"
)

// step продвигает активный сценарий. Ключевые слова здесь не проверяются:
// "budget" посреди сценария - это просто неверное число.
func (a *Advisor) step(utterance string, profile *model.Profile) Reply {
	reply := Reply{Intent: model.IntentFlowStep}
	amount, ok := parseAmount(utterance)

	switch profile.State {
	case model.StateIncomeForBudget:
		if !ok {
			reply.Core = msgRepromptIncome
			return reply
		}
		profile.Income = amount
		profile.State = model.StateExpensesForBudget
		reply.Core = incomeAccepted(amount)

	case model.StateExpensesForBudget:
		if !ok {
			reply.Core = msgRepromptExpenses
			return reply
		}
		profile.Expenses = amount
		profile.State = model.StateIdle
		summary := calculator.Summarize(profile.Income, profile.Expenses)
		reply.Budget = &summary
		reply.Core = budgetReport(summary)

	case model.StateGoalAmount:
		if !ok {
			reply.Core = msgRepromptGoal
			return reply
		}
		profile.PendingGoalAmount = &amount
		profile.State = model.StateGoalTime
		reply.Core = goalAccepted(amount)

	case model.StateGoalTime:
		// Без сохраненной суммы цели переспрашиваем, а не падаем
		months, parsed := parser.ParseSigned(utterance)
		if !parsed || profile.PendingGoalAmount == nil {
			reply.Core = msgRepromptMonths
			return reply
		}
		plan, err := calculator.PlanGoal(*profile.PendingGoalAmount, months)
		if err != nil {
			reply.Core = msgRepromptMonths
			return reply
		}
		profile.Cancel()
		reply.Goal = &plan
		reply.Core = goalSchedule(plan)

	case model.StateEmergencyExpenses:
		if !ok {
			reply.Core = msgRepromptEmergency
			return reply
		}
		profile.State = model.StateIdle
		fund := calculator.EmergencyFund(amount)
		reply.Emergency = &fund
		reply.Core = emergencyReport(fund)
	}

	return reply
}

// parseAmount считает ноль таким же неверным ответом, как отсутствие числа
func parseAmount(utterance string) (decimal.Decimal, bool) {
	value, ok := parser.ParseNumber(utterance)
	if !ok || value.IsZero() {
		return decimal.Zero, false
	}
	return value, true
}
