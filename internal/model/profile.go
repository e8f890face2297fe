package model

import (
	"github.com/shopspring/decimal"
)

// StateTag обозначает активный многошаговый диалог. Пустая строка - диалога нет.
type StateTag string

const (
	StateIdle              StateTag = ""
	StateIncomeForBudget   StateTag = "getting_income_for_budget"
	StateExpensesForBudget StateTag = "getting_expenses_for_budget"
	StateGoalAmount        StateTag = "getting_goal_amount"
	StateGoalTime          StateTag = "getting_goal_time"
	StateEmergencyExpenses StateTag = "getting_emergency_expenses"
)

// Valid сообщает, известен ли тег машине состояний
func (s StateTag) Valid() bool {
	switch s {
	case StateIdle, StateIncomeForBudget, StateExpensesForBudget,
		StateGoalAmount, StateGoalTime, StateEmergencyExpenses:
		return true
	}
	return false
}

// RiskTolerance - склонность пользователя к риску
type RiskTolerance string

const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// Profile хранит данные одного разговора между репликами.
// Профиль принадлежит ровно одному разговору и не разделяется между горутинами.
type Profile struct {
	Income        decimal.Decimal `json:"income"`
	Expenses      decimal.Decimal `json:"expenses"`
	RiskTolerance RiskTolerance   `json:"risk_tolerance"` // пока не используется сценариями
	State         StateTag        `json:"conversation_state,omitempty"`

	// PendingGoalAmount живёт только между шагами "сумма цели" и "срок цели"
	PendingGoalAmount *decimal.Decimal `json:"pending_goal_amount,omitempty"`
}

// NewProfile создает профиль для нового разговора
func NewProfile() *Profile {
	return &Profile{
		Income:        decimal.Zero,
		Expenses:      decimal.Zero,
		RiskTolerance: RiskMedium,
		State:         StateIdle,
	}
}

// Active возвращает true, если идет многошаговый диалог
func (p *Profile) Active() bool {
	return p.State != StateIdle
}

// Cancel возвращает профиль в режим ожидания, не трогая доход и расходы
func (p *Profile) Cancel() {
	p.State = StateIdle
	p.PendingGoalAmount = nil
}

// Reset полностью обнуляет профиль для нового разговора
func (p *Profile) Reset() {
	*p = *NewProfile()
}
