// Package service реализует машину состояний финансового ассистента.
package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/finbot/internal/calculator"
	"github.com/ivanoskov/finbot/internal/model"
	"github.com/ivanoskov/finbot/internal/polisher"
)

// Reply - результат обработки одной реплики
type Reply struct {
	Text   string // итоговый ответ после полировки
	Core   string // ответ по правилам, до полировки
	Intent model.Intent
	State  model.StateTag // состояние профиля после реплики

	// Заполняются только при завершении соответствующего сценария
	Budget    *calculator.BudgetSummary
	Emergency *calculator.Fund
	Goal      *calculator.GoalPlan
}

// Advisor ведет диалог: разбирает реплику, двигает сценарии и считает бюджет
type Advisor struct {
	polisher polisher.Polisher
	matcher  IntentMatcher
	log      logrus.FieldLogger
}

// NewAdvisor создает экземпляр Advisor. nil polisher означает ответы без полировки.
func NewAdvisor(p polisher.Polisher, log logrus.FieldLogger) *Advisor {
	if p == nil {
		p = polisher.Noop{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Advisor{
		polisher: p,
		matcher:  NewKeywordMatcher(),
		log:      log,
	}
}

// WithMatcher подменяет классификатор намерений
func (a *Advisor) WithMatcher(m IntentMatcher) *Advisor {
	if m != nil {
		a.matcher = m
	}
	return a
}

// Respond возвращает текст ответа и изменяет profile на месте
func (a *Advisor) Respond(ctx context.Context, utterance string, profile *model.Profile) string {
	return a.Turn(ctx, utterance, profile).Text
}

// Turn обрабатывает реплику и возвращает ответ вместе с результатами расчетов
func (a *Advisor) Turn(ctx context.Context, utterance string, profile *model.Profile) Reply {
	if profile == nil {
		a.log.Warn("turn without profile, using a throwaway one")
		profile = model.NewProfile()
	}

	before := profile.State
	reply := a.dispatch(utterance, profile)
	reply.State = profile.State
	reply.Text = a.polisher.Polish(ctx, reply.Core, utterance, profile)

	a.log.WithFields(logrus.Fields{
		"intent":     reply.Intent,
		"state_from": before,
		"state_to":   profile.State,
		"polished":   reply.Text != reply.Core,
	}).Debug("turn processed")

	return reply
}

func (a *Advisor) dispatch(utterance string, profile *model.Profile) Reply {
	if isCancel(utterance) {
		profile.Cancel()
		return Reply{Intent: model.IntentCancel, Core: msgReset}
	}

	if profile.Active() {
		if profile.State.Valid() {
			return a.step(utterance, profile)
		}
		a.log.WithField("state", profile.State).Warn("unknown conversation state, resetting")
		profile.Cancel()
	}

	intent := a.matcher.Match(utterance)
	reply := Reply{Intent: intent}
	switch intent {
	case model.IntentBudget:
		profile.State = model.StateIncomeForBudget
		reply.Core = msgAskIncome
	case model.IntentEmergency:
		profile.State = model.StateEmergencyExpenses
		reply.Core = msgAskEmergency
	case model.IntentGoal:
		profile.State = model.StateGoalAmount
		reply.Core = msgAskGoal
	case model.IntentTax:
		reply.Core = msgTax
	case model.IntentInvest:
		reply.Core = msgInvest
	case model.IntentGreeting:
		reply.Core = msgHello
	default:
		reply.Intent = model.IntentFallback
		reply.Core = msgFallback
	}
	return reply
}
