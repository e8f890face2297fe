package service

import (
	"strings"

	"github.com/ivanoskov/finbot/internal/model"
)

// IntentMatcher определяет намерение по реплике, когда активного диалога нет
type IntentMatcher interface {
	Match(utterance string) model.Intent
}

type keywordRule struct {
	intent   model.Intent
	keywords []string
}

// KeywordMatcher ищет ключевые слова как подстроки в порядке приоритета.
// "budget" сработает и внутри "budgeting", это ожидаемое поведение.
type KeywordMatcher struct {
	rules []keywordRule
}

// NewKeywordMatcher создает матчер с правилами по умолчанию
func NewKeywordMatcher() *KeywordMatcher {
	return &KeywordMatcher{
		rules: []keywordRule{
			{model.IntentBudget, []string{"budget", "plan"}},
			{model.IntentEmergency, []string{"emergency fund", "emergency"}},
			{model.IntentGoal, []string{"goal"}},
			{model.IntentTax, []string{"tax"}},
			{model.IntentInvest, []string{"invest"}},
			{model.IntentGreeting, []string{"hello", "hi"}},
		},
	}
}

// Match возвращает первое подходящее намерение или IntentFallback
func (m *KeywordMatcher) Match(utterance string) model.Intent {
	text := strings.ToLower(utterance)
	for _, rule := range m.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.intent
			}
		}
	}
	return model.IntentFallback
}

func isCancel(utterance string) bool {
	return strings.ToLower(strings.TrimSpace(utterance)) == "back"
}
