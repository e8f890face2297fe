package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/finbot/internal/model"
)

const (
	buttonBudget    = "📊 Create a Budget"
	buttonEmergency = "🆘 Calculate Emergency Fund"
	buttonGoal      = "🎯 Set a Savings Goal"
	buttonInvest    = "📈 Get Investment Advice"
	buttonBack      = "⬅️ Back to Features"
)

// buttonUtterances - что "говорит" пользователь, нажимая кнопку
var buttonUtterances = map[string]string{
	buttonBudget:    "Create a budget",
	buttonEmergency: "Calculate my emergency fund",
	buttonGoal:      "Set a savings goal",
	buttonInvest:    "Give me investment advice",
	buttonBack:      "back",
}

func utteranceFor(text string) string {
	if u, ok := buttonUtterances[text]; ok {
		return u
	}
	return text
}

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonBudget),
			tgbotapi.NewKeyboardButton(buttonEmergency),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonGoal),
			tgbotapi.NewKeyboardButton(buttonInvest),
		),
	)
}

func (b *Bot) getBackKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonBack),
		),
	)
}

// keyboardFor показывает кнопку "назад" во время сценария и меню в остальное время
func (b *Bot) keyboardFor(profile *model.Profile) tgbotapi.ReplyKeyboardMarkup {
	if profile.Active() {
		return b.getBackKeyboard()
	}
	return b.getMainKeyboard()
}
