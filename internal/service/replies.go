package service

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/finbot/internal/calculator"
)

const currency = "₹"

// Greeting - стартовое сообщение нового разговора, через машину состояний не проходит
const Greeting = "Hello! 👋 I’m your Personal Finance Assistant. How can I help you today? Choose an option below or type your question."

const backHint = "You can also type 'back' to return to the main menu."

const (
	msgReset = "I've reset the conversation. How can I help you next?"

	msgAskIncome    = "Let's create a budget. What is your total monthly income after tax? " + backHint
	msgAskEmergency = "What are your essential monthly expenses (rent, food, utilities, EMIs)? " + backHint
	msgAskGoal      = "What is the target amount you want to save? " + backHint

	msgRepromptIncome    = "I couldn't understand that number. Please provide your total monthly income. " + backHint
	msgRepromptExpenses  = "I couldn't understand that number. Please provide your total monthly expenses. " + backHint
	msgRepromptGoal      = "Please enter a valid target amount for your goal. " + backHint
	msgRepromptMonths    = "Please enter a valid number of months. " + backHint
	msgRepromptEmergency = "I didn't catch that. Please tell me your essential monthly expenses. " + backHint

	msgTax = "In India, you can save taxes using several sections:\n\n" +
		"1. Section 80C (up to ₹1.5 lakh): PPF, ELSS, Life Insurance, principal repayment of home loan.\n" +
		"2. Section 80D: Health insurance premium deduction.\n" +
		"3. NPS (Section 80CCD(1B)): extra deduction of ₹50,000.\n\n" +
		"The best option depends on your goals and risk appetite."

	msgInvest = "Investment options by risk:\n\n" +
		"- Low risk: FDs, PPF, Debt funds.\n" +
		"- Medium risk: Index funds, Balanced mutual funds.\n" +
		"- High risk: Direct equity, mid/small-cap funds, crypto (small allocation).\n\n" +
		"What is your risk tolerance (low, medium, high)?"

	msgHello    = "Hello! 👋 How can I help you with your finances today? Try: 'create a budget', 'set a goal', or 'tax'."
	msgFallback = "I’m not sure about that. Try asking me to 'create a budget', set a 'savings goal', or ask about 'tax' or 'investments'."
)

// FormatMoney печатает сумму с символом рупии и разделителями тысяч
func FormatMoney(amount decimal.Decimal, places int32) string {
	r := amount.Round(places)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	whole := r.Truncate(0)
	out := currency + sign + humanize.BigComma(whole.BigInt())
	if places > 0 {
		out += r.Sub(whole).StringFixed(places)[1:]
	}
	return out
}

func incomeAccepted(income decimal.Decimal) string {
	return fmt.Sprintf("Great! Your monthly income is %s. Now, what are your total monthly expenses (rent, bills, food, etc.)? %s",
		FormatMoney(income, 0), backHint)
}

func budgetReport(s calculator.BudgetSummary) string {
	var b strings.Builder
	b.WriteString("Thanks! Based on your numbers:\n\n")
	b.WriteString(fmt.Sprintf("- Income: %s\n", FormatMoney(s.Income, 0)))
	b.WriteString(fmt.Sprintf("- Expenses: %s\n", FormatMoney(s.Expenses, 0)))
	b.WriteString(fmt.Sprintf("- Potential Savings: %s per month\n\n", FormatMoney(s.Savings, 0)))
	b.WriteString("Sample budget (50/30/20):\n")
	b.WriteString(fmt.Sprintf("- Needs (50%%): %s\n", FormatMoney(s.Needs, 0)))
	b.WriteString(fmt.Sprintf("- Wants (30%%): %s\n", FormatMoney(s.Wants, 0)))
	b.WriteString(fmt.Sprintf("- Savings (20%%): %s\n\n", FormatMoney(s.SavingsTarget, 0)))
	if s.OnTrack {
		b.WriteString("You're on track: you're doing a great job with your savings! Keep it up.")
	} else {
		b.WriteString("You're below target: a bit under the 20% savings goal. Consider trimming wants.")
	}
	b.WriteString("\n\n" + backHint)
	return b.String()
}

func goalAccepted(amount decimal.Decimal) string {
	return fmt.Sprintf("Goal amount set to %s. In how many months do you want to achieve this goal? %s",
		FormatMoney(amount, 0), backHint)
}

func goalSchedule(p calculator.GoalPlan) string {
	return fmt.Sprintf("To reach your goal of %s in %s months, save %s every month. %s",
		FormatMoney(p.Target, 0), p.Months.Truncate(0).String(), FormatMoney(p.Monthly, 2), backHint)
}

func emergencyReport(f calculator.Fund) string {
	return fmt.Sprintf("For an emergency fund based on %s monthly expenses, aim for:\n\n"+
		"- 3-month fund: %s\n"+
		"- 6-month fund: %s\n\n"+
		"Keep this in a liquid/higher-yield savings option. %s",
		FormatMoney(f.MonthlyExpenses, 0), FormatMoney(f.ThreeMonth, 0), FormatMoney(f.SixMonth, 0), backHint)
}
