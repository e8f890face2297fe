package model

// Intent - результат разбора реплики машиной состояний
type Intent string

const (
	IntentCancel    Intent = "cancel"
	IntentFlowStep  Intent = "flow_step"
	IntentBudget    Intent = "budget"
	IntentEmergency Intent = "emergency"
	IntentGoal      Intent = "goal"
	IntentTax       Intent = "tax"
	IntentInvest    Intent = "invest"
	IntentGreeting  Intent = "greeting"
	IntentFallback  Intent = "fallback"
)
