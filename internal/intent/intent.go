// Package intent classifies customer messages with ordered keyword
// rules and decides when a conversation needs a human agent.
package intent

import "strings"

const (
	OrderStatus = "order_status"
	ProductInfo = "product_info"
	Shipping    = "shipping"
	Returns     = "returns"
	GeneralHelp = "general_help"
)

type rule struct {
	label    string
	keywords []string
}

// rules are evaluated top to bottom; the first matching set wins.
// The order is part of the contract. Stored intent values depend on
// it, so keep it a slice, never a map.
var rules = []rule{
	{OrderStatus, []string{"order status", "where is my order", "tracking", "when will it arrive", "order number"}},
	{ProductInfo, []string{"product", "in stock", "available", "price", "size", "color"}},
	{Shipping, []string{"shipping", "delivery", "ship", "arrive"}},
	{Returns, []string{"return", "exchange", "refund", "send back"}},
	{GeneralHelp, []string{"help", "hello", "hi", "support", "question"}},
}

var escalationKeywords = []string{
	"manager", "supervisor", "complaint", "angry", "furious",
	"terrible", "awful", "horrible", "cancel my account", "legal",
}

var suggestedActions = map[string][]string{
	OrderStatus: {"Ask for order number", "Check email for order confirmation", "Provide tracking information"},
	ProductInfo: {"Share product link", "Check inventory", "Suggest similar products"},
	Shipping:    {"Provide shipping timeline", "Check carrier information", "Update delivery status"},
	Returns:     {"Escalate to returns specialist", "Provide return instructions", "Process refund"},
	GeneralHelp: {"Offer assistance", "Provide contact information", "Suggest help resources"},
}

// Classify maps a raw user message to an intent label via substring
// containment against the lowercased message. Falls back to
// general_help when nothing matches.
func Classify(message string) string {
	lower := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.label
			}
		}
	}
	return GeneralHelp
}

// ShouldEscalate flags a conversation for human handoff. Returns are
// always escalated; otherwise the message is scanned for distress
// keywords.
func ShouldEscalate(label, message string) bool {
	if label == Returns {
		return true
	}
	lower := strings.ToLower(message)
	for _, kw := range escalationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SuggestedActions returns the next-step list for an intent; unknown
// intents get a single generic action.
func SuggestedActions(label string) []string {
	if actions, ok := suggestedActions[label]; ok {
		return actions
	}
	return []string{"Continue conversation"}
}
