package dialog

// Canonical action tokens for the fixed-choice nodes.
const (
	ActionGoodAnswer = "good_answer"
	ActionBadAnswer  = "bad_answer"

	ActionBadConversation    = "bad_conversation"
	ActionNormalConversation = "normal_conversation"
	ActionGoodConversation   = "good_conversation"
)

// voteEmoji maps canonical actions to the symbol echoed into the locked
// message. Unknown actions fall back to the action text itself.
var voteEmoji = map[string]string{
	ActionGoodAnswer:         "👍",
	ActionBadAnswer:          "👎",
	ActionBadConversation:    "🙁",
	ActionNormalConversation: "😐",
	ActionGoodConversation:   "🙂",
}

func voteSymbol(action string) string {
	if emoji, ok := voteEmoji[action]; ok {
		return emoji
	}
	return action
}

// Topics is the fixed label set produced by the topic classifier. Node IDs
// for the built-in confirmation nodes are derived from it.
var Topics = []string{"swedish", "bank", "pn", "apartment", "culture"}
