package ports

import "context"

// VoteStore records per-answer votes (the 👍/👎 on a topic prediction),
// keyed by chat and the message that was voted on.
type VoteStore interface {
	SaveVote(ctx context.Context, chatID string, messageID int, vote string) error
}

// FeedbackStore records end-of-conversation feedback, keyed by chat, session
// and the topic that was discussed.
type FeedbackStore interface {
	SaveFeedback(ctx context.Context, chatID, sessionID, topicID, vote string) error
}
