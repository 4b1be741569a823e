package ports

import "context"

// TopicClassifier maps free user text onto one of the fixed topic labels
// (swedish, bank, pn, apartment, culture). Implementations must be
// deterministic for a given model snapshot and fail rather than invent a
// label outside the set.
type TopicClassifier interface {
	Classify(ctx context.Context, text string) (string, error)
}
