// Package topics assigns one of the bot's fixed help topics to a
// free-text message. The set of topics is closed: every message maps to
// exactly one of them, so the prediction flow never has to handle an
// "unknown topic" branch.
package topics

import (
	"context"
	"hash/fnv"
	"strings"
)

// The known topic labels.
const (
	TopicSwedish   = "swedish"
	TopicBank      = "bank"
	TopicPN        = "pn"
	TopicApartment = "apartment"
	TopicCulture   = "culture"
)

// All lists every topic label, in a fixed order.
var All = []string{TopicSwedish, TopicBank, TopicPN, TopicApartment, TopicCulture}

// keywords maps lowercase trigger words to the topic they indicate.
// The vocabulary leans on terms newcomers to Sweden actually use.
var keywords = map[string]string{
	"sfi":      TopicSwedish,
	"swedish":  TopicSwedish,
	"svenska":  TopicSwedish,
	"language": TopicSwedish,
	"komvux":   TopicSwedish,
	"course":   TopicSwedish,
	"study":    TopicSwedish,
	"school":   TopicSwedish,

	"bank":    TopicBank,
	"bankid":  TopicBank,
	"account": TopicBank,
	"konto":   TopicBank,
	"money":   TopicBank,
	"swish":   TopicBank,
	"loan":    TopicBank,

	"personnummer":      TopicPN,
	"pn":                TopicPN,
	"skatteverket":      TopicPN,
	"coordination":      TopicPN,
	"samordningsnummer": TopicPN,
	"id":                TopicPN,

	"apartment": TopicApartment,
	"housing":   TopicApartment,
	"rent":      TopicApartment,
	"flat":      TopicApartment,
	"lease":     TopicApartment,
	"bostad":    TopicApartment,
	"hyra":      TopicApartment,

	"culture":   TopicCulture,
	"cultural":  TopicCulture,
	"museum":    TopicCulture,
	"museums":   TopicCulture,
	"event":     TopicCulture,
	"events":    TopicCulture,
	"fika":      TopicCulture,
	"tradition": TopicCulture,
	"holiday":   TopicCulture,
}

// Classifier scores messages against the keyword vocabulary. It
// implements ports.TopicClassifier.
type Classifier struct{}

// NewClassifier returns the keyword classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify picks the topic whose keywords occur most often in the
// message. Ties break in the order of All. A message matching nothing
// still gets a topic: a stable hash of its text spreads such messages
// across the whole set, so the same text always yields the same topic.
func (c *Classifier) Classify(_ context.Context, message string) (string, error) {
	scores := make(map[string]int, len(All))
	for _, word := range strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != 'å' && r != 'ä' && r != 'ö'
	}) {
		if topic, ok := keywords[word]; ok {
			scores[topic]++
		}
	}

	best, bestScore := "", 0
	for _, topic := range All {
		if scores[topic] > bestScore {
			best, bestScore = topic, scores[topic]
		}
	}
	if best != "" {
		return best, nil
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.TrimSpace(strings.ToLower(message))))
	return All[int(h.Sum32())%len(All)], nil
}
