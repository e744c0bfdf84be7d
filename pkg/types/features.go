package types

// Feature gate keys consulted by commands and queries.
const (
	FeatureAnonymousAnswers = "polls.answers.anonymous"
	FeatureConnectedStats   = "polls.stats.connected"
)
