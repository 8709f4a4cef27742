package topics

const (
	// Live scores
	LiveScoreUpdates = "live_score_updates"

	// Canal Redis Pub/Sub usado para espelhar broadcasts entre instâncias
	LiveUpdatesChannel = "live_updates_broadcast"
)
