package domain

// RelayStats is a point-in-time view of the relay, used by the heartbeat
// and the health endpoint.
type RelayStats struct {
	Sessions    int          `json:"sessions"`
	Roles       map[Role]int `json:"roles"`
	Connections int          `json:"connections"`
	Topics      []TopicName  `json:"topics"`
	History     int          `json:"history"`
}
