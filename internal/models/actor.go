package models

import "time"

// Actor is an account observed anywhere in the corpus. An actor may appear in
// interactions without ever posting, or post without interacting; identity is
// the username alone.
//
// The score columns are the pipeline's write-back surface: overwritten in
// full on every run, never accumulated.
type Actor struct {
	Username     string    `gorm:"primaryKey" json:"username"`
	DisplayName  string    `json:"display_name"`
	FirstSeen    time.Time `json:"first_seen"`
	NetworkScore float64   `gorm:"default:0" json:"network_score"`
	AnomalyScore float64   `gorm:"default:0" json:"anomaly_score"`
	LexicalScore float64   `gorm:"default:0" json:"lexical_score"`
	BurstScore   float64   `gorm:"default:0" json:"burst_score"`
}

// ActorScores is the per-run write-back payload for one actor.
type ActorScores struct {
	NetworkScore float64 `json:"network_score"`
	AnomalyScore float64 `json:"anomaly_score"`
	LexicalScore float64 `json:"lexical_score"`
	BurstScore   float64 `json:"burst_score"`
}
