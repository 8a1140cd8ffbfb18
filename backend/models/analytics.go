package models

type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Subject  Subject `json:"subject"`
	Best     float64 `json:"best"`
}
