package leaderboard

import (
	"sort"

	"quizapp/backend/models"
)

// Board ranks users by their best score per subject.
type Board interface {
	Record(subject models.Subject, username string, best float64) error
	Top(subject models.Subject, limit int) ([]models.LeaderboardEntry, error)
}

// UserLister is the part of the user service a StoreBoard reads from.
type UserLister interface {
	Users() ([]models.User, error)
}

// StoreBoard computes rankings from the user store on every call.
type StoreBoard struct {
	users UserLister
}

func NewStoreBoard(users UserLister) *StoreBoard {
	return &StoreBoard{users: users}
}

// Record is a no-op: the store already holds the best score.
func (b *StoreBoard) Record(models.Subject, string, float64) error { return nil }

func (b *StoreBoard) Top(subject models.Subject, limit int) ([]models.LeaderboardEntry, error) {
	users, err := b.users.Users()
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, models.LeaderboardEntry{
			Username: u.Username,
			Name:     u.Name,
			Subject:  subject,
			Best:     u.BestScore(subject),
		})
	}
	return rank(entries, limit), nil
}

// rank sorts by best score descending, then username, and numbers them.
func rank(entries []models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Best == entries[j].Best {
			return entries[i].Username < entries[j].Username
		}
		return entries[i].Best > entries[j].Best
	})

	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
