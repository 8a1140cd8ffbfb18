package models

import "gorm.io/gorm"

type User struct {
	Username string             `json:"username"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Phone    string             `json:"phone"`
	Password string             `json:"password"`
	Scores   map[string]float64 `json:"scores"`
}

// NewUser returns a user with every subject score set to zero.
func NewUser(username, name, email, phone, password string) *User {
	u := &User{
		Username: username,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Password: password,
	}
	u.FillScores()
	return u
}

// FillScores adds a zero score for each known subject that is missing.
func (u *User) FillScores() {
	if u.Scores == nil {
		u.Scores = make(map[string]float64, len(Subjects()))
	}
	for _, s := range Subjects() {
		if _, ok := u.Scores[string(s)]; !ok {
			u.Scores[string(s)] = 0
		}
	}
}

func (u *User) BestScore(subject Subject) float64 {
	return u.Scores[string(subject)]
}

// RaiseScore stores percentage if it beats the current best and returns the best.
func (u *User) RaiseScore(subject Subject, percentage float64) float64 {
	if u.Scores == nil {
		u.Scores = make(map[string]float64)
	}
	if prev, ok := u.Scores[string(subject)]; ok && prev >= percentage {
		return prev
	}
	u.Scores[string(subject)] = percentage
	return percentage
}

func (u *User) Clone() *User {
	c := *u
	c.Scores = make(map[string]float64, len(u.Scores))
	for k, v := range u.Scores {
		c.Scores[k] = v
	}
	return &c
}

// UserRecord is the relational shape of User.
type UserRecord struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null"`
	Name     string
	Email    string
	Phone    string
	Password string        `gorm:"not null"`
	Scores   []ScoreRecord `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserRecord) TableName() string { return "users" }

type ScoreRecord struct {
	gorm.Model
	UserID  uint    `gorm:"uniqueIndex:idx_user_subject;not null"`
	Subject string  `gorm:"uniqueIndex:idx_user_subject;not null"`
	Best    float64 `gorm:"default:0"`
}

func (ScoreRecord) TableName() string { return "user_scores" }
