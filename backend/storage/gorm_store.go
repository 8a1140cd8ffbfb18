package storage

import (
	"errors"

	"gorm.io/gorm"

	"quizapp/backend/models"
)

// GormBackend stores users in the users and user_scores tables.
type GormBackend struct {
	DB *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&models.UserRecord{}, &models.ScoreRecord{}); err != nil {
		return nil, err
	}
	return &GormBackend{DB: db}, nil
}

func (g *GormBackend) Create(u *models.User) error {
	return g.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.UserRecord
		err := tx.Where("username = ?", u.Username).First(&existing).Error
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		rec := models.UserRecord{
			Username: u.Username,
			Name:     u.Name,
			Email:    u.Email,
			Phone:    u.Phone,
			Password: u.Password,
		}
		for _, subject := range orderedSubjects(u.Scores) {
			rec.Scores = append(rec.Scores, models.ScoreRecord{Subject: subject, Best: u.Scores[subject]})
		}
		return tx.Create(&rec).Error
	})
}

func (g *GormBackend) Get(username string) (*models.User, error) {
	var rec models.UserRecord
	if err := g.DB.Preload("Scores").Where("username = ?", username).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return fromRecord(&rec), nil
}

func (g *GormBackend) Update(u *models.User) error {
	return g.DB.Transaction(func(tx *gorm.DB) error {
		var rec models.UserRecord
		if err := tx.Where("username = ?", u.Username).First(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		rec.Name = u.Name
		rec.Email = u.Email
		rec.Phone = u.Phone
		rec.Password = u.Password
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}

		for _, subject := range orderedSubjects(u.Scores) {
			var score models.ScoreRecord
			err := tx.Where("user_id = ? AND subject = ?", rec.ID, subject).First(&score).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				score = models.ScoreRecord{UserID: rec.ID, Subject: subject}
			} else if err != nil {
				return err
			}
			score.Best = u.Scores[subject]
			if err := tx.Save(&score).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *GormBackend) List() ([]models.User, error) {
	var recs []models.UserRecord
	if err := g.DB.Preload("Scores").Order("username ASC").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]models.User, 0, len(recs))
	for i := range recs {
		out = append(out, *fromRecord(&recs[i]))
	}
	return out, nil
}

func (g *GormBackend) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func fromRecord(rec *models.UserRecord) *models.User {
	u := &models.User{
		Username: rec.Username,
		Name:     rec.Name,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Password: rec.Password,
		Scores:   make(map[string]float64, len(rec.Scores)),
	}
	for _, s := range rec.Scores {
		u.Scores[s.Subject] = s.Best
	}
	u.FillScores()
	return u
}
