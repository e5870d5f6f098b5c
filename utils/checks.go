package utils

import (
	models "PitchPerfect/models/postgres"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Existence checks shared by the vote services and controllers. All of them
// pass gorm.ErrRecordNotFound through so callers can map it to their own
// error taxonomy.

func CheckLeagueExists(db *gorm.DB, leagueID uuid.UUID) (*models.League, error) {
	var league models.League
	if err := db.Where("id = ?", leagueID).First(&league).Error; err != nil {
		return nil, err
	}
	return &league, nil
}

func CheckClubExists(db *gorm.DB, clubID uuid.UUID) (*models.Club, error) {
	var club models.Club
	if err := db.Preload("League").Where("id = ?", clubID).First(&club).Error; err != nil {
		return nil, err
	}
	return &club, nil
}

func CheckMatchExists(db *gorm.DB, matchID uuid.UUID) (*models.Match, error) {
	var match models.Match
	err := db.Preload("League").Preload("HomeTeam").Preload("AwayTeam").
		Where("id = ?", matchID).First(&match).Error
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func CheckUserExists(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
