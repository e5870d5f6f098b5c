package controllers

import (
	"errors"
	"net/http"
	"time"

	"PitchPerfect/middleware"
	models "PitchPerfect/models/postgres"
	"PitchPerfect/services/choices"
	"PitchPerfect/services/redis"
	redisutils "PitchPerfect/services/redis/utils"
	"PitchPerfect/services/votes"
	"PitchPerfect/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func matchJSON(m *models.Match) gin.H {
	out := gin.H{
		"id":         m.ID.String(),
		"home_team":  gin.H{"id": m.HomeTeamID.String(), "name": m.HomeTeam.Name, "logo_url": m.HomeTeam.LogoURL},
		"away_team":  gin.H{"id": m.AwayTeamID.String(), "name": m.AwayTeam.Name, "logo_url": m.AwayTeam.LogoURL},
		"match_date": m.MatchDate.Format(time.RFC3339),
		"status":     m.Status,
	}
	if m.League != nil {
		out["league"] = gin.H{"id": m.League.ID.String(), "name": m.League.Name}
	} else {
		out["league"] = nil
	}
	return out
}

// @Summary List matches
// @Description Matches ordered by date, optionally filtered by league and by a
// @Description case-insensitive search over both team names.
// @Produce json
// @Param league_id query string false "League UUID"
// @Param search query string false "Team name fragment"
// @Success 200 {object} object{matches=[]object}
// @Router /predictions/matches [get]
func ListMatches(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("League").Preload("HomeTeam").Preload("AwayTeam").
			Order("match_date")

		if leagueParam := c.Query("league_id"); leagueParam != "" {
			leagueID, err := uuid.Parse(leagueParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
				return
			}
			query = query.Where("league_id = ?", leagueID)
		}
		if search := c.Query("search"); search != "" {
			pattern := "%" + search + "%"
			query = query.
				Joins("JOIN clubs home ON home.id = matches.home_team_id").
				Joins("JOIN clubs away ON away.id = matches.away_team_id").
				Where("home.name ILIKE ? OR away.name ILIKE ?", pattern, pattern)
		}

		var matches []models.Match
		if err := query.Find(&matches).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching matches"})
			return
		}

		out := make([]gin.H, 0, len(matches))
		for i := range matches {
			out = append(out, matchJSON(&matches[i]))
		}
		c.JSON(http.StatusOK, gin.H{"matches": out})
	}
}

// @Summary Match detail with vote distribution
// @Description The summary always lists all three outcomes; percentages are 0
// @Description when nobody has voted. user_vote is null for anonymous callers
// @Description and for callers who have not voted.
// @Produce json
// @Param match_id path string true "Match UUID"
// @Success 200 {object} object{match=object,vote_summary=object,vote_counts=object,total_votes=int,user_vote=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /predictions/matches/{match_id} [get]
func MatchDetail(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, err := uuid.Parse(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}
		match, err := utils.CheckMatchExists(db, matchID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Match not found"})
			return
		}

		type payload struct {
			Summary map[string]float64 `json:"summary"`
			Counts  map[string]int64   `json:"counts"`
			Total   int64              `json:"total"`
		}
		key := redisutils.FormatMatchVotesKey(matchID.String())

		var cached payload
		if !tallyFromCache(rc, key, &cached) {
			dist, err := votes.PredictionResults(db, matchID)
			if err != nil {
				respondVoteError(c, err)
				return
			}
			cached = payload{
				Summary: votes.VoteSummary(dist),
				Counts:  votes.VoteCounts(dist),
				Total:   dist.Total,
			}
			cacheTally(rc, key, cached)
		}

		var userVote any
		if user := middleware.OptionalUser(c, db); user != nil {
			if outcome, err := votes.UserPrediction(db, user.ID, matchID); err == nil && outcome != nil {
				userVote = string(*outcome)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"match":        matchJSON(match),
			"vote_summary": cached.Summary,
			"vote_counts":  cached.Counts,
			"total_votes":  cached.Total,
			"user_vote":    userVote,
		})
	}
}

type matchVoteRequest struct {
	Prediction string `json:"prediction" form:"prediction"`
}

// @Summary Vote on a match outcome
// @Description Submitting a different outcome overwrites the existing vote.
// @Accept json
// @Produce json
// @Param match_id path string true "Match UUID"
// @Param body body matchVoteRequest true "One of home_win, away_win, draw"
// @Success 200 {object} object{status=string,prediction=string}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/predictions/matches/{match_id}/vote [post]
// @Security ApiKeyAuth
func VoteMatch(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		matchID, err := uuid.Parse(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}

		var req matchVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			req.Prediction = c.PostForm("prediction")
		}
		if req.Prediction == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Prediction is required."})
			return
		}

		res, err := votes.SubmitPrediction(db, user.ID, matchID, models.MatchOutcome(req.Prediction))
		if err != nil {
			if errors.Is(err, votes.ErrInvalidCandidate) {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid prediction"})
				return
			}
			respondVoteError(c, err)
			return
		}
		invalidateTally(rc, redisutils.FormatMatchVotesKey(matchID.String()))

		status := "set"
		if res.Status == choices.StatusUnchanged {
			status = "unchanged"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "prediction": string(res.Candidate)})
	}
}

// @Summary Remove the caller's vote on a match
// @Description Succeeds even when no vote exists.
// @Produce json
// @Param match_id path string true "Match UUID"
// @Success 200 {object} object{status=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/predictions/matches/{match_id}/vote [delete]
// @Security ApiKeyAuth
func DeleteMatchVote(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}
		matchID, err := uuid.Parse(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}
		if _, err := votes.ClearPrediction(db, user.ID, matchID); err != nil {
			respondVoteError(c, err)
			return
		}
		invalidateTally(rc, redisutils.FormatMatchVotesKey(matchID.String()))
		c.JSON(http.StatusOK, gin.H{"status": "cleared"})
	}
}

type matchRequest struct {
	LeagueID   string `json:"league_id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	MatchDate  string `json:"match_date"`
	Status     string `json:"status"`
}

func (r *matchRequest) parse(db *gorm.DB) (*models.Match, string) {
	homeID, err := uuid.Parse(r.HomeTeamID)
	if err != nil {
		return nil, "Invalid home team ID"
	}
	awayID, err := uuid.Parse(r.AwayTeamID)
	if err != nil {
		return nil, "Invalid away team ID"
	}
	if homeID == awayID {
		return nil, "A club cannot play against itself"
	}
	if _, err := utils.CheckClubExists(db, homeID); err != nil {
		return nil, "Home team not found"
	}
	if _, err := utils.CheckClubExists(db, awayID); err != nil {
		return nil, "Away team not found"
	}
	matchDate, err := time.Parse(time.RFC3339, r.MatchDate)
	if err != nil {
		return nil, "Invalid match date, expected RFC 3339"
	}
	status := r.Status
	if status == "" {
		status = models.MatchUpcoming
	}
	if !models.ValidMatchStatus(status) {
		return nil, "Invalid match status"
	}
	match := &models.Match{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		MatchDate:  matchDate,
		Status:     status,
	}
	if r.LeagueID != "" {
		leagueID, err := uuid.Parse(r.LeagueID)
		if err != nil {
			return nil, "Invalid league ID"
		}
		if _, err := utils.CheckLeagueExists(db, leagueID); err != nil {
			return nil, "League not found"
		}
		match.LeagueID = &leagueID
	}
	return match, ""
}

// @Summary Create a match (admin)
// @Accept json
// @Produce json
// @Param body body matchRequest true "Match data"
// @Success 201 {object} object{status=string,match=object}
// @Failure 400 {object} object{status=string,message=string}
// @Router /auth/predictions/matches [post]
// @Security ApiKeyAuth
func MatchCreate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req matchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}
		match, msg := req.parse(db)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}
		match.ID = uuid.New()
		if err := db.Create(match).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error creating match"})
			return
		}
		created, err := utils.CheckMatchExists(db, match.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error loading match"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"status": "created", "match": matchJSON(created)})
	}
}

// @Summary Update a match (admin)
// @Accept json
// @Produce json
// @Param match_id path string true "Match UUID"
// @Param body body matchRequest true "Match data"
// @Success 200 {object} object{status=string,match=object}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/predictions/matches/{match_id} [put]
// @Security ApiKeyAuth
func MatchUpdate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, err := uuid.Parse(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}
		if _, err := utils.CheckMatchExists(db, matchID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Match not found"})
			return
		}
		var req matchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
			return
		}
		match, msg := req.parse(db)
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": msg})
			return
		}
		match.ID = matchID
		if err := db.Model(&models.Match{}).Where("id = ?", matchID).
			Updates(map[string]any{
				"league_id":    match.LeagueID,
				"home_team_id": match.HomeTeamID,
				"away_team_id": match.AwayTeamID,
				"match_date":   match.MatchDate,
				"status":       match.Status,
			}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error updating match"})
			return
		}
		updated, err := utils.CheckMatchExists(db, matchID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error loading match"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated", "match": matchJSON(updated)})
	}
}

// @Summary Delete a match and its votes (admin)
// @Produce json
// @Param match_id path string true "Match UUID"
// @Success 200 {object} object{status=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/predictions/matches/{match_id} [delete]
// @Security ApiKeyAuth
func MatchDelete(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		matchID, err := uuid.Parse(c.Param("match_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid match ID"})
			return
		}
		if _, err := utils.CheckMatchExists(db, matchID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Match not found"})
			return
		}
		if err := db.Where("id = ?", matchID).Delete(&models.Match{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error deleting match"})
			return
		}
		invalidateTally(rc, redisutils.FormatMatchVotesKey(matchID.String()))
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// @Summary List clubs for match forms
// @Produce json
// @Param league_id query string false "League UUID"
// @Success 200 {object} object{clubs=[]object}
// @Router /predictions/clubs [get]
func LoadClubs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("name")
		if leagueParam := c.Query("league_id"); leagueParam != "" {
			leagueID, err := uuid.Parse(leagueParam)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
				return
			}
			query = query.Where("league_id = ?", leagueID)
		}
		var clubs []models.Club
		if err := query.Find(&clubs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching clubs"})
			return
		}
		out := make([]gin.H, 0, len(clubs))
		for _, club := range clubs {
			out = append(out, gin.H{"id": club.ID.String(), "name": club.Name, "logo_url": club.LogoURL})
		}
		c.JSON(http.StatusOK, gin.H{"clubs": out})
	}
}
