package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"PitchPerfect/middleware"
	models "PitchPerfect/models/postgres"
	"PitchPerfect/services/choices"
	"PitchPerfect/services/redis"
	redisutils "PitchPerfect/services/redis/utils"
	"PitchPerfect/services/votes"
	"PitchPerfect/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// clearPickSentinel is what the web client sends as club_id to clear a pick.
const clearPickSentinel = "NONE"

// Display metadata for the directory map view, keyed by league name.
var (
	leagueShortIDs = map[string]string{
		"Premier League":     "PREM",
		"La Liga":            "LALI",
		"Bundesliga":         "BUND",
		"Serie A":            "SERI",
		"Ligue 1 McDonald's": "LIG1",
		"Primeira Liga":      "PRIM",
	}
	leagueCoords = map[string][2]float64{
		"Premier League":     {53.4, -2.2},
		"La Liga":            {40.4, -3.7},
		"Bundesliga":         {51.5, 10.5},
		"Serie A":            {41.9, 12.5},
		"Ligue 1 McDonald's": {48.85, 2.35},
		"Primeira Liga":      {38.7, -9.1},
	}
)

func leagueShortID(name string) string {
	if short, ok := leagueShortIDs[name]; ok {
		return short
	}
	if len(name) >= 4 {
		name = name[:4]
	}
	return strings.ToUpper(name)
}

// @Summary Club directory
// @Description Leagues with their clubs plus the caller's league picks (empty
// @Description for anonymous callers).
// @Produce json
// @Success 200 {object} object{leagues_data=[]object,league_picks_data=object}
// @Router /directory [get]
func ShowClubDirectory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var leagues []models.League
		if err := db.Preload("Clubs").Order("name").Find(&leagues).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching leagues"})
			return
		}

		leaguesData := make([]gin.H, 0, len(leagues))
		for _, league := range leagues {
			clubs := make([]gin.H, 0, len(league.Clubs))
			for _, club := range league.Clubs {
				founded := "N/A"
				if club.FoundedYear != 0 {
					founded = fmt.Sprintf("%d", club.FoundedYear)
				}
				clubs = append(clubs, gin.H{
					"id":       club.ID.String(),
					"name":     club.Name,
					"logo_url": club.LogoURL,
					"desc":     fmt.Sprintf("Founded in %s. Plays in %s.", founded, league.Name),
				})
			}
			coords, ok := leagueCoords[league.Name]
			if !ok {
				coords = [2]float64{0, 0}
			}
			leaguesData = append(leaguesData, gin.H{
				"id":        league.ID.String(),
				"name":      league.Name,
				"short_id":  leagueShortID(league.Name),
				"region":    league.Region,
				"logo_path": league.LogoPath,
				"coords":    []float64{coords[0], coords[1]},
				"clubs":     clubs,
			})
		}

		picksData := gin.H{}
		if user := middleware.OptionalUser(c, db); user != nil {
			picks, err := votes.UserLeaguePicks(db, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching league picks"})
				return
			}
			for leagueID, pick := range picks {
				picksData[leagueID.String()] = gin.H{
					"clubId":   pick.ClubID.String(),
					"clubName": pick.Club.Name,
					"clubLogo": pick.Club.LogoURL,
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"leagues_data":      leaguesData,
			"league_picks_data": picksData,
		})
	}
}

// @Summary Club details
// @Produce json
// @Param club_id path string true "Club UUID"
// @Success 200 {object} object{id=string,name=string,is_league_pick=bool}
// @Failure 404 {object} object{status=string,message=string}
// @Router /directory/clubs/{club_id} [get]
func GetClubDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clubID, err := uuid.Parse(c.Param("club_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid club ID"})
			return
		}

		var club models.Club
		err = db.Preload("League").Preload("Details").Where("id = ?", clubID).First(&club).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Club not found"})
			return
		}

		founded := "N/A"
		if club.FoundedYear != 0 {
			founded = fmt.Sprintf("%d", club.FoundedYear)
		}

		// Editorial details fall back to generated placeholders for clubs
		// without a ClubDetails row.
		description := fmt.Sprintf("A football club founded in %s, currently playing in %s, based in %s.",
			founded, club.League.Name, club.League.Region)
		history := fmt.Sprintf("%s has a rich history in %s...", club.Name, club.League.Name)
		stadiumName := "N/A"
		stadiumCapacity := 0
		managerName := "N/A"
		if club.Details != nil {
			if club.Details.Description != "" {
				description = club.Details.Description
			}
			if club.Details.HistorySummary != "" {
				history = club.Details.HistorySummary
			}
			if club.Details.StadiumName != "" {
				stadiumName = club.Details.StadiumName
			}
			if club.Details.ManagerName != "" {
				managerName = club.Details.ManagerName
			}
			stadiumCapacity = club.Details.StadiumCapacity
		}

		isLeaguePick := false
		if user := middleware.OptionalUser(c, db); user != nil {
			pick, err := votes.UserLeaguePick(db, user.ID, club.LeagueID)
			if err == nil && pick != nil && *pick == club.ID {
				isLeaguePick = true
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"id":               club.ID.String(),
			"name":             club.Name,
			"logo_url":         club.LogoURL,
			"founded_year":     club.FoundedYear,
			"league_id":        club.LeagueID.String(),
			"league_name":      club.League.Name,
			"league_logo_path": club.League.LogoPath,
			"region":           club.League.Region,
			"description":      description,
			"history_summary":  history,
			"stadium_name":     stadiumName,
			"stadium_capacity": stadiumCapacity,
			"manager_name":     managerName,
			"is_league_pick":   isLeaguePick,
		})
	}
}

type setPickRequest struct {
	ClubID   string `json:"club_id" form:"club_id"`
	LeagueID string `json:"league_id" form:"league_id"`
}

// @Summary Set or clear the caller's league pick
// @Description club_id "NONE" clears the pick for the given league. Repeated
// @Description submissions overwrite the pick; re-submitting the same club is
// @Description reported as "unchanged".
// @Accept json
// @Produce json
// @Param body body setPickRequest true "Pick data"
// @Success 200 {object} object{status=string,league_id=string,club_data=object}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/directory/pick [post]
// @Security ApiKeyAuth
func SetLeaguePick(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}

		var req setPickRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			req.ClubID = c.PostForm("club_id")
			req.LeagueID = c.PostForm("league_id")
		}

		if req.ClubID == "" && req.LeagueID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Club or League ID is required."})
			return
		}

		if req.ClubID == clearPickSentinel {
			if req.LeagueID == "" {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "League ID is required to clear a pick."})
				return
			}
			leagueID, err := uuid.Parse(req.LeagueID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
				return
			}
			if _, err := votes.ClearLeaguePick(db, user.ID, leagueID); err != nil {
				respondVoteError(c, err)
				return
			}
			invalidateTally(rc, redisutils.FormatLeaguePicksKey(leagueID.String()))
			c.JSON(http.StatusOK, gin.H{"status": "cleared", "league_id": leagueID.String()})
			return
		}

		clubID, err := uuid.Parse(req.ClubID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid club ID"})
			return
		}
		leagueID, err := uuid.Parse(req.LeagueID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
			return
		}

		res, club, err := votes.SubmitLeaguePick(db, user.ID, leagueID, clubID)
		if err != nil {
			respondVoteError(c, err)
			return
		}
		invalidateTally(rc, redisutils.FormatLeaguePicksKey(leagueID.String()))

		status := "set"
		if res.Status == choices.StatusUnchanged {
			status = "unchanged"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"league_id": leagueID.String(),
			"club_data": gin.H{
				"clubId":   club.ID.String(),
				"clubName": club.Name,
				"clubLogo": club.LogoURL,
			},
		})
	}
}

// @Summary League pick results
// @Produce json
// @Param league_id path string true "League UUID"
// @Success 200 {object} object{results=[]object,total_votes=int,user_vote=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /directory/{league_id}/pick-results [get]
func GetLeaguePickResults(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		leagueID, err := uuid.Parse(c.Param("league_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid league ID"})
			return
		}
		if _, err := utils.CheckLeagueExists(db, leagueID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "League not found"})
			return
		}

		type payload struct {
			Results    []votes.PickResult `json:"results"`
			TotalVotes int64              `json:"total_votes"`
		}
		key := redisutils.FormatLeaguePicksKey(leagueID.String())

		var cached payload
		hit := tallyFromCache(rc, key, &cached)
		if !hit {
			results, total, err := votes.LeaguePickResults(db, leagueID)
			if err != nil {
				respondVoteError(c, err)
				return
			}
			cached = payload{Results: results, TotalVotes: total}
			cacheTally(rc, key, cached)
		}

		var userVote any
		if user := middleware.OptionalUser(c, db); user != nil {
			if pick, err := votes.UserLeaguePick(db, user.ID, leagueID); err == nil && pick != nil {
				if club, err := utils.CheckClubExists(db, *pick); err == nil {
					userVote = club.Name
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"results":     cached.Results,
			"total_votes": cached.TotalVotes,
			"user_vote":   userVote,
		})
	}
}

// respondVoteError maps the vote service error taxonomy onto HTTP statuses.
func respondVoteError(c *gin.Context, err error) {
	switch {
	case votes.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, votes.ErrInvalidCandidate):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	default:
		log.Errorf("vote operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Internal server error"})
	}
}

// Cache helpers. A broken cache must never break a read, so failures are
// logged and the caller falls through to Postgres.

func tallyFromCache(rc *redis.RedisClient, key string, dest any) bool {
	if rc == nil {
		return false
	}
	hit, err := rc.GetCachedResults(key, dest)
	if err != nil {
		log.Warnf("tally cache read failed for %s: %v", key, err)
		return false
	}
	return hit
}

func cacheTally(rc *redis.RedisClient, key string, value any) {
	if rc == nil {
		return
	}
	if err := rc.SetCachedResults(key, value); err != nil {
		log.Warnf("tally cache write failed for %s: %v", key, err)
	}
}

func invalidateTally(rc *redis.RedisClient, key string) {
	if rc == nil {
		return
	}
	if err := rc.InvalidateResults(key); err != nil {
		log.Warnf("tally cache invalidation failed for %s: %v", key, err)
	}
}
