package controllers

import (
	"net/http"
	"sort"

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

const statsTopN = 10

// statLeadersQuery builds one leaderboard query: clubs for a season ordered by
// the given team_statistics column. A limit of 0 means the whole list; the
// clause is only added for positive limits because GORM renders Limit(0) as
// LIMIT 0 and returns nothing.
func statLeadersQuery(db *gorm.DB, season, column string, limit int) *gorm.DB {
	query := db.Preload("Club").
		Where("season = ?", season).
		Order(column + " DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

func statLeaders(db *gorm.DB, season, column string, limit int) ([]models.TeamStatistics, error) {
	var rows []models.TeamStatistics
	err := statLeadersQuery(db, season, column, limit).Find(&rows).Error
	return rows, err
}

func statEntryJSON(s *models.TeamStatistics, value float64) gin.H {
	return gin.H{
		"club_id":   s.ClubID.String(),
		"club_name": s.Club.Name,
		"logo_url":  s.Club.LogoURL,
		"value":     value,
	}
}

// latestRankingsQuery selects each club's newest snapshot, best rank first.
// Limit 0 means the whole table, same rule as statLeadersQuery.
func latestRankingsQuery(db *gorm.DB, limit int) *gorm.DB {
	query := db.Preload("Club").
		Where(`(club_id, ranking_date) IN (
			SELECT club_id, MAX(ranking_date) FROM club_rankings GROUP BY club_id)`).
		Order("rank")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

func latestRankings(db *gorm.DB, limit int) ([]models.ClubRanking, error) {
	var rows []models.ClubRanking
	err := latestRankingsQuery(db, limit).Find(&rows).Error
	return rows, err
}

func rankingJSON(r *models.ClubRanking) gin.H {
	out := gin.H{
		"club_id":      r.ClubID.String(),
		"club_name":    r.Club.Name,
		"logo_url":     r.Club.LogoURL,
		"rank":         r.Rank,
		"points":       r.Points,
		"continent":    r.Continent,
		"ranking_date": r.RankingDate.Format("2006-01-02"),
	}
	if r.PreviousRank != nil {
		out["movement"] = *r.PreviousRank - r.Rank
	} else {
		out["movement"] = nil
	}
	return out
}

func awardJSON(award *models.Award) gin.H {
	return gin.H{
		"id":           award.ID.String(),
		"award_type":   award.AwardType,
		"title":        award.Title,
		"season":       award.Season,
		"date_awarded": award.DateAwarded.Format("2006-01-02"),
		"description":  award.Description,
	}
}

// groupAwardsByClub rolls a season's awards up per club: one entry per club
// with its count and the awards nested, most decorated clubs first. Awards not
// tied to a club (competition-wide distinctions) are skipped. Input order is
// preserved inside each club and for count ties.
func groupAwardsByClub(rows []models.Award) []gin.H {
	type clubAwards struct {
		club   *models.Club
		awards []gin.H
	}
	byClub := make(map[uuid.UUID]*clubAwards)
	clubOrder := []uuid.UUID{}
	for i := range rows {
		award := &rows[i]
		if award.Club == nil {
			continue
		}
		group, ok := byClub[award.Club.ID]
		if !ok {
			group = &clubAwards{club: award.Club}
			byClub[award.Club.ID] = group
			clubOrder = append(clubOrder, award.Club.ID)
		}
		group.awards = append(group.awards, awardJSON(award))
	}

	entries := make([]gin.H, 0, len(clubOrder))
	for _, clubID := range clubOrder {
		group := byClub[clubID]
		entries = append(entries, gin.H{
			"club_id":     group.club.ID.String(),
			"club_name":   group.club.Name,
			"logo_url":    group.club.LogoURL,
			"award_count": len(group.awards),
			"awards":      group.awards,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i]["award_count"].(int) > entries[j]["award_count"].(int)
	})
	return entries
}

func requestedSeason(c *gin.Context) (string, bool) {
	season := c.Query("season")
	if season == "" {
		season = models.DefaultSeason
	}
	if !models.ValidSeason(season) {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Unknown season"})
		return "", false
	}
	return season, true
}

// @Summary General statistics overview
// @Description Top-10 leaderboards for goals, possession and clean sheets plus
// @Description the latest world rankings.
// @Produce json
// @Param season query string false "Season, defaults to the current one"
// @Success 200 {object} object{season=string,goals=[]object,possession=[]object,clean_sheets=[]object,rankings=[]object}
// @Router /statistics [get]
func GetGeneralStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		season, ok := requestedSeason(c)
		if !ok {
			return
		}

		goals, err := statLeaders(db, season, "scored_per_match", statsTopN)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching statistics"})
			return
		}
		possession, err := statLeaders(db, season, "possession_avg", statsTopN)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching statistics"})
			return
		}
		cleanSheets, err := statLeaders(db, season, "clean_sheets_percentage", statsTopN)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching statistics"})
			return
		}
		rankings, err := latestRankings(db, statsTopN)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching rankings"})
			return
		}

		goalsOut := make([]gin.H, 0, len(goals))
		for i := range goals {
			goalsOut = append(goalsOut, statEntryJSON(&goals[i], goals[i].ScoredPerMatch))
		}
		possessionOut := make([]gin.H, 0, len(possession))
		for i := range possession {
			possessionOut = append(possessionOut, statEntryJSON(&possession[i], possession[i].PossessionAvg))
		}
		cleanSheetsOut := make([]gin.H, 0, len(cleanSheets))
		for i := range cleanSheets {
			cleanSheetsOut = append(cleanSheetsOut, statEntryJSON(&cleanSheets[i], cleanSheets[i].CleanSheetsPercentage))
		}
		rankingsOut := make([]gin.H, 0, len(rankings))
		for i := range rankings {
			rankingsOut = append(rankingsOut, rankingJSON(&rankings[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"season":       season,
			"goals":        goalsOut,
			"possession":   possessionOut,
			"clean_sheets": cleanSheetsOut,
			"rankings":     rankingsOut,
		})
	}
}

// @Summary One statistic category in full
// @Produce json
// @Param stat_type path string true "goals | possession | clean_sheets | rankings | awards"
// @Param season query string false "Season, defaults to the current one"
// @Success 200 {object} object{stat_type=string,season=string,entries=[]object}
// @Failure 404 {object} object{status=string,message=string}
// @Router /statistics/{stat_type} [get]
func GetSpecificStat(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		season, ok := requestedSeason(c)
		if !ok {
			return
		}
		statType := c.Param("stat_type")

		var entries []gin.H
		switch statType {
		case "goals", "possession", "clean_sheets":
			column := map[string]string{
				"goals":        "scored_per_match",
				"possession":   "possession_avg",
				"clean_sheets": "clean_sheets_percentage",
			}[statType]
			rows, err := statLeaders(db, season, column, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching statistics"})
				return
			}
			entries = make([]gin.H, 0, len(rows))
			for i := range rows {
				var value float64
				switch statType {
				case "goals":
					value = rows[i].ScoredPerMatch
				case "possession":
					value = rows[i].PossessionAvg
				case "clean_sheets":
					value = rows[i].CleanSheetsPercentage
				}
				entry := statEntryJSON(&rows[i], value)
				entry["wins"] = rows[i].Wins
				entry["draws"] = rows[i].Draws
				entry["losses"] = rows[i].Losses
				entry["win_percentage"] = rows[i].WinPercentage()
				entries = append(entries, entry)
			}
		case "rankings":
			rows, err := latestRankings(db, 0)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching rankings"})
				return
			}
			entries = make([]gin.H, 0, len(rows))
			for i := range rows {
				entries = append(entries, rankingJSON(&rows[i]))
			}
		case "awards":
			var rows []models.Award
			err := db.Preload("Club").
				Where("season = ?", season).
				Order("date_awarded DESC").
				Find(&rows).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching awards"})
				return
			}
			entries = groupAwardsByClub(rows)
		default:
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Unknown statistic"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stat_type": statType,
			"season":    season,
			"entries":   entries,
		})
	}
}

// @Summary Single club statistics page
// @Description Season statistics, latest ranking, awards, and whether the
// @Description caller's club-of-the-season vote points at this club.
// @Produce json
// @Param club_id path string true "Club UUID"
// @Param season query string false "Season, defaults to the current one"
// @Success 200 {object} object{club=object,statistics=object,ranking=object,awards=[]object,has_voted=bool}
// @Failure 404 {object} object{status=string,message=string}
// @Router /statistics/teams/{club_id} [get]
func GetTeamDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clubID, err := uuid.Parse(c.Param("club_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid club ID"})
			return
		}
		season, ok := requestedSeason(c)
		if !ok {
			return
		}
		club, err := utils.CheckClubExists(db, clubID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Club not found"})
			return
		}

		var statsOut any
		var stats models.TeamStatistics
		err = db.Where("club_id = ? AND season = ?", clubID, season).First(&stats).Error
		if err == nil {
			statsOut = gin.H{
				"season":                  stats.Season,
				"wins":                    stats.Wins,
				"draws":                   stats.Draws,
				"losses":                  stats.Losses,
				"matches_played":          stats.MatchesPlayed(),
				"win_percentage":          stats.WinPercentage(),
				"scored_per_match":        stats.ScoredPerMatch,
				"conceded_per_match":      stats.ConcededPerMatch,
				"possession_avg":          stats.PossessionAvg,
				"clean_sheets_percentage": stats.CleanSheetsPercentage,
				"extra":                   stats.Extra,
			}
		}

		var rankingOut any
		var ranking models.ClubRanking
		err = db.Where("club_id = ?", clubID).Order("ranking_date DESC").First(&ranking).Error
		if err == nil {
			ranking.Club = *club
			rankingOut = rankingJSON(&ranking)
		}

		var awards []models.Award
		if err := db.Where("club_id = ?", clubID).Order("date_awarded DESC").Find(&awards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching awards"})
			return
		}
		awardsOut := make([]gin.H, 0, len(awards))
		for _, award := range awards {
			awardsOut = append(awardsOut, gin.H{
				"id":           award.ID.String(),
				"award_type":   award.AwardType,
				"title":        award.Title,
				"season":       award.Season,
				"date_awarded": award.DateAwarded.Format("2006-01-02"),
				"description":  award.Description,
			})
		}

		hasVoted := false
		if user := middleware.OptionalUser(c, db); user != nil {
			if vote, err := votes.UserSeasonVote(db, user.ID, season); err == nil && vote != nil && *vote == clubID {
				hasVoted = true
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"club": gin.H{
				"id":          club.ID.String(),
				"name":        club.Name,
				"logo_url":    club.LogoURL,
				"league_name": club.League.Name,
			},
			"statistics": statsOut,
			"ranking":    rankingOut,
			"awards":     awardsOut,
			"has_voted":  hasVoted,
		})
	}
}

type clubVoteRequest struct {
	ClubID string `json:"club_id" form:"club_id"`
	Season string `json:"season" form:"season"`
}

// @Summary Vote for club of the season
// @Description One vote per caller per season; submitting a different club
// @Description overwrites the vote, re-submitting the same club is reported as
// @Description "unchanged".
// @Accept json
// @Produce json
// @Param body body clubVoteRequest true "Vote data; season defaults to the current one"
// @Success 200 {object} object{status=string,season=string,club_data=object}
// @Failure 400 {object} object{status=string,message=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /auth/statistics/vote [post]
// @Security ApiKeyAuth
func VoteClub(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := middleware.CurrentUser(c, db)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not logged in"})
			return
		}

		var req clubVoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			req.ClubID = c.PostForm("club_id")
			req.Season = c.PostForm("season")
		}
		if req.Season == "" {
			req.Season = models.DefaultSeason
		}

		if req.ClubID == clearPickSentinel {
			if _, err := votes.ClearSeasonVote(db, user.ID, req.Season); err != nil {
				respondVoteError(c, err)
				return
			}
			invalidateTally(rc, redisutils.FormatSeasonVotesKey(req.Season))
			c.JSON(http.StatusOK, gin.H{"status": "cleared", "season": req.Season})
			return
		}

		if req.ClubID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Club ID is required."})
			return
		}
		clubID, err := uuid.Parse(req.ClubID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid club ID"})
			return
		}

		res, club, err := votes.SubmitSeasonVote(db, user.ID, req.Season, clubID)
		if err != nil {
			respondVoteError(c, err)
			return
		}
		invalidateTally(rc, redisutils.FormatSeasonVotesKey(req.Season))

		status := "set"
		if res.Status == choices.StatusUnchanged {
			status = "unchanged"
		}
		c.JSON(http.StatusOK, gin.H{
			"status": status,
			"season": req.Season,
			"club_data": gin.H{
				"clubId":   club.ID.String(),
				"clubName": club.Name,
				"clubLogo": club.LogoURL,
			},
		})
	}
}

// @Summary Club-of-the-season voting results
// @Produce json
// @Param season query string false "Season, defaults to the current one"
// @Success 200 {object} object{results=[]object,total_votes=int,user_vote=object,season=string}
// @Failure 404 {object} object{status=string,message=string}
// @Router /statistics/voting-results [get]
func GetVotingResults(db *gorm.DB, rc *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		season, ok := requestedSeason(c)
		if !ok {
			return
		}

		type payload struct {
			Results    []votes.PickResult `json:"results"`
			TotalVotes int64              `json:"total_votes"`
		}
		key := redisutils.FormatSeasonVotesKey(season)

		var cached payload
		if !tallyFromCache(rc, key, &cached) {
			results, total, err := votes.SeasonVoteResults(db, season)
			if err != nil {
				respondVoteError(c, err)
				return
			}
			cached = payload{Results: results, TotalVotes: total}
			cacheTally(rc, key, cached)
		}

		var userVote any
		if user := middleware.OptionalUser(c, db); user != nil {
			if vote, err := votes.UserSeasonVote(db, user.ID, season); err == nil && vote != nil {
				if club, err := utils.CheckClubExists(db, *vote); err == nil {
					userVote = gin.H{"club_id": club.ID.String(), "club_name": club.Name}
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"season":      season,
			"results":     cached.Results,
			"total_votes": cached.TotalVotes,
			"user_vote":   userVote,
		})
	}
}

// @Summary All clubs for vote forms
// @Produce json
// @Success 200 {object} object{clubs=[]object}
// @Router /statistics/clubs [get]
func GetAllClubs(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clubs []models.Club
		if err := db.Preload("League").Order("name").Find(&clubs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Error fetching clubs"})
			return
		}
		out := make([]gin.H, 0, len(clubs))
		for _, club := range clubs {
			out = append(out, gin.H{
				"id":          club.ID.String(),
				"name":        club.Name,
				"logo_url":    club.LogoURL,
				"league_name": club.League.Name,
			})
		}
		c.JSON(http.StatusOK, gin.H{"clubs": out})
	}
}
