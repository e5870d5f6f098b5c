package routes

import (
	"PitchPerfect/controllers"
	"PitchPerfect/middleware"
	"PitchPerfect/services/redis"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/signup", controllers.SignUp(db))
	api.POST("/login", controllers.Login(db))

	// Directory: public reads, pick results readable by anyone
	api.GET("/directory", controllers.ShowClubDirectory(db))
	api.GET("/directory/clubs/:club_id", controllers.GetClubDetails(db))
	api.GET("/directory/:league_id/pick-results", controllers.GetLeaguePickResults(db, redisClient))

	// Match predictions: public reads
	api.GET("/predictions/matches", controllers.ListMatches(db))
	api.GET("/predictions/matches/:match_id", controllers.MatchDetail(db, redisClient))
	api.GET("/predictions/clubs", controllers.LoadClubs(db))

	// Statistics: public reads
	api.GET("/statistics", controllers.GetGeneralStats(db))
	api.GET("/statistics/voting-results", controllers.GetVotingResults(db, redisClient))
	api.GET("/statistics/clubs", controllers.GetAllClubs(db))
	api.GET("/statistics/teams/:club_id", controllers.GetTeamDetail(db))
	api.GET("/statistics/:stat_type", controllers.GetSpecificStat(db))

	// Forum: public reads
	api.GET("/forum/posts", controllers.ListPosts(db))
	api.GET("/forum/posts/:post_id", controllers.GetPost(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetProfile(db))
		authentication.PATCH("/update", controllers.UpdateProfile(db))
		authentication.GET("/is-admin", controllers.IsAdmin(db))

		authentication.POST("/directory/pick", controllers.SetLeaguePick(db, redisClient))

		authentication.POST("/predictions/matches/:match_id/vote", controllers.VoteMatch(db, redisClient))
		authentication.DELETE("/predictions/matches/:match_id/vote", controllers.DeleteMatchVote(db, redisClient))

		authentication.POST("/statistics/vote", controllers.VoteClub(db, redisClient))

		authentication.POST("/forum/posts", controllers.CreatePost(db))
		authentication.PUT("/forum/posts/:post_id", controllers.UpdatePost(db))
		authentication.DELETE("/forum/posts/:post_id", controllers.DeletePost(db))
		authentication.POST("/forum/posts/:post_id/comments", controllers.CreateComment(db))
		authentication.PUT("/forum/comments/:comment_id", controllers.UpdateComment(db))
		authentication.DELETE("/forum/comments/:comment_id", controllers.DeleteComment(db))

		admin := authentication.Group("/")
		admin.Use(middleware.AdminRequired(db))
		{
			admin.POST("/predictions/matches", controllers.MatchCreate(db))
			admin.PUT("/predictions/matches/:match_id", controllers.MatchUpdate(db))
			admin.DELETE("/predictions/matches/:match_id", controllers.MatchDelete(db, redisClient))
		}
	}
}
