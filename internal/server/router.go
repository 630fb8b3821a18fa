package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/quizmize/backend/internal/handlers"
	"github.com/quizmize/backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName       string
	MediaDir          string
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	UserHandler       *handlers.UserHandler
	GroupHandler      *handlers.GroupHandler
	PostHandler       *handlers.PostHandler
	MissionHandler    *handlers.MissionHandler
	UniversityHandler *handlers.UniversityHandler
	QuizHandler       *handlers.QuizHandler
	WSHandler         *handlers.WSHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.Healthcheck)
	router.Static("/media", cfg.MediaDir)

	user := router.Group("/user")
	{
		user.POST("/signup", cfg.AuthHandler.Signup)
		user.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Account
	protected.GET("/user/logout", cfg.AuthHandler.Logout)
	protected.GET("/user/userdata", cfg.UserHandler.UserData)
	protected.POST("/user/updateProfile", cfg.UserHandler.UpdateProfile)
	protected.POST("/user/saveQuizHistory", cfg.UserHandler.SaveQuizHistory)

	// Groups
	groups := protected.Group("/groups")
	{
		groups.GET("/api", cfg.GroupHandler.List)
		groups.GET("/mine", cfg.GroupHandler.ListMine)
		groups.POST("", cfg.GroupHandler.Create)
		groups.GET("/:id", cfg.GroupHandler.Get)
		groups.POST("/:id/join", cfg.GroupHandler.Join)
		groups.POST("/:id/leave", cfg.GroupHandler.Leave)
		groups.GET("/:id/chat/history", cfg.GroupHandler.ChatHistory)

		// Missions
		groups.POST("/:id/missions", cfg.MissionHandler.Create)
		groups.GET("/:id/missions", cfg.MissionHandler.ListByGroup)
	}
	missions := protected.Group("/missions")
	{
		missions.GET("/:missionId", cfg.MissionHandler.Get)
		missions.POST("/:missionId/join", cfg.MissionHandler.Join)
		missions.POST("/:missionId/answer", cfg.MissionHandler.Answer)
		missions.GET("/:missionId/progress", cfg.MissionHandler.Progress)
		missions.DELETE("/:missionId", cfg.MissionHandler.Delete)
	}

	// Posts
	posts := protected.Group("/post")
	{
		posts.POST("/:groupId", cfg.PostHandler.Create)
		posts.GET("/:groupId", cfg.PostHandler.ListByGroup)
		posts.POST("/vote/:postId", cfg.PostHandler.Vote)
		posts.POST("/comment/:postId", cfg.PostHandler.Comment)
		posts.DELETE("/delete/:postId", cfg.PostHandler.Delete)
	}

	// Universities
	universities := protected.Group("/university")
	{
		universities.GET("/api", cfg.UniversityHandler.List)
		universities.POST("", cfg.UniversityHandler.Create)
		universities.GET("/:id", cfg.UniversityHandler.Get)
		universities.POST("/:id/join", cfg.UniversityHandler.Join)
		universities.POST("/join/:code", cfg.UniversityHandler.JoinByCode)
		universities.POST("/:id/posts", cfg.UniversityHandler.CreatePost)
		universities.GET("/:id/posts", cfg.UniversityHandler.ListPosts)
		universities.POST("/:id/posts/:postId/comments", cfg.UniversityHandler.CommentOnPost)
		universities.POST("/:id/posts/:postId/like", cfg.UniversityHandler.ToggleLike)
		universities.POST("/:id/faculties", cfg.UniversityHandler.CreateFaculty)
		universities.GET("/:id/faculties", cfg.UniversityHandler.ListFaculties)
		universities.POST("/:id/courses", cfg.UniversityHandler.CreateCourse)
		universities.GET("/:id/faculties/:facultyIndex/courses", cfg.UniversityHandler.ListFacultyCourses)
		universities.GET("/:id/faculties/:facultyIndex/courses/:courseCode", cfg.UniversityHandler.GetCourse)
		universities.POST("/:id/faculties/:facultyIndex/courses/:courseCode/posts", cfg.UniversityHandler.CreateCoursePost)
		universities.POST("/:id/faculties/:facultyIndex/courses/:courseCode/classrooms", cfg.UniversityHandler.CreateClassroom)
		universities.POST("/:id/faculties/:facultyIndex/courses/:courseCode/classrooms/join", cfg.UniversityHandler.JoinClassroom)
		universities.POST("/:id/faculties/:facultyIndex/courses/:courseCode/classrooms/leave", cfg.UniversityHandler.LeaveClassroom)
	}

	// Quiz catalog
	quiz := protected.Group("/quiz")
	{
		quiz.GET("/subjects", cfg.QuizHandler.ListSubjects)
		quiz.GET("/topics/:subject", cfg.QuizHandler.GetTopics)
		quiz.GET("/list/:quizTopic", cfg.QuizHandler.GetQuizList)
		quiz.GET("/page/:topic", cfg.QuizHandler.GetQuizPage)

		// Catalog editing is restricted to platform admins.
		editor := quiz.Group("")
		editor.Use(cfg.AuthMiddleware.RequireAdmin())
		{
			editor.POST("/subjects", cfg.QuizHandler.UpsertSubject)
			editor.POST("/topics", cfg.QuizHandler.UpsertTopic)
			editor.POST("/list", cfg.QuizHandler.UpsertQuizList)
			editor.POST("/page", cfg.QuizHandler.AddQuizQuestion)
			editor.PATCH("/page/update/:index", cfg.QuizHandler.UpdateQuizQuestion)
			editor.DELETE("/page/:topic/:quizList/:index", cfg.QuizHandler.DeleteQuizQuestion)
		}
	}

	// Realtime
	protected.GET("/ws/groups/:id", cfg.WSHandler.ServeGroup)

	return router
}
