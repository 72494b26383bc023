package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/learnsphere/exam-service/internal/services"
	"github.com/learnsphere/exam-service/internal/utils"
)

type HandlerManager struct {
	authHandler   *AuthHandler
	userHandler   *UserHandler
	courseHandler *CourseHandler
	examHandler   *ExamHandler
}

func NewHandlerManager(
	userService services.UserService,
	courseService services.CourseService,
	examService services.ExamService,
	impexService services.ImportExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:   NewAuthHandler(userService, logger),
		userHandler:   NewUserHandler(userService, logger),
		courseHandler: NewCourseHandler(courseService, impexService, logger),
		examHandler:   NewExamHandler(examService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "exam-service",
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// User routes
		users := v1.Group("/users")
		{
			users.GET("", hm.userHandler.ListUsers)
			users.GET("/:id", hm.userHandler.GetUser)
			users.PUT("/:id/active", hm.userHandler.SetActive)

			// Progress tracking
			users.POST("/:id/materials/:material_id/complete", hm.userHandler.CompleteMaterial)
			users.GET("/:id/progress", hm.userHandler.GetProgress)
			users.GET("/:id/courses/:course_id/completion", hm.userHandler.GetCourseCompletion)
		}

		// Course routes
		courses := v1.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("", hm.courseHandler.ListCourses)
			courses.GET("/:id", hm.courseHandler.GetCourse)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)

			// Content management
			courses.POST("/:id/modules", hm.courseHandler.AddModule)
			courses.POST("/:id/modules/:module_id/materials", hm.courseHandler.AddMaterial)
			courses.POST("/:id/modules/:module_id/questions", hm.courseHandler.AddQuestion)
			courses.DELETE("/:id/modules/:module_id/questions/:question_id", hm.courseHandler.RemoveQuestion)

			// Bulk question import and bank export
			courses.POST("/:id/modules/:module_id/questions/import", hm.courseHandler.ImportQuestions)
			courses.GET("/:id/questions/export", hm.courseHandler.ExportQuestions)
		}

		// Exam routes
		exams := v1.Group("/exams")
		{
			exams.GET("/:id", hm.courseHandler.GetExam)
			exams.PUT("/:id", hm.courseHandler.UpdateExam)

			// Session lifecycle
			exams.POST("/:id/sessions", hm.examHandler.StartSession)

			// Results. The export lives on its own segment so it cannot
			// collide with the :user_id wildcard.
			exams.GET("/:id/results", hm.examHandler.GetResults)
			exams.GET("/:id/results-export", hm.courseHandler.ExportResults)
			exams.GET("/:id/results/:user_id", hm.examHandler.GetResult)
		}

		// Session routes
		sessions := v1.Group("/sessions")
		{
			sessions.GET("/:session_id", hm.examHandler.GetSession)
			sessions.POST("/:session_id/answers", hm.examHandler.SaveAnswer)
			sessions.POST("/:session_id/submit", hm.examHandler.Submit)
			sessions.GET("/:session_id/time-remaining", hm.examHandler.GetTimeRemaining)
		}
	}
}
