// Package routes wires controllers to the versioned HTTP surface
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/trananh/clearpath/internal/app/controllers"
	"github.com/trananh/clearpath/internal/app/models"
	"github.com/trananh/clearpath/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	accountController *controllers.AccountController,
	programController *controllers.ProgramController,
	surveyController *controllers.SurveyController,
	consultantController *controllers.ConsultantController,
	appointmentController *controllers.AppointmentController,
	articleController *controllers.ArticleController,
	courseController *controllers.CourseController,
	meetingController *controllers.MeetingController,
	authMiddleware *middleware.AuthMiddleware,
) {
	public := authMiddleware.RequireRoles(
		models.RoleGuest, models.RoleAdmin, models.RoleManager,
		models.RoleStaff, models.RoleConsultant, models.RoleMember,
	)
	anyAccount := authMiddleware.RequireRoles(
		models.RoleAdmin, models.RoleManager, models.RoleStaff,
		models.RoleConsultant, models.RoleMember,
	)
	staffUp := authMiddleware.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleStaff)
	adminOnly := authMiddleware.RequireRoles(models.RoleAdmin)
	memberOnly := authMiddleware.RequireRoles(models.RoleMember)
	consultantOnly := authMiddleware.RequireRoles(models.RoleConsultant)
	consultantOrAdmin := authMiddleware.RequireRoles(models.RoleConsultant, models.RoleAdmin)

	v1 := router.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
		auth.POST("/change-password", anyAccount, authController.ChangePassword)
	}

	// --- Account routes ---
	accounts := v1.Group("/accounts")
	{
		accounts.GET("/me", anyAccount, accountController.GetMe)
		accounts.PUT("/me", anyAccount, accountController.UpdateMe)
		accounts.POST("/me/avatar", anyAccount, accountController.UploadAvatar)

		accounts.GET("", adminOnly, accountController.List)
		accounts.POST("", adminOnly, accountController.Create)
		accounts.GET("/:id", adminOnly, accountController.GetByID)
		accounts.PUT("/:id", adminOnly, accountController.Update)
		accounts.PUT("/:id/role", adminOnly, accountController.ChangeRole)
		accounts.PUT("/:id/disable", adminOnly, accountController.Disable)
		accounts.PUT("/:id/enable", adminOnly, accountController.Enable)
		accounts.DELETE("/:id", adminOnly, accountController.Delete)
	}

	// --- Community program routes ---
	programs := v1.Group("/programs")
	{
		programs.GET("", public, programController.List)
		programs.GET("/:id", public, programController.GetByID)

		programs.POST("", staffUp, programController.Create)
		programs.PUT("/:id", staffUp, programController.Update)
		programs.PUT("/:id/disable", staffUp, programController.Disable)
		programs.PUT("/:id/enable", staffUp, programController.Enable)
		programs.GET("/:id/attendees", staffUp, programController.ListAttendees)
		programs.POST("/:id/invitations", staffUp, programController.SendInvitations)

		programs.POST("/:id/register", memberOnly, programController.Register)
		programs.DELETE("/:id/register", memberOnly, programController.Unregister)

		programs.GET("/:id/surveys", anyAccount, surveyController.ProgramSurveys)
		programs.POST("/:id/surveys/responses", memberOnly, surveyController.SubmitResponse)
	}

	// --- Survey definition routes ---
	surveys := v1.Group("/surveys", staffUp)
	{
		surveys.GET("", surveyController.List)
		surveys.GET("/:id", surveyController.GetByID)
		surveys.POST("", surveyController.Create)
		surveys.PUT("/:id", surveyController.Update)
		surveys.DELETE("/:id", surveyController.Delete)
	}

	// --- Consultant routes ---
	consultants := v1.Group("/consultants")
	{
		consultants.GET("", public, consultantController.List)
		consultants.GET("/:id", public, consultantController.GetByID)
		consultants.GET("/:id/schedule", public, consultantController.WeeklySchedule)

		consultants.POST("", adminOnly, consultantController.Create)
		consultants.PUT("/:id", consultantOrAdmin, consultantController.Update)
		consultants.PUT("/:id/disable", adminOnly, consultantController.Disable)
		consultants.PUT("/:id/enable", adminOnly, consultantController.Enable)

		consultants.POST("/:id/schedule", consultantOrAdmin, consultantController.AddScheduleSlot)
		consultants.DELETE("/:id/schedule/:slotId", consultantOrAdmin, consultantController.RemoveScheduleSlot)
	}

	// --- Appointment routes ---
	appointments := v1.Group("/appointments")
	{
		appointments.POST("", memberOnly, appointmentController.Book)
		appointments.GET("", memberOnly, appointmentController.ListMine)
		appointments.PUT("/:id/cancel", memberOnly, appointmentController.Cancel)

		appointments.GET("/assigned", consultantOnly, appointmentController.ListAssigned)
		appointments.PUT("/:id/confirm", consultantOnly, appointmentController.Confirm)
		appointments.PUT("/:id/reject", consultantOnly, appointmentController.Reject)
	}

	// --- Meeting token route ---
	meetings := v1.Group("/meetings")
	{
		meetings.POST("/token", anyAccount, meetingController.IssueToken)
	}

	// --- Article routes ---
	articles := v1.Group("/articles")
	{
		articles.GET("", public, articleController.List)
		articles.GET("/:id", public, articleController.GetByID)

		articles.POST("", staffUp, articleController.Create)
		articles.PUT("/:id", staffUp, articleController.Update)
		articles.PUT("/:id/disable", staffUp, articleController.Disable)
		articles.PUT("/:id/enable", staffUp, articleController.Enable)
	}

	// --- Course routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", public, courseController.List)
		courses.GET("/:id", public, courseController.GetByID)

		courses.POST("", staffUp, courseController.Create)
		courses.PUT("/:id", staffUp, courseController.Update)
		courses.PUT("/:id/disable", staffUp, courseController.Disable)
		courses.PUT("/:id/enable", staffUp, courseController.Enable)
		courses.POST("/:id/lessons", staffUp, courseController.AddLesson)
		courses.PUT("/:id/lessons/:lessonId", staffUp, courseController.UpdateLesson)
		courses.DELETE("/:id/lessons/:lessonId", staffUp, courseController.DeleteLesson)
		courses.POST("/:id/exam", staffUp, courseController.CreateExam)

		courses.GET("/:id/exam", anyAccount, courseController.GetExam)
		courses.POST("/:id/enroll", memberOnly, courseController.Enroll)
		courses.POST("/:id/exam/submit", memberOnly, courseController.SubmitExam)
	}

	v1.GET("/enrollments", memberOnly, courseController.ListEnrollments)
}
