package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "github.com/riyanshibariyaa/jp5/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/riyanshibariyaa/jp5/internal/ats"
	"github.com/riyanshibariyaa/jp5/internal/auth"
	"github.com/riyanshibariyaa/jp5/internal/controller/admin"
	"github.com/riyanshibariyaa/jp5/internal/controller/application"
	"github.com/riyanshibariyaa/jp5/internal/controller/company"
	"github.com/riyanshibariyaa/jp5/internal/controller/file"
	"github.com/riyanshibariyaa/jp5/internal/controller/interview"
	"github.com/riyanshibariyaa/jp5/internal/controller/jobpost"
	resumectl "github.com/riyanshibariyaa/jp5/internal/controller/resume"
	"github.com/riyanshibariyaa/jp5/internal/controller/stage"
	"github.com/riyanshibariyaa/jp5/internal/middleware"
	"github.com/riyanshibariyaa/jp5/internal/model"
	"github.com/riyanshibariyaa/jp5/internal/resume"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	blacklist := auth.NewInMemoryBlacklistStore()
	atsService := ats.NewService(s.DB, s.Mailer, s.Calendar)

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(blacklist)

	applicationCtl := application.NewApplicationController(atsService)
	interviewCtl := interview.NewInterviewController(atsService)
	stageCtl := stage.NewStageController(atsService)
	jobCtl := jobpost.NewJobPostController(s.DB)
	resumeCtl := resumectl.NewResumeController(s.DB, resume.NewRegexExtractor())
	fileCtl := file.NewFileController(s.DB)
	companyCtl := company.NewCompanyController(s.DB)
	adminCtl := admin.NewAdminController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.SafeHeader())
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LoginHandler)
			authRoute.POST("register", lAuth.RegisterHandler)
		}

		// Public job browsing
		v1.GET("jobs", jobCtl.GetPosts)
		v1.GET("jobs/:id", jobCtl.GetPostByID)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(blacklist))

			needAuth.GET("auth/me", lAuth.MeHandler)
			needAuth.POST("auth/logout", logout.LogoutHandler)

			fileRoute := needAuth.Group("/file")
			{
				fileRoute.GET(":id", fileCtl.GetFile)
			}

			// Job seeker endpoints
			needSeeker := needAuth.Group("")
			{
				needSeeker.Use(middleware.CheckRole(model.RoleJobSeeker))
				needSeeker.POST("applications", applicationCtl.SubmitHandler)
				needSeeker.POST("resume/parse", middleware.SizeLimit(10<<20), resumeCtl.ParseHandler)
			}

			// Shared application endpoints, role scoping happens in the service
			needAuth.GET("applications", applicationCtl.ListHandler)
			needAuth.GET("applications/:id", applicationCtl.GetHandler)
			needAuth.PATCH("applications/:id/stage", applicationCtl.TransitionHandler)
			needAuth.GET("interviews", interviewCtl.ListHandler)

			// Employer side endpoints
			needEmployerSide := needAuth.Group("")
			{
				needEmployerSide.Use(middleware.CheckRole(model.RoleEmployer, model.RoleHR, model.RoleAdmin))
				needEmployerSide.POST("jobs",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanPostJobs }),
					jobCtl.CreateJobPostHandler)
				needEmployerSide.PATCH("jobs/:id", jobCtl.EditJobPost)
				needEmployerSide.DELETE("jobs/:id", jobCtl.CloseJobPost)

				needEmployerSide.POST("applications/:id/notes",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanManageApplications }),
					applicationCtl.AddNoteHandler)

				needEmployerSide.POST("interviews",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanScheduleInterviews }),
					interviewCtl.ScheduleHandler)
				needEmployerSide.PATCH("interviews/:id/feedback",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanScheduleInterviews }),
					interviewCtl.FeedbackHandler)

				needEmployerSide.GET("ats/stages", stageCtl.ListHandler)

				needEmployerSide.GET("company/profile", companyCtl.GetProfile)
				needEmployerSide.PATCH("company/profile",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanManageCompanySettings }),
					companyCtl.UpdateProfile)
				needEmployerSide.GET("company/hr-users", companyCtl.ListHRUsers)
				needEmployerSide.PATCH("company/hr-users/:id",
					middleware.CheckPermission(func(p model.HRPermissions) bool { return p.CanManageHRUsers }),
					companyCtl.UpdateHRUser)
			}

			needEmployer := needAuth.Group("")
			{
				needEmployer.Use(middleware.CheckRole(model.RoleEmployer))
				needEmployer.POST("auth/register/hr", lAuth.RegisterHRHandler)
				needEmployer.POST("ats/stages", stageCtl.CreateHandler)
				needEmployer.DELETE("ats/stages/:id", stageCtl.DeactivateHandler)
				needEmployer.DELETE("company/hr-users/:id", companyCtl.RemoveHRUser)
			}

			needAdmin := needAuth.Group("")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("admin/stats", adminCtl.StatsHandler)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
