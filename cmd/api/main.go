package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/classboard-api/internal/config"
	"github.com/yourusername/classboard-api/internal/handler"
	"github.com/yourusername/classboard-api/internal/middleware"
	pgRepo "github.com/yourusername/classboard-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/classboard-api/internal/repository/redis"
	"github.com/yourusername/classboard-api/internal/service"
	"github.com/yourusername/classboard-api/pkg/auth"
	"github.com/yourusername/classboard-api/pkg/database"
	"github.com/yourusername/classboard-api/pkg/storage"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем файловое хранилище
	fileStorage, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		log.Printf("Failed to initialize file storage: %v", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	classRepo := pgRepo.NewClassRepo(db)
	postRepo := pgRepo.NewPostRepo(db)
	studentRepo := pgRepo.NewStudentRepo(db)
	assessmentRepo := pgRepo.NewAssessmentRepo(db)
	topicRepo := pgRepo.NewTopicRepo(db)
	noteRepo := pgRepo.NewNoteRepo(db)
	testCategoryRepo := pgRepo.NewTestCategoryRepo(db)
	testRepo := pgRepo.NewTestRepo(db)
	calendarRepo := pgRepo.NewCalendarRepo(db)
	accessLinkRepo := pgRepo.NewAccessLinkRepo(db)
	sessionRepo := pgRepo.NewQuizSessionRepo(db)
	participantRepo := pgRepo.NewQuizParticipantRepo(db)
	answerRepo := pgRepo.NewQuizAnswerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Почта: при отсутствии ключа ссылки просто не отправляются
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
	} else {
		log.Println("RESEND_API_KEY is not set, outgoing email is disabled")
		emailService = &service.NoopEmailService{}
	}

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	accessService := service.NewAccessService(accessLinkRepo, classRepo, postRepo, noteRepo, calendarRepo, cacheRepo, emailService)
	classService := service.NewClassService(classRepo, accessService)
	postService := service.NewPostService(postRepo, classRepo, fileStorage)
	studentService := service.NewStudentService(studentRepo, classRepo)
	assessmentService := service.NewAssessmentService(assessmentRepo, studentRepo, classRepo)
	noteService := service.NewNoteService(topicRepo, noteRepo, classRepo, fileStorage)
	testService := service.NewTestService(testCategoryRepo, testRepo, classRepo, fileStorage)
	calendarService := service.NewCalendarService(calendarRepo, classRepo)
	liveQuizService := service.NewLiveQuizService(sessionRepo, participantRepo, answerRepo, classRepo)
	aiService := service.NewAIService(cfg.AI.APIKey, cfg.AI.APIURL, cfg.AI.Model)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	classHandler := handler.NewClassHandler(classService, accessService, cfg.Server.BaseURL)
	postHandler := handler.NewPostHandler(postService)
	studentHandler := handler.NewStudentHandler(studentService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	noteHandler := handler.NewNoteHandler(noteService)
	testHandler := handler.NewTestHandler(testService)
	calendarHandler := handler.NewCalendarHandler(calendarService)
	liveQuizHandler := handler.NewLiveQuizHandler(liveQuizService)
	aiHandler := handler.NewAIHandler(aiService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://localhost:8000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Раздача загруженных файлов
	router.StaticFS(cfg.Uploads.PublicPrefix, http.Dir(fileStorage.Dir()))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.GET("/me", authHandler.Me)
			}
		}

		// Маршруты учителя
		authed := api.Group("/")
		authed.Use(authMiddleware.RequireAuth())
		{
			// Классы и ссылки доступа
			authed.GET("/classes", classHandler.List)
			authed.POST("/classes", classHandler.Create)

			classGroup := authed.Group("/classes/:id")
			classGroup.Use(middleware.ExtractUintParam("id", "classID"))
			{
				classGroup.GET("", classHandler.Get)
				classGroup.PUT("", classHandler.Update)
				classGroup.DELETE("", classHandler.Delete)

				classGroup.GET("/access-link", classHandler.GetAccessLink)
				classGroup.POST("/access-link/rotate", classHandler.RotateAccessLink)
				classGroup.POST("/access-link/share", classHandler.ShareAccessLink)

				// Лента объявлений
				classGroup.GET("/posts", postHandler.List)
				classGroup.POST("/posts", postHandler.Create)
				classGroup.POST("/whiteboard", postHandler.SaveWhiteboard)

				// Ученики
				classGroup.GET("/students", studentHandler.List)
				classGroup.POST("/students", studentHandler.Create)

				// Журнал оценок
				classGroup.GET("/assessments", assessmentHandler.List)
				classGroup.POST("/assessments", assessmentHandler.Create)
				classGroup.GET("/insights", assessmentHandler.Insights)
				classGroup.GET("/gradebook/export", assessmentHandler.Export)

				// Темы и конспекты (?kind=exam для экзаменационных материалов)
				classGroup.GET("/topics", noteHandler.ListTopics)
				classGroup.POST("/topics", noteHandler.CreateTopic)
				classGroup.GET("/notes", noteHandler.ListNotes)

				// Контрольные
				classGroup.GET("/test-categories", testHandler.ListCategories)
				classGroup.POST("/test-categories", testHandler.CreateCategory)
				classGroup.GET("/tests", testHandler.List)
				classGroup.POST("/tests", testHandler.Upload)

				classGroup.POST("/topics/:topicId/notes",
					middleware.ExtractUintParam("topicId", "topicID"), noteHandler.Upload)
			}

			// Операции над вложенными сущностями по их собственным ID
			authed.DELETE("/topics/:id", middleware.ExtractUintParam("id", "topicID"), noteHandler.DeleteTopic)
			authed.DELETE("/notes/:id", middleware.ExtractUintParam("id", "noteID"), noteHandler.Delete)
			authed.DELETE("/posts/:id", middleware.ExtractUintParam("id", "postID"), postHandler.Delete)
			authed.PATCH("/students/:id", middleware.ExtractUintParam("id", "studentID"), studentHandler.Update)
			authed.GET("/students/:id/history", middleware.ExtractUintParam("id", "studentID"), assessmentHandler.History)
			authed.GET("/assessments/:id/results", middleware.ExtractUintParam("id", "assessmentID"), assessmentHandler.Grid)
			authed.PUT("/assessments/:id/results", middleware.ExtractUintParam("id", "assessmentID"), assessmentHandler.SaveResults)
			authed.PATCH("/tests/:id", middleware.ExtractUintParam("id", "testID"), testHandler.Update)
			authed.DELETE("/tests/:id", middleware.ExtractUintParam("id", "testID"), testHandler.Delete)
			authed.DELETE("/test-categories/:id", middleware.ExtractUintParam("id", "categoryID"), testHandler.DeleteCategory)

			// Календарь
			authed.GET("/calendar", calendarHandler.List)
			authed.POST("/calendar", calendarHandler.Create)
			authed.PUT("/calendar/:id", middleware.ExtractUintParam("id", "eventID"), calendarHandler.Update)
			authed.DELETE("/calendar/:id", middleware.ExtractUintParam("id", "eventID"), calendarHandler.Delete)

			// AI-помощник
			authed.GET("/ai/status", aiHandler.Status)
			authed.POST("/ai/parse-event", aiHandler.ParseEvent)
			authed.POST("/ai/generate-quiz", aiHandler.GenerateQuiz)

			// Живые сессии: управление учителем
			authed.POST("/live-quiz", liveQuizHandler.CreateSession)
			authed.GET("/live-quiz/:code/status", liveQuizHandler.Status)
			authed.POST("/live-quiz/:code/start", liveQuizHandler.Start)
			authed.POST("/live-quiz/:code/advance", liveQuizHandler.Advance)
			authed.POST("/live-quiz/:code/end-question", liveQuizHandler.EndQuestion)
			authed.POST("/live-quiz/:code/end", liveQuizHandler.EndSession)
		}

		// Публичные маршруты: участие в сессии по коду и витрина учеников
		public := api.Group("/public")
		public.Use(rateLimiter.LimitByIP(middleware.LiveQuizRateLimitConfig()))
		{
			public.POST("/live-quiz/:code/join", liveQuizHandler.Join)
			public.GET("/live-quiz/:code/current", liveQuizHandler.Current)
			public.POST("/live-quiz/:code/answer", liveQuizHandler.Answer)
			public.GET("/live-quiz/:code/results", liveQuizHandler.Results)

			public.GET("/student/:token", classHandler.StudentView)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
