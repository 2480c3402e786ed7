package routers

import (
	"context"
	"io"
	"os"
	"time"

	"course-service/config"
	categoryController "course-service/controllers/category"
	courseController "course-service/controllers/course"
	"course-service/database"
	"course-service/middleware"
	"course-service/routers/categoryRoutes"
	"course-service/routers/courseRoutes"
	"course-service/services"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Dependencies are the pieces NewApp wires together
type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger services.Logger
	// AccessLog receives one line per request. Nil disables access logging.
	AccessLog io.Writer
}

// NewApp builds the Fiber application with every catalog route mounted under
// the configured API prefix.
func NewApp(deps Dependencies) *fiber.App {
	cfg := deps.Config

	app := fiber.New(fiber.Config{
		AppName:      "course-service",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: middleware.ErrorHandler(deps.Logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Content-Type,Authorization,X-Request-ID",
	}))

	if deps.AccessLog != nil {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${ip} ${method} ${path} ${status} ${latency}\n",
			Output: deps.AccessLog,
		}))
	}

	categories := services.NewCategoryService(database.NewCategoryRepository(deps.DB), deps.Logger)
	courses := services.NewCourseService(database.NewCourseRepository(deps.DB), categories, deps.Logger)

	app.Get("/health", healthHandler(deps.DB))

	api := app.Group(cfg.APIPrefix)
	categoryRoutes.SetupCategoryRoutes(api, categoryController.NewCategoryController(categories, deps.Logger))
	courseRoutes.SetupCourseRoutes(api, courseController.NewCourseController(courses, deps.Logger), cfg.DefaultPageSize)

	app.Use(middleware.NotFoundHandler)
	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hostname, _ := os.Hostname()
		data := fiber.Map{
			"uptime":   time.Since(startedAt).Round(time.Second).String(),
			"hostname": hostname,
			"database": "up",
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			data["database"] = "down"
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Service unhealthy!", data)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Service healthy!", data)
	}
}

var startedAt = time.Now()
