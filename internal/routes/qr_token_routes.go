package routes

import (
	"simagang-backend/internal/handler"
	"simagang-backend/internal/middleware"
	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"
	"simagang-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupQRTokenRoutes(app *fiber.App, db *gorm.DB) {
	svc := service.NewQRTokenService(
		repository.NewQRTokenRepository(db),
		newAbsensiService(db),
		appLocation(),
	)
	hdl := handler.NewQRTokenHandler(svc)

	api := app.Group("/api/qr", middleware.Auth)

	api.Post("/scan", hdl.Scan)

	admin := app.Group("/api/admin/qr", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSuperadmin))

	admin.Post("/generate", hdl.Generate)
	admin.Get("/hari-ini", hdl.TokenHariIni)
	admin.Get("/riwayat", hdl.Riwayat)
}
