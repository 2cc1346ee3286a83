package routes

import (
	"simagang-backend/internal/handler"
	"simagang-backend/internal/middleware"
	"simagang-backend/internal/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPengaturanRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewPengaturanHandler(newAbsensiService(db))

	admin := app.Group("/api/admin/pengaturan", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSuperadmin))

	admin.Get("/batas-telat", hdl.GetBatasTelat)
	admin.Put("/batas-telat", hdl.SetBatasTelat)
}
