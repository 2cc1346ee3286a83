package routes

import (
	"simagang-backend/internal/handler"
	"simagang-backend/internal/middleware"
	"simagang-backend/internal/model"
	"simagang-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAbsensiRoutes(app *fiber.App, db *gorm.DB) {
	svc := newAbsensiService(db)
	hdl := handler.NewAbsensiHandler(svc, repository.NewHariLiburRepository(db))

	// Grouping route khusus absensi
	api := app.Group("/api/absensi", middleware.Auth)

	api.Post("/checkin", hdl.CheckIn)
	api.Post("/checkout/:id", hdl.CheckOut)
	api.Get("/riwayat", hdl.Riwayat)
	api.Get("/hari-ini", hdl.StatusHariIni)

	admin := app.Group("/api/admin", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSuperadmin))

	admin.Put("/absensi/:id", hdl.Override)
	admin.Get("/hari-libur", hdl.DaftarHariLibur)
	admin.Post("/hari-libur", hdl.TetapkanHariLibur)
	admin.Delete("/hari-libur/:tanggal", hdl.BatalkanHariLibur)
}
