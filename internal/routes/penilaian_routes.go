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

func SetupPenilaianRoutes(app *fiber.App, db *gorm.DB) {
	svc := service.NewPenilaianService(
		repository.NewPenilaianRepository(db),
		repository.NewAbsensiRepository(db),
		repository.NewHariLiburRepository(db),
		repository.NewUserRepository(db),
		newPenilaianMailer(),
	)
	hdl := handler.NewPenilaianHandler(svc)

	admin := app.Group("/api/penilaian", middleware.Auth, middleware.Role(model.RoleAdmin, model.RoleSuperadmin))

	admin.Get("/hitung", hdl.Hitung)
	admin.Post("/", hdl.Simpan)
	admin.Get("/", hdl.Daftar)
	admin.Get("/peringkat", hdl.Peringkat)
	// "/final" harus terdaftar sebelum "/:id"
	admin.Delete("/final", hdl.HapusSemuaFinal)
	admin.Delete("/:id", hdl.HapusDraft)

	super := app.Group("/api/penilaian", middleware.Auth, middleware.Role(model.RoleSuperadmin))

	super.Put("/:id/reset", hdl.ResetKeDraft)
}
