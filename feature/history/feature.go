package history

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the history service into the loader system.
type Feature struct {
	service *Service
}

// NewFeature creates the history feature. A nil db disables it.
func NewFeature(db *gorm.DB, logger *zap.Logger) *Feature {
	if db == nil {
		return &Feature{}
	}
	return &Feature{service: NewService(db, logger)}
}

// Service returns the underlying service, or nil when disabled.
func (f *Feature) Service() *Service {
	return f.service
}

func (f *Feature) Name() string {
	return "history"
}

func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Migrate(); err != nil {
		return err
	}
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
