package provision

import (
	"github.com/gofiber/fiber/v2"
)

// Feature wires the provisioning service into the loader system.
type Feature struct {
	service *Service
}

// NewFeature creates the provisioning feature.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service}
}

func (f *Feature) Name() string {
	return "provision"
}

func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
