package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

// SeedHandler заполняет пустую базу примерными данными. Доступен только в development.
type SeedHandler struct {
	seed *service.SeedService
}

func NewSeedHandler(seed *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seed}
}

// Seed POST /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seed.Seed(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, result)
}
