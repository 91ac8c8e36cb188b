package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

// SystemHandler вкладка обслуживания: сведения о базе и резервная копия.
type SystemHandler struct {
	system *service.SystemService
}

func NewSystemHandler(system *service.SystemService) *SystemHandler {
	return &SystemHandler{system: system}
}

// Info GET /system/info
func (h *SystemHandler) Info(c *gin.Context) {
	info, err := h.system.Info(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, info)
}

// Backup POST /system/backup
// Файл всегда создаётся в каталоге копий сервера, путь клиент не задаёт.
func (h *SystemHandler) Backup(c *gin.Context) {
	path, err := h.system.Backup(c.Request.Context(), "")
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, dto.BackupResponse{Path: path})
}
