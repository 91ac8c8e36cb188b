package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/exchange"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
)

// ExchangeHandler выгрузка и загрузка оценок файлом.
type ExchangeHandler struct {
	exporter      *exchange.Exporter
	importer      *exchange.Importer
	maxUploadSize int64
}

func NewExchangeHandler(exporter *exchange.Exporter, importer *exchange.Importer, maxUploadSizeMB int64) *ExchangeHandler {
	if maxUploadSizeMB <= 0 {
		maxUploadSizeMB = 10
	}
	return &ExchangeHandler{
		exporter:      exporter,
		importer:      importer,
		maxUploadSize: maxUploadSizeMB << 20,
	}
}

// Export GET /export?format=csv|xlsx
func (h *ExchangeHandler) Export(c *gin.Context) {
	format, err := exchange.ParseFormat(c.Query("format"))
	if err != nil {
		response.BadRequest(c, "формат должен быть csv или xlsx")
		return
	}

	// Буферизуем, чтобы ошибка выгрузки не оборвала уже начатый ответ
	var buf bytes.Buffer
	if _, err := h.exporter.Export(c.Request.Context(), &buf, format); err != nil {
		fail(c, err)
		return
	}

	filename := "skill_matrix_" + time.Now().Format("20060102") + "." + string(format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Import POST /import, multipart поле file
func (h *ExchangeHandler) Import(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+1<<20)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "файл не передан или превышает допустимый размер")
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		response.BadRequest(c, "файл превышает допустимый размер")
		return
	}

	report, err := h.importer.Import(c.Request.Context(), file)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, report)
}
