// Package exchange выгружает и загружает оценки в CSV и XLSX.
// Строка файла: группа, пользователь, путь категории "A/B", навык, уровень.
package exchange

import (
	"fmt"
	"strings"

	"github.com/h2non/filetype"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const sheetName = "Оценки"

// Header заголовок выгружаемого файла.
var Header = []string{"group", "user", "category_path", "skill", "level"}

// ParseFormat разбирает имя формата; пустая строка означает CSV.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("exchange: неизвестный формат %q", value)
	}
}

// ContentType MIME-тип файла формата.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return filetype.GetType("xlsx").MIME.Value
	}
	return "text/csv; charset=utf-8"
}

// Detect определяет формат по содержимому: xlsx (или zip-контейнер) узнаётся по сигнатуре,
// текст считается CSV.
func Detect(head []byte) (Format, error) {
	if filetype.Is(head, "xlsx") || filetype.Is(head, "zip") {
		return FormatXLSX, nil
	}
	kind, err := filetype.Match(head)
	if err == nil && kind != filetype.Unknown {
		return "", fmt.Errorf("exchange: неподдерживаемый тип файла %s", kind.MIME.Value)
	}
	return FormatCSV, nil
}
