package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 1000
	MaxEmployeeIDLength  = 32

	// PathSeparator разделитель в пути категорий "Родитель/Потомок".
	PathSeparator = "/"
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.Validation("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return apperror.Validation("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation("%s обязателен", fieldName)
	}
	return nil
}

// NormalizeName обрезает пробелы и схлопывает повторяющиеся пробелы внутри.
func NormalizeName(value string) string {
	return strings.Join(strings.FieldsFunc(value, unicode.IsSpace), " ")
}

// ValidateName проверяет имя сущности (группы, пользователя, категории, навыка).
func ValidateName(fieldName, value string) error {
	if err := ValidateNonEmpty(fieldName, value); err != nil {
		return err
	}
	return ValidateLength(fieldName, NormalizeName(value), 1, MaxNameLength)
}

// ValidateCategoryName дополнительно запрещает разделитель пути категорий.
func ValidateCategoryName(value string) error {
	if err := ValidateName("название категории", value); err != nil {
		return err
	}
	if strings.Contains(value, PathSeparator) {
		return apperror.Validation("название категории не может содержать символ %s", PathSeparator)
	}
	return nil
}

// ValidateDescription проверяет необязательное описание.
func ValidateDescription(description string) error {
	return ValidateLength("описание", description, 0, MaxDescriptionLength)
}

// ValidateEmployeeID проверяет табельный номер, если он задан.
func ValidateEmployeeID(employeeID *string) error {
	if employeeID == nil {
		return nil
	}
	if err := ValidateNonEmpty("табельный номер", *employeeID); err != nil {
		return err
	}
	return ValidateLength("табельный номер", *employeeID, 1, MaxEmployeeIDLength)
}

// ValidateID проверяет числовой идентификатор.
func ValidateID(fieldName string, id int64) error {
	if id <= 0 {
		return apperror.Validation("%s должен быть положительным числом", fieldName)
	}
	return nil
}

// ValidateOptionalID проверяет необязательный идентификатор.
func ValidateOptionalID(fieldName string, id *int64) error {
	if id == nil {
		return nil
	}
	return ValidateID(fieldName, *id)
}
