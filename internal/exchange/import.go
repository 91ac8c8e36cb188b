package exchange

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/skillmatrix/skill-matrix/internal/domain/valueobject"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/service"
	"github.com/skillmatrix/skill-matrix/internal/validation"
)

type GroupResolver interface {
	EnsureGroup(ctx context.Context, name string) (*models.Group, bool, error)
}

type UserResolver interface {
	EnsureUser(ctx context.Context, groupID *int64, name string) (*models.User, bool, error)
}

type CategoryResolver interface {
	EnsurePath(ctx context.Context, path string) (*models.Category, int, error)
}

type SkillResolver interface {
	EnsureSkill(ctx context.Context, categoryID int64, name string) (*models.Skill, bool, error)
}

type EvaluationWriter interface {
	Levels() valueobject.LevelRange
	ImportEvaluations(ctx context.Context, evaluations []models.Evaluation) (int64, error)
}

// ImportDeps сервисы, через которые загрузка находит или создаёт сущности.
type ImportDeps struct {
	Groups      GroupResolver
	Users       UserResolver
	Categories  CategoryResolver
	Skills      SkillResolver
	Evaluations EvaluationWriter
}

// RowError ошибка разбора одной строки файла. Row считается с 1, включая заголовок.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport итог загрузки.
type ImportReport struct {
	Format            Format     `json:"format"`
	Rows              int        `json:"rows"`
	Imported          int64      `json:"imported"`
	CreatedGroups     int        `json:"created_groups"`
	CreatedUsers      int        `json:"created_users"`
	CreatedCategories int        `json:"created_categories"`
	CreatedSkills     int        `json:"created_skills"`
	Errors            []RowError `json:"errors"`
}

type Importer struct {
	deps ImportDeps
}

func NewImporter(deps ImportDeps) *Importer {
	return &Importer{deps: deps}
}

// Import читает файл целиком, определяет формат и загружает оценки.
// Строка с ошибкой попадает в отчёт и пропускается, остальные загружаются.
func (im *Importer) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("exchange: чтение файла: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperror.Validation("файл пуст")
	}

	format, err := Detect(data)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	var rows [][]string
	switch format {
	case FormatXLSX:
		rows, err = readXLSX(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, "не удалось разобрать файл")
	}

	report := &ImportReport{Format: format, Errors: []RowError{}}
	var evaluations []models.Evaluation
	for i, row := range rows {
		line := i + 1
		if i == 0 && isHeader(row) {
			continue
		}
		if isBlank(row) {
			continue
		}
		report.Rows++

		evaluation, err := im.resolveRow(ctx, row, report)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Row: line, Message: rowMessage(err)})
			continue
		}
		evaluations = append(evaluations, *evaluation)
	}

	if report.Imported, err = im.deps.Evaluations.ImportEvaluations(ctx, evaluations); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"format":   format,
		"rows":     report.Rows,
		"imported": report.Imported,
		"errors":   len(report.Errors),
	}).Info("exchange: оценки загружены")
	return report, nil
}

func (im *Importer) resolveRow(ctx context.Context, row []string, report *ImportReport) (*models.Evaluation, error) {
	if len(row) < len(Header) {
		return nil, fmt.Errorf("ожидается %d колонок, получено %d", len(Header), len(row))
	}
	groupName := strings.TrimSpace(row[0])
	userName := strings.TrimSpace(row[1])
	path := strings.TrimSpace(row[2])
	skillName := strings.TrimSpace(row[3])

	level, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return nil, fmt.Errorf("уровень %q не является числом", row[4])
	}
	if err := im.deps.Evaluations.Levels().Validate(level); err != nil {
		return nil, err
	}
	// Отклонённая строка ничего не создаёт: все поля проверяются до записи.
	if err := validateRow(groupName, userName, path, skillName); err != nil {
		return nil, err
	}

	var groupID *int64
	if groupName != "" {
		group, created, err := im.deps.Groups.EnsureGroup(ctx, groupName)
		if err != nil {
			return nil, err
		}
		if created {
			report.CreatedGroups++
		}
		groupID = &group.ID
	}

	user, created, err := im.deps.Users.EnsureUser(ctx, groupID, userName)
	if err != nil {
		return nil, err
	}
	if created {
		report.CreatedUsers++
	}

	category, createdCategories, err := im.deps.Categories.EnsurePath(ctx, path)
	report.CreatedCategories += createdCategories
	if err != nil {
		return nil, err
	}

	skill, created, err := im.deps.Skills.EnsureSkill(ctx, category.ID, skillName)
	if err != nil {
		return nil, err
	}
	if created {
		report.CreatedSkills++
	}

	return &models.Evaluation{UserID: user.ID, SkillID: skill.ID, Level: level}, nil
}

func validateRow(groupName, userName, path, skillName string) error {
	if groupName != "" {
		if err := validation.ValidateName("название группы", groupName); err != nil {
			return err
		}
	}
	if err := validation.ValidateName("имя пользователя", userName); err != nil {
		return err
	}
	names := service.SplitPath(path)
	if len(names) == 0 {
		return apperror.Validation("путь категории пуст")
	}
	for _, name := range names {
		if err := validation.ValidateCategoryName(name); err != nil {
			return err
		}
	}
	return validation.ValidateName("название навыка", skillName)
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if firstLine, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		reader.Comma = ';'
	}
	return reader.ReadAll()
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if index, err := f.GetSheetIndex(sheetName); err == nil && index >= 0 {
		sheet = sheetName
	}
	return f.GetRows(sheet)
}

func isHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(row[0], "\ufeff")))
	return first == Header[0] || first == "группа"
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func rowMessage(err error) string {
	if appErr, ok := apperror.From(err); ok {
		return appErr.Message
	}
	return err.Error()
}
