package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
)

// SeedResult сколько записей создано загрузкой примерных данных.
type SeedResult struct {
	Skipped     bool  `json:"skipped"`
	Groups      int   `json:"groups"`
	Users       int   `json:"users"`
	Categories  int   `json:"categories"`
	Skills      int   `json:"skills"`
	Evaluations int64 `json:"evaluations"`
}

type seedCategory struct {
	path        string
	description string
	skills      []string
}

var (
	seedGroups = []struct{ name, description string }{
		{"Команда разработки", "Разработка и сопровождение систем"},
		{"Команда дизайна", "Проектирование интерфейсов"},
		{"Команда тестирования", "Обеспечение качества"},
	}

	seedUsers = map[string][]string{
		"Команда разработки":   {"Александр Иванов", "Мария Петрова", "Дмитрий Смирнов"},
		"Команда дизайна":      {"Анна Козлова", "Илья Соколов"},
		"Команда тестирования": {"Елена Попова", "Никита Лебедев"},
	}

	seedCategories = []seedCategory{
		{"Программирование", "Языки и фреймворки", nil},
		{"Программирование/Go", "", []string{"Синтаксис", "Конкурентность", "Тестирование"}},
		{"Программирование/Python", "", []string{"Синтаксис", "Асинхронность"}},
		{"Базы данных", "Проектирование и эксплуатация БД", []string{"SQL", "Моделирование данных"}},
		{"Инфраструктура", "Серверы и сети", []string{"Linux", "Docker", "Сети"}},
		{"Управление проектами", "Планирование и коммуникации", []string{"Планирование", "Оценка сроков"}},
	}
)

// SeedService загружает примерные данные для разработки и демонстрации.
type SeedService struct {
	groups      *GroupService
	users       *UserService
	categories  *CategoryService
	skills      *SkillService
	evaluations *EvaluationService
}

func NewSeedService(groups *GroupService, users *UserService, categories *CategoryService, skills *SkillService, evaluations *EvaluationService) *SeedService {
	return &SeedService{
		groups:      groups,
		users:       users,
		categories:  categories,
		skills:      skills,
		evaluations: evaluations,
	}
}

// Seed создаёт группы, пользователей, дерево категорий, навыки, цели и оценки.
// Ничего не делает, если в базе уже есть группы.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.groups.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		logger.Log.WithField("groups", len(existing)).Info("seed: данные уже есть, пропускаем")
		return &SeedResult{Skipped: true}, nil
	}

	result := &SeedResult{}
	var userIDs []int64
	for _, g := range seedGroups {
		group, err := s.groups.CreateGroup(ctx, g.name, g.description)
		if err != nil {
			return nil, fmt.Errorf("seed service: группа %s: %w", g.name, err)
		}
		result.Groups++

		for _, name := range seedUsers[g.name] {
			user, err := s.users.CreateUser(ctx, UserInput{Name: name, GroupID: &group.ID})
			if err != nil {
				return nil, fmt.Errorf("seed service: пользователь %s: %w", name, err)
			}
			userIDs = append(userIDs, user.ID)
			result.Users++
		}
	}

	var skillIDs []int64
	for _, c := range seedCategories {
		category, created, err := s.categories.EnsurePath(ctx, c.path)
		if err != nil {
			return nil, fmt.Errorf("seed service: категория %s: %w", c.path, err)
		}
		result.Categories += created
		if c.description != "" && created > 0 {
			if _, err := s.categories.UpdateCategory(ctx, category.ID, CategoryInput{
				Name:        category.Name,
				Description: c.description,
				ParentID:    category.ParentID,
			}); err != nil {
				return nil, err
			}
		}

		for _, name := range c.skills {
			skill, err := s.skills.CreateSkill(ctx, SkillInput{Name: name, CategoryID: category.ID})
			if err != nil {
				return nil, fmt.Errorf("seed service: навык %s: %w", name, err)
			}
			skillIDs = append(skillIDs, skill.ID)
			result.Skills++
		}
	}

	levels := s.evaluations.Levels()
	span := levels.Max - levels.Min + 1
	for i, skillID := range skillIDs {
		if _, err := s.evaluations.SetTarget(ctx, skillID, levels.Max-i%2); err != nil {
			return nil, err
		}
	}

	var evaluations []models.Evaluation
	for i, userID := range userIDs {
		for j, skillID := range skillIDs {
			// Каждый пользователь оценён примерно по двум третям навыков
			if (i+j)%3 == 2 {
				continue
			}
			evaluations = append(evaluations, models.Evaluation{
				UserID:  userID,
				SkillID: skillID,
				Level:   levels.Min + (i*7+j*3)%span,
			})
		}
	}
	if result.Evaluations, err = s.evaluations.ImportEvaluations(ctx, evaluations); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"groups":      result.Groups,
		"users":       result.Users,
		"categories":  result.Categories,
		"skills":      result.Skills,
		"evaluations": result.Evaluations,
	}).Info("seed: примерные данные загружены")
	return result, nil
}
