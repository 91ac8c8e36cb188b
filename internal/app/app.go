// Package app собирает хранилище, репозитории и сервисы для бинарников и тестов.
package app

import (
	"context"

	"github.com/skillmatrix/skill-matrix/internal/clock"
	"github.com/skillmatrix/skill-matrix/internal/config"
	"github.com/skillmatrix/skill-matrix/internal/db"
	"github.com/skillmatrix/skill-matrix/internal/domain/valueobject"
	"github.com/skillmatrix/skill-matrix/internal/exchange"
	"github.com/skillmatrix/skill-matrix/internal/repository"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

// Repositories все репозитории поверх одного хранилища.
type Repositories struct {
	Groups      *repository.GroupRepository
	Users       *repository.UserRepository
	Categories  *repository.CategoryRepository
	Skills      *repository.SkillRepository
	Evaluations *repository.EvaluationRepository
	Targets     *repository.TargetRepository
	System      *repository.SystemRepository
}

// Services прикладной слой.
type Services struct {
	Groups      *service.GroupService
	Users       *service.UserService
	Categories  *service.CategoryService
	Skills      *service.SkillService
	Evaluations *service.EvaluationService
	Seed        *service.SeedService
	System      *service.SystemService
	Exporter    *exchange.Exporter
	Importer    *exchange.Importer
}

// Settings параметры прикладного слоя, не зависящие от хранилища.
type Settings struct {
	Levels valueobject.LevelRange
	// BackupDir каталог резервных копий по умолчанию.
	BackupDir string
}

type App struct {
	Store        *db.Store
	Repositories Repositories
	Services     Services
}

// Open открывает хранилище по конфигурации и собирает приложение.
func Open(ctx context.Context, cfg *config.Config, notifier service.Notifier) (*App, error) {
	store, err := db.Open(ctx, db.Options{
		Driver: cfg.DBDriver,
		Path:   cfg.DatabasePath,
		DSN:    cfg.DatabaseURL,
	})
	if err != nil {
		return nil, err
	}

	levels, err := valueobject.NewLevelRange(cfg.LevelMin, cfg.LevelMax)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return New(store, clock.System(), Settings{Levels: levels, BackupDir: cfg.BackupDir}, notifier), nil
}

// New собирает приложение поверх готового хранилища.
func New(store *db.Store, clk clock.Clock, settings Settings, notifier service.Notifier) *App {
	repos := Repositories{
		Groups:      repository.NewGroupRepository(store, clk),
		Users:       repository.NewUserRepository(store, clk),
		Categories:  repository.NewCategoryRepository(store, clk),
		Skills:      repository.NewSkillRepository(store, clk),
		Evaluations: repository.NewEvaluationRepository(store, clk),
		Targets:     repository.NewTargetRepository(store, clk),
		System:      repository.NewSystemRepository(store),
	}

	groups := service.NewGroupService(repos.Groups, notifier)
	users := service.NewUserService(repos.Users, repos.Groups, notifier)
	categories := service.NewCategoryService(repos.Categories, repos.Skills, notifier)
	skills := service.NewSkillService(repos.Skills, notifier)
	evaluations := service.NewEvaluationService(service.EvaluationDeps{
		Evaluations: repos.Evaluations,
		Targets:     repos.Targets,
		Users:       repos.Users,
		Groups:      repos.Groups,
		Skills:      repos.Skills,
		Categories:  repos.Categories,
	}, settings.Levels, notifier)

	return &App{
		Store:        store,
		Repositories: repos,
		Services: Services{
			Groups:      groups,
			Users:       users,
			Categories:  categories,
			Skills:      skills,
			Evaluations: evaluations,
			Seed:        service.NewSeedService(groups, users, categories, skills, evaluations),
			System:      service.NewSystemService(repos.System, clk, settings.BackupDir),
			Exporter:    exchange.NewExporter(repos.Evaluations, repos.Categories),
			Importer: exchange.NewImporter(exchange.ImportDeps{
				Groups:      groups,
				Users:       users,
				Categories:  categories,
				Skills:      skills,
				Evaluations: evaluations,
			}),
		},
	}
}

// Close освобождает хранилище.
func (a *App) Close() error {
	return a.Store.Close()
}
