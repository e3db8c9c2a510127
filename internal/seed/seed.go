// Package seed fills an empty database with the initial catalog and accounts.
package seed

import (
	"context"
	"fmt"

	"barwy-shop/internal/database"
	"barwy-shop/internal/domain"
	"barwy-shop/internal/repository"
	"barwy-shop/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultPassword  = "123456"
	DefaultUserImage = "user.jpg"

	CategoryPatriotic     = "Патріотичні"
	CategoryLandscapes    = "Пейзажі"
	CategoryUncategorized = "Uncategorized"
)

// Step is one guarded stage of the pipeline. Run is called only when ShouldRun reports true.
type Step struct {
	Name      string
	ShouldRun func(ctx context.Context) (bool, error)
	Run       func(ctx context.Context) error
}

// Seeder runs its steps in order, each inside its own transaction
type Seeder struct {
	steps  []Step
	tx     database.TxManager
	logger *zap.Logger
}

// New builds the default pipeline: roles, users, categories, products
func New(
	identity service.IdentityService,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	tx database.TxManager,
	logger *zap.Logger,
) *Seeder {
	return NewWithSteps(tx, logger,
		rolesStep(identity),
		usersStep(identity),
		categoriesStep(categories),
		productsStep(products),
	)
}

// NewWithSteps builds a pipeline from arbitrary steps
func NewWithSteps(tx database.TxManager, logger *zap.Logger, steps ...Step) *Seeder {
	return &Seeder{steps: steps, tx: tx, logger: logger}
}

// Run executes the pipeline. It stops at the first failing step; earlier steps stay committed.
func (s *Seeder) Run(ctx context.Context) error {
	for _, step := range s.steps {
		var ran bool
		err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			should, err := step.ShouldRun(ctx)
			if err != nil || !should {
				return err
			}
			ran = true
			return step.Run(ctx)
		})
		if err != nil {
			s.logger.Error("Seed step failed", zap.String("step", step.Name), zap.Error(err))
			return fmt.Errorf("seed step %s: %w", step.Name, err)
		}

		if ran {
			s.logger.Info("Seed step applied", zap.String("step", step.Name))
		} else {
			s.logger.Debug("Seed step skipped", zap.String("step", step.Name))
		}
	}
	return nil
}

func none(anyFn func(ctx context.Context) (bool, error)) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		exists, err := anyFn(ctx)
		return !exists, err
	}
}

func rolesStep(identity service.IdentityService) Step {
	return Step{
		Name:      "roles",
		ShouldRun: none(identity.AnyRoles),
		Run: func(ctx context.Context) error {
			for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
				if err := identity.CreateRole(ctx, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func usersStep(identity service.IdentityService) Step {
	accounts := []struct {
		email string
		name  string
		role  string
	}{
		{"admin@gmail.com", "Admin", domain.RoleAdmin},
		{"user@gmail.com", "User", domain.RoleUser},
	}

	return Step{
		Name:      "users",
		ShouldRun: none(identity.AnyUsers),
		Run: func(ctx context.Context) error {
			for _, a := range accounts {
				user := &domain.User{
					Email:     a.email,
					UserName:  a.email,
					FirstName: a.name,
					LastName:  a.name,
					Image:     DefaultUserImage,
				}
				if err := identity.CreateUser(ctx, user, DefaultPassword); err != nil {
					return err
				}
				if err := identity.AddToRole(ctx, user.ID, a.role); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func categoriesStep(categories repository.CategoryRepository) Step {
	return Step{
		Name:      "categories",
		ShouldRun: none(categories.Any),
		Run: func(ctx context.Context) error {
			for _, name := range []string{CategoryPatriotic, CategoryLandscapes, CategoryUncategorized} {
				if err := categories.Create(ctx, domain.NewCategory(name)); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func productsStep(products repository.ProductRepository) Step {
	paintings := []domain.Product{
		{Name: "Все буде Україна", Price: decimal.NewFromInt(245), Size: "40x50", Article: "0049Т1", Image: "5jghk0xy.iff.jpg"},
		{Name: "Тризуб", Price: decimal.NewFromInt(245), Size: "40x50", Article: "0070П1", Image: "j2iosauv.nv4.jpg"},
	}

	return Step{
		Name:      "products",
		ShouldRun: none(products.Any),
		Run: func(ctx context.Context) error {
			for _, p := range paintings {
				product := p
				if err := products.Create(ctx, &product); err != nil {
					return err
				}
				if err := products.AddToCategory(ctx, product.ID, CategoryPatriotic); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
