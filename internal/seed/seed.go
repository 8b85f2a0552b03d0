package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/sesa/portal/internal/app/models"
	appRepos "github.com/sesa/portal/internal/app/repositories"
	"github.com/sesa/portal/internal/pkg/auth"
)

func strPtr(s string) *string {
	return &s
}

// defaultDepartments are created on first boot so the portal is usable
// before an admin sets up the association's real structure.
var defaultDepartments = []appModels.Department{
	{Name: "Computer Engineering", Slug: "computer-engineering", Description: strPtr("Software, hardware and everything between"), Icon: strPtr("cpu"), Color: strPtr("#2563eb")},
	{Name: "Electrical Engineering", Slug: "electrical-engineering", Description: strPtr("Power, electronics and control systems"), Icon: strPtr("zap"), Color: strPtr("#f59e0b")},
	{Name: "Mechanical Engineering", Slug: "mechanical-engineering", Description: strPtr("Machines, thermodynamics and design"), Icon: strPtr("settings"), Color: strPtr("#dc2626")},
	{Name: "Civil Engineering", Slug: "civil-engineering", Description: strPtr("Structures, materials and infrastructure"), Icon: strPtr("building"), Color: strPtr("#16a34a")},
}

// CreateDefaultData seeds the default departments and the bootstrap
// super admin account when they don't exist yet.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, adminEmail, adminPassword string, lgr zerolog.Logger) error {
	departmentRepo := appRepos.NewDepartmentRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)
	profileRepo := appRepos.NewProfileRepository(dbPool)
	roleRepo := appRepos.NewRoleRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	for i := range defaultDepartments {
		department := defaultDepartments[i]

		exists, err := departmentRepo.ExistsByNameOrSlug(ctx, department.Name, department.Slug, 0)
		if err != nil {
			lgr.Error().Err(err).Str("slug", department.Slug).Msg("Error checking default department")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		if err := departmentRepo.Create(ctx, &department); err != nil {
			lgr.Error().Err(err).Str("slug", department.Slug).Msg("Error creating default department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if adminEmail == "" || adminPassword == "" {
		lgr.Info().Msg("No bootstrap admin configured, skipping admin creation")
		return finalErr
	}

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return errors.Join(finalErr, err)
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return finalErr
	}

	lgr.Info().Str("email", adminEmail).Msg("Creating bootstrap admin user...")

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &appModels.User{
		Email:    adminEmail,
		Password: hashedPassword,
		IsActive: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return errors.Join(finalErr, err)
	}

	fullName := "Portal Administrator"
	profile := &appModels.Profile{
		UserID:   admin.ID,
		FullName: &fullName,
	}
	if err := profileRepo.Create(ctx, profile); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin profile")
		finalErr = errors.Join(finalErr, err)
	}

	if err := roleRepo.Grant(ctx, admin.ID, appModels.RoleSuperAdmin); err != nil {
		lgr.Error().Err(err).Msg("Error granting super admin role")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Bootstrap admin user created")
	return finalErr
}
