package modules

import (
	"context"

	"familykarting/api/handlers"
	authservice "familykarting/api/services/auth"
	photoservice "familykarting/api/services/photo"
)

func newAuthService(deps *ModuleDependencies) *authservice.AuthService {
	return authservice.NewAuthService(&authservice.AuthServiceDeps{
		DB:         deps.DB,
		Sessions:   deps.Redis,
		SessionTTL: deps.Config.Session.TTL,
		Logger:     deps.Logger,
	})
}

func initializeAuthHandler(deps *ModuleDependencies, authService *authservice.AuthService) *handlers.AuthHandler {
	authHandlerDeps := &handlers.AuthHandlerDependencies{
		AuthService: authService,
		Cookie: handlers.CookieSettings{
			Name:   deps.Config.Session.CookieName,
			TTL:    deps.Config.Session.TTL,
			Secure: deps.Config.Session.Secure,
		},
		Logger: deps.Logger,
	}

	return handlers.NewAuthHandler(authHandlerDeps)
}

func initializeUploadHandler(deps *ModuleDependencies) *handlers.UploadHandler {
	photoDeps := &photoservice.PhotoServiceDeps{
		Store:        deps.Storage,
		Bucket:       deps.Config.Bucket.PhotoBucket,
		MaxDimension: deps.Config.Upload.MaxDimension,
		Logger:       deps.Logger,
	}

	uploadHandlerDeps := &handlers.UploadHandlerDependencies{
		PhotoService: photoservice.NewPhotoService(photoDeps),
		MaxBytes:     deps.Config.Upload.MaxBytes,
		Logger:       deps.Logger,
	}

	return handlers.NewUploadHandler(uploadHandlerDeps)
}

func initializeHealthHandler(deps *ModuleDependencies) *handlers.HealthHandler {
	checks := map[string]handlers.Pinger{
		"postgres": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
		"redis": handlers.PingFunc(func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}),
	}

	return handlers.NewHealthHandler(checks)
}
