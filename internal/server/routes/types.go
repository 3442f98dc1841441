package routes

import (
	"formgate/internal/api/handlers"
	"formgate/internal/api/middleware"
)

// SubmissionRoute binds a form namespace to its submit handler.
type SubmissionRoute struct {
	Namespace string
	Handler   *handlers.SubmissionHandler
}

// Handlers contains all the route handlers
type Handlers struct {
	Submissions []SubmissionRoute
	Health      *handlers.HealthHandler
	Settings    *handlers.SettingsHandler
	Forms       *handlers.FormsHandler
}

// Middleware contains all the middleware
type Middleware struct {
	Validation *middleware.ValidationMiddleware
	Admin      *middleware.AdminMiddleware
}
