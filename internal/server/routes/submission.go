package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// SetupSubmissionRoutes configures the public submit endpoint of every form
// variant, e.g. POST /contact-form/v1/submit/ and POST /whitepaper/v1/submit/.
func SetupSubmissionRoutes(router *gin.Engine, h *Handlers, m *Middleware) {
	for _, route := range h.Submissions {
		router.POST(
			fmt.Sprintf("/%s/v1/submit/", route.Namespace),
			m.Validation.ValidateSubmission(),
			route.Handler.Submit,
		)
	}
}
