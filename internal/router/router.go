package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/questgo/backend/api/handler"
)

type Handlers struct {
	Quest  *apiHandler.QuestHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, gatewayAuth func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Gateway webhook routes
	r.POST("/api/v1/quest/activate", gatewayAuth(handlers.Quest.Activate))
	r.POST("/api/v1/quest/evidence", gatewayAuth(handlers.Quest.SubmitEvidence))
	r.POST("/api/v1/quest/cancel", gatewayAuth(handlers.Quest.Cancel))
	r.GET("/api/v1/quest/progress/{userID}", gatewayAuth(handlers.Quest.Progress))

	return r
}
