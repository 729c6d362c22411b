package api

import (
	"net/http"

	"rummy-service/internal/middleware"
	"rummy-service/internal/service"
	"rummy-service/internal/service/analysis"
	"rummy-service/internal/service/match"
	"rummy-service/internal/ws"
	"rummy-service/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

// RegisterRoutes mounts the HTTP and WebSocket surface. apiKey guards the
// simulation endpoint when non-empty.
func RegisterRoutes(r *gin.Engine, services *service.Container, apiKey string) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Match)

	r.Use(middleware.RequestID(), middleware.RequestLogger())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/rummy/v1")
	{
		v1.POST("/organize", handler.Organize)
		v1.POST("/advise", handler.Advise)

		simGroup := v1.Group("/")
		simGroup.Use(middleware.APIKeyRequired(apiKey))
		{
			simGroup.POST("/simulate", handler.Simulate)
		}
	}

	r.GET("/ws/round", wsHandler.HandleRoundWS)
}

type organizeBody struct {
	Hand string `json:"hand" binding:"required"`
}

type adviseBody struct {
	Hand          string `json:"hand" binding:"required"`
	Discards      string `json:"discards"`
	OpponentKnown string `json:"opponentKnown"`
	TopDiscard    string `json:"topDiscard"`
	Threshold     *int   `json:"threshold" binding:"omitempty,min=0,max=10"`
	Strategy      string `json:"strategy" binding:"omitempty,oneof=plain risk_aware"`
}

type simulateBody struct {
	Matches  int    `json:"matches" binding:"required,min=1"`
	Seed     int64  `json:"seed" binding:"min=0"`
	Workers  int    `json:"workers" binding:"min=0"`
	Strategy string `json:"strategy" binding:"omitempty,oneof=plain risk_aware"`
}

func (h *Handler) Organize(c *gin.Context) {
	var body organizeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.services.Analysis.Organize(c.Request.Context(), analysis.OrganizeRequest{Hand: body.Hand})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, report)
}

func (h *Handler) Advise(c *gin.Context) {
	var body adviseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.services.Analysis.Advise(c.Request.Context(), analysis.AdviseRequest{
		Hand:          body.Hand,
		Discards:      body.Discards,
		OpponentKnown: body.OpponentKnown,
		TopDiscard:    body.TopDiscard,
		Threshold:     body.Threshold,
		Strategy:      body.Strategy,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, report)
}

func (h *Handler) Simulate(c *gin.Context) {
	var body simulateBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := h.services.Match.RunBatch(c.Request.Context(), match.BatchRequest{
		Matches:  body.Matches,
		Seed:     body.Seed,
		Workers:  body.Workers,
		Strategy: body.Strategy,
	})
	if err != nil {
		_ = c.Error(err)
		response.Fail(c, err)
		return
	}
	response.Success(c, summary)
}
