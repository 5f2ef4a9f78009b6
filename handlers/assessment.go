package handlers

import (
	"net/http"
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/i18n"
	"accident-risk-api/risk"
	"accident-risk-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AssessmentResponse struct {
	Input      risk.Input      `json:"input"`
	Prediction PredictionView  `json:"prediction"`
	Alcohol    *alcohol.Result `json:"alcohol,omitempty"`
	Fallbacks  []string        `json:"fallbacks"`
	AssessedAt time.Time       `json:"assessed_at"`
}

type AssessmentHandler struct {
	assessor   *services.Assessor
	translator *i18n.Translator
	log        *zap.Logger
}

func NewAssessmentHandler(assessor *services.Assessor, translator *i18n.Translator, log *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{assessor: assessor, translator: translator, log: log}
}

// Assess builds the input from the weather and maps providers plus the
// driver's answers, then scores it.
func (h *AssessmentHandler) Assess(c *gin.Context) {
	var req services.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a, err := h.assessor.Assess(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, AssessmentResponse{
		Input:      a.Input,
		Prediction: RenderPrediction(h.translator, requestLanguage(c, h.translator), a.Prediction),
		Alcohol:    a.Alcohol,
		Fallbacks:  a.Fallbacks,
		AssessedAt: a.AssessedAt,
	})
}
