package handlers

import (
	"encoding/json"
	"net/http"

	"accident-risk-api/alcohol"
	"accident-risk-api/i18n"
	"accident-risk-api/risk"
	"accident-risk-api/services"
	"accident-risk-api/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const maxFrameBytes = 16 << 10

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// LivePredictions scores every PredictionRequest frame a client sends, so a
// form can show the risk while it is being filled in.
func LivePredictions(engine *risk.Engine, table *alcohol.Table, translator *i18n.Translator, authService *services.AuthService, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService.Enabled() {
			tokenStr := c.Query("token")
			if tokenStr == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token query parameter"})
				return
			}
			if _, err := authService.ValidateToken(tokenStr); err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
		}
		tag := requestLanguage(c, translator)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxFrameBytes)

		session := uuid.NewString()
		log.Debug("live session opened", zap.String("session", session))
		defer log.Debug("live session closed", zap.String("session", session))

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}

			reply := scoreFrame(frame, engine, table, translator, tag)
			reply["session"] = session
			if err := conn.WriteJSON(reply); err != nil {
				log.Debug("ws write error", zap.String("session", session), zap.Error(err))
				return
			}
		}
	}
}

func scoreFrame(frame []byte, engine *risk.Engine, table *alcohol.Table, translator *i18n.Translator, tag language.Tag) gin.H {
	var req PredictionRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return gin.H{"type": "error", "error": "invalid JSON: " + err.Error()}
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		return gin.H{"type": "error", "error": err.Error()}
	}

	in, _, err := req.Input(table)
	if err != nil {
		return gin.H{"type": "error", "error": err.Error()}
	}

	pred := engine.Predict(in)
	telemetry.ObservePrediction(string(pred.Level), pred.Score)
	return gin.H{"type": "prediction", "data": RenderPrediction(translator, tag, pred)}
}
