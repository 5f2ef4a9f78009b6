package handlers

import (
	"accident-risk-api/i18n"
	"accident-risk-api/risk"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

type ClauseView struct {
	Factor   risk.FactorID `json:"factor"`
	Severity int           `json:"severity"`
	Key      string        `json:"key"`
	Text     string        `json:"text"`
}

// PredictionView is a prediction rendered in the caller's language. The
// message keys are kept next to the text so clients can localize on their
// own.
type PredictionView struct {
	RiskLevel           risk.Level    `json:"risk_level"`
	RiskLevelLabel      string        `json:"risk_level_label"`
	RiskScore           int           `json:"risk_score"`
	Confidence          int           `json:"confidence"`
	ContributingFactors []string      `json:"contributing_factors"`
	Recommendations     []string      `json:"recommendations"`
	Clauses             []ClauseView  `json:"clauses"`
	RecommendationKeys  []string      `json:"recommendation_keys"`
	Factors             []risk.Factor `json:"factors"`
	Language            string        `json:"language"`
}

func RenderPrediction(tr *i18n.Translator, tag language.Tag, p risk.Prediction) PredictionView {
	view := PredictionView{
		RiskLevel:          p.Level,
		RiskLevelLabel:     tr.Translate(tag, "level."+string(p.Level)),
		RiskScore:          p.Score,
		Confidence:         p.Confidence,
		Recommendations:    tr.TranslateAll(tag, p.Recommendations),
		RecommendationKeys: p.Recommendations,
		Factors:            p.Factors,
		Language:           tag.String(),
	}

	view.ContributingFactors = make([]string, len(p.ContributingFactors))
	view.Clauses = make([]ClauseView, len(p.ContributingFactors))
	for i, cl := range p.ContributingFactors {
		text := tr.Translate(tag, cl.Key)
		view.ContributingFactors[i] = text
		view.Clauses[i] = ClauseView{Factor: cl.Factor, Severity: cl.Severity, Key: cl.Key, Text: text}
	}
	return view
}

// requestLanguage prefers ?lang= over Accept-Language.
func requestLanguage(c *gin.Context, tr *i18n.Translator) language.Tag {
	return tr.Match(c.Query("lang"), c.GetHeader("Accept-Language"))
}
