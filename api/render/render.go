// Package render shapes API responses: error bodies and patrol statistics.
package render

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/patrol"
	"github.com/beka-birhanu/patrol-api/service"
	"github.com/beka-birhanu/patrol-api/simulation"
	"github.com/beka-birhanu/patrol-api/terrain"
	"github.com/gin-gonic/gin"
)

// Error codes returned in the "error" field.
const (
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeDimensionMismatch    = "DIMENSION_MISMATCH"
	CodeNoPassableTerrain    = "NO_PASSABLE_TERRAIN"
	CodeNotFound             = "NOT_FOUND"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeOptimizationFailed   = "OPTIMIZATION_FAILED"
	CodeInternal             = "INTERNAL_ERROR"
)

// Abort writes an error body with the given status and code.
func Abort(ctx *gin.Context, status int, code, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{"error": code, "message": message})
}

// Error maps err onto a status and code. Unknown errors become 500 with
// fallbackCode and a generic message.
func Error(ctx *gin.Context, err error, fallbackCode string) {
	switch {
	case errors.Is(err, patrol.ErrDimensionMismatch):
		Abort(ctx, http.StatusBadRequest, CodeDimensionMismatch, err.Error())
	case errors.Is(err, patrol.ErrInvalidConfiguration),
		errors.Is(err, dmn.ErrUnknownMode),
		errors.Is(err, simulation.ErrInvalidRuns),
		errors.Is(err, terrain.ErrInvalidSize):
		Abort(ctx, http.StatusBadRequest, CodeInvalidConfiguration, err.Error())
	case errors.Is(err, patrol.ErrNoPassableTerrain):
		Abort(ctx, http.StatusUnprocessableEntity, CodeNoPassableTerrain, err.Error())
	case errors.Is(err, service.ErrMapNotFound), errors.Is(err, service.ErrResultNotFound):
		Abort(ctx, http.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidKey):
		Abort(ctx, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	default:
		Abort(ctx, http.StatusInternalServerError, fallbackCode, "unexpected error")
	}
}

// Percent renders as a whole-number percentage string such as "80%".
// It decodes from that form or from a plain number.
type Percent float64

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%.0f%%"`, float64(p))), nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	s := strings.TrimSuffix(strings.Trim(string(data), `"`), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid percentage %s", data)
	}
	*p = Percent(v)
	return nil
}

type Stats struct {
	BeforeRisk           float64 `json:"beforeRisk"`
	AfterRisk            float64 `json:"afterRisk"`
	RiskReduction        Percent `json:"riskReduction"`
	HighRiskCoverage     Percent `json:"highRiskCoverage"`
	OverallCoverage      Percent `json:"overallCoverage"`
	CellsPatrolled       int     `json:"cellsPatrolled"`
	TotalCells           int     `json:"totalCells"`
	HighRiskCells        int     `json:"highRiskCells"`
	CoveredHighRiskCells int     `json:"coveredHighRiskCells"`
}

func NewStats(s dmn.StatsRecord) Stats {
	return Stats{
		BeforeRisk:           s.BeforeRisk,
		AfterRisk:            s.AfterRisk,
		RiskReduction:        Percent(s.RiskReduction),
		HighRiskCoverage:     Percent(s.HighRiskCoverage),
		OverallCoverage:      Percent(s.OverallCoverage),
		CellsPatrolled:       s.CellsPatrolled,
		TotalCells:           s.TotalCells,
		HighRiskCells:        s.HighRiskCells,
		CoveredHighRiskCells: s.CoveredHighRiskCells,
	}
}

// Record converts s back into its stored form.
func (s Stats) Record() dmn.StatsRecord {
	return dmn.StatsRecord{
		BeforeRisk:           s.BeforeRisk,
		AfterRisk:            s.AfterRisk,
		RiskReduction:        float64(s.RiskReduction),
		HighRiskCoverage:     float64(s.HighRiskCoverage),
		OverallCoverage:      float64(s.OverallCoverage),
		CellsPatrolled:       s.CellsPatrolled,
		TotalCells:           s.TotalCells,
		HighRiskCells:        s.HighRiskCells,
		CoveredHighRiskCells: s.CoveredHighRiskCells,
	}
}
