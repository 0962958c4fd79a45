package archiveapi

import (
	"net/http"

	"github.com/beka-birhanu/patrol-api/api/render"
	dmn "github.com/beka-birhanu/patrol-api/domain"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/gin-gonic/gin"
)

// Controller serves saved maps and results.
type Controller struct {
	archive i.Archiver
}

// NewController initializes an archive Controller.
func NewController(archive i.Archiver) *Controller {
	return &Controller{archive: archive}
}

// RegisterPublic registers read-only routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	maps := route.Group("/maps")
	{
		maps.GET("", c.listMaps)
		maps.GET("/:id", c.getMap)
		maps.GET("/:id/results/top", c.topResults)
	}
	route.GET("/results/:id", c.getResult)
}

// RegisterProtected registers routes that write to the archive.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/maps", c.saveMap)
	route.POST("/maps/:id/patrols", c.patrolMap)
	route.POST("/results", c.saveResult)
}

func (c *Controller) saveMap(ctx *gin.Context) {
	var request SaveMapRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}

	m, err := c.archive.SaveMap(ctx.Request.Context(), dmn.MapConfig{
		Name:       request.Name,
		GridSize:   request.GridSize,
		RiskMap:    request.RiskMap,
		AnimalMap:  request.AnimalMap,
		TerrainMap: request.TerrainMap,
	})
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	ctx.JSON(http.StatusCreated, &CreatedResponse{MapID: m.ID, CreatedAt: m.CreatedAt})
}

func (c *Controller) listMaps(ctx *gin.Context) {
	maps, err := c.archive.Maps(ctx.Request.Context())
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	response := make([]MapSummary, 0, len(maps))
	for _, m := range maps {
		response = append(response, MapSummary{
			ID:        m.ID,
			Name:      m.Name,
			GridSize:  m.GridSize,
			CreatedAt: m.CreatedAt,
		})
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *Controller) getMap(ctx *gin.Context) {
	m, err := c.archive.Map(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}
	ctx.JSON(http.StatusOK, m)
}

func (c *Controller) topResults(ctx *gin.Context) {
	var query TopQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}

	results, err := c.archive.TopResults(ctx.Request.Context(), ctx.Param("id"), query.Limit)
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	response := make([]*ResultResponse, 0, len(results))
	for _, r := range results {
		response = append(response, newResultResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *Controller) saveResult(ctx *gin.Context) {
	var request SaveResultRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}
	mode, err := dmn.ParseMode(request.Mode)
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	r, err := c.archive.SaveResult(ctx.Request.Context(), dmn.ResultConfig{
		MapID:       request.MapID,
		RangerCount: request.RangerCount,
		MaxSteps:    request.MaxSteps,
		Outcome: &dmn.Outcome{
			Mode:     mode,
			Routes:   request.Routes,
			Coverage: request.Coverage,
			Stats:    request.Stats.Record(),
		},
	})
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	ctx.JSON(http.StatusCreated, &CreatedResponse{ResultID: r.ID, CreatedAt: r.CreatedAt})
}

func (c *Controller) getResult(ctx *gin.Context) {
	r, err := c.archive.Result(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}
	ctx.JSON(http.StatusOK, newResultResponse(r))
}

func (c *Controller) patrolMap(ctx *gin.Context) {
	var request PatrolMapRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}
	mode, err := dmn.ParseMode(request.Mode)
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	r, err := c.archive.PatrolMap(ctx.Request.Context(), ctx.Param("id"), request.RangerCount, request.MaxSteps, mode)
	if err != nil {
		render.Error(ctx, err, render.CodeOptimizationFailed)
		return
	}
	ctx.JSON(http.StatusCreated, newResultResponse(r))
}
