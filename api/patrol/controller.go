package patrolapi

import (
	"net/http"

	"github.com/beka-birhanu/patrol-api/api/render"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/beka-birhanu/patrol-api/terrain"
	"github.com/gin-gonic/gin"
)

// Controller plans patrols and serves demo terrain.
type Controller struct {
	optimizer i.PatrolOptimizer
}

// NewController initializes a patrol Controller.
func NewController(optimizer i.PatrolOptimizer) *Controller {
	return &Controller{optimizer: optimizer}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/optimize", c.optimize)
	route.GET("/terrain", c.terrain)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {}

func (c *Controller) optimize(ctx *gin.Context) {
	var request OptimizeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}

	outcome, err := c.optimizer.Optimize(ctx.Request.Context(), request.toDomain())
	if err != nil {
		render.Error(ctx, err, render.CodeOptimizationFailed)
		return
	}

	ctx.JSON(http.StatusOK, newOptimizeResponse(outcome))
}

func (c *Controller) terrain(ctx *gin.Context) {
	var query TerrainQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}

	maps, err := terrain.Generate(terrain.Config{Size: query.Size, Seed: query.Seed})
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	ctx.JSON(http.StatusOK, maps)
}
