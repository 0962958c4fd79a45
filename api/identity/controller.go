package identity

import (
	"net/http"

	"github.com/beka-birhanu/patrol-api/api/render"
	"github.com/beka-birhanu/patrol-api/service/i"
	"github.com/gin-gonic/gin"
)

// IdentityServer handles HTTP requests related to authentication.
type IdentityServer struct {
	authService i.Authenticator
}

// NewIdentityServer creates a new IdentityServer.
func NewIdentityServer(a i.Authenticator) *IdentityServer {
	return &IdentityServer{
		authService: a,
	}
}

// RegisterPublic registers public routes.
func (c *IdentityServer) RegisterPublic(route *gin.RouterGroup) {
	auth := route.Group("/auth")
	{
		auth.POST("/token", c.issueToken)
	}
}

// RegisterProtected registers privileged routes.
func (c *IdentityServer) RegisterProtected(route *gin.RouterGroup) {
}

// issueToken exchanges the operator key for a bearer token.
func (c *IdentityServer) issueToken(ctx *gin.Context) {
	var request TokenRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		render.Abort(ctx, http.StatusBadRequest, render.CodeInvalidConfiguration, err.Error())
		return
	}

	token, err := c.authService.IssueToken(request.Key)
	if err != nil {
		render.Error(ctx, err, render.CodeInternal)
		return
	}

	ctx.JSON(http.StatusOK, &TokenResponse{Token: token, TokenType: "Bearer"})
}
