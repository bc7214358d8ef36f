package owner

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/Surveyor/internal/controller"
	"github.com/lshigami/Surveyor/internal/middleware"
	"github.com/lshigami/Surveyor/internal/service"
)

type AuthController struct {
	userService service.UserService
}

func NewAuthController(userService service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// CurrentUser godoc
// @Summary Current user
// @Description Profile of the authenticated caller as synced from the identity token.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponseDTO
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /auth/user [get]
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	user, err := c.userService.GetUser(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}
