package pos

import (
	"github.com/petpaw-pos/internal/constants"
	handlershared "github.com/petpaw-pos/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getCashierID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUint(c, constants.ContextKeyCashierID)
}
