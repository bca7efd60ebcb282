package middleware

import (
	"github.com/aokitrading/fulfillment-api/internal/constants"
	apierrors "github.com/aokitrading/fulfillment-api/internal/errors"
	"github.com/aokitrading/fulfillment-api/internal/models"
	"github.com/gin-gonic/gin"
)

// ParseTaskRef decodes the :id path parameter into a task reference and
// stores it in the context. Rejects malformed identifiers before the
// handler runs.
func ParseTaskRef() gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, err := models.ParseTaskRef(c.Param("id"))
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyTaskRef, ref)
		c.Next()
	}
}

// GetTaskRef retrieves the decoded task reference from context.
func GetTaskRef(c *gin.Context) (models.TaskRef, bool) {
	value, exists := c.Get(constants.ContextKeyTaskRef)
	if !exists {
		return models.TaskRef{}, false
	}

	ref, ok := value.(models.TaskRef)
	return ref, ok
}
