package routes

import (
	"fmt"
	"log"
	"net/http"
	"regexp"

	"github.com/rm-hull/medevents-gateway/internal"
	"github.com/rm-hull/medevents-gateway/internal/models"
	"github.com/rm-hull/medevents-gateway/internal/stats"

	"github.com/gin-gonic/gin"
)

var validGroupBy = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

var resources = map[string]bool{
	internal.RESOURCE_EVENTS:    true,
	internal.RESOURCE_HOSPITALS: true,
}

func Snapshots(repo internal.SnapshotRepository) func(c *gin.Context) {
	return func(c *gin.Context) {
		resource := c.Param("resource")
		if !resources[resource] {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown resource '%s'", resource)})
			return
		}

		groupBy := c.Query("groupBy")
		if groupBy != "" && !validGroupBy.MatchString(groupBy) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid groupBy parameter"})
			return
		}

		results, err := repo.List(resource)
		if err != nil {
			log.Printf("error while listing %s snapshots: %v", resource, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		lastUpdated, err := repo.LastUpdated(resource)
		if err != nil {
			log.Printf("error while reading %s last update: %v", resource, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal server error occurred"})
			return
		}

		c.JSON(http.StatusOK, models.SnapshotResponse{
			Resource:    resource,
			Results:     results,
			Statistics:  stats.Derive(results, groupBy),
			LastUpdated: lastUpdated,
		})
	}
}
