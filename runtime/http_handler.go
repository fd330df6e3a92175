package runtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewHTTPHandler registers the invocation routes the host GUI calls.
// POST /nodes/:node/:task carries a JSON body of task arguments and
// returns the task output as JSON.
func NewHTTPHandler(container *Container, invoker *Invoker, g *gin.Engine) {
	g.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "nodes": container.NodeNames()})
	})

	g.POST("/nodes/:node/:task", handleInvoke(container, invoker))
}

var wrongBodyFormatRes = gin.H{"message": "Wrong request body format"}

func handleInvoke(container *Container, invoker *Invoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		node := c.Param("node")
		task := c.Param("task")
		taskName := node + "." + task

		if container.GetTask(taskName) == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Unknown task: " + taskName})
			return
		}

		args, ok := extractJSONBody(c)
		if !ok {
			return
		}

		e := NewExecution(node, container)

		result, err := invoker.Invoke(&e, taskName, args)
		if err != nil {
			envelope := NewInvocationError(err, node, task)
			slog.Error("Node invocation failed",
				"node", node,
				"task", task,
				"kind", envelope.Kind,
				"error", err.Error())
			c.JSON(envelope.StatusCode(), gin.H{"error": envelope})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func extractJSONBody(c *gin.Context) (map[string]any, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrongBodyFormatRes)
		return nil, false
	}

	if len(body) == 0 {
		return map[string]any{}, true
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.JSON(http.StatusBadRequest, wrongBodyFormatRes)
		return nil, false
	}

	return parsed, true
}
