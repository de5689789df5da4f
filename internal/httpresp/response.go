package httpresp

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ContextTraceID is the gin context key holding the request trace id.
const ContextTraceID = "traceID"

type ErrorBody struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

type Envelope struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Data      any        `json:"data"`
	Error     *ErrorBody `json:"error"`
	Meta      any        `json:"meta"`
	TraceID   string     `json:"trace_id"`
	Timestamp string     `json:"timestamp"`
}

type ListMeta struct {
	Total int `json:"total"`
}

func TraceID(c *gin.Context) string {
	return c.GetString(ContextTraceID)
}

func Write(c *gin.Context, status int, env Envelope) {
	env.TraceID = TraceID(c)
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	c.JSON(status, env)
}

func OK(c *gin.Context, message string, data any) {
	Write(c, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data any) {
	Write(c, http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func List[T any](c *gin.Context, message string, data []T) {
	if data == nil {
		data = []T{}
	}
	Write(c, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    ListMeta{Total: len(data)},
	})
}

func Fail(c *gin.Context, status int, message string, body ErrorBody) {
	Write(c, status, Envelope{Success: false, Message: message, Error: &body})
}
