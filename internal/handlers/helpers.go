package handlers

import (
	"encoding/json"
	"strconv"

	xhttp "github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/http"
	"github.com/haifaashkar319/ecommerce-haifa-alashkar/pkg/logger"
)

// genericErrorMessage is the only text an unexpected failure may put
// on the wire. The underlying error goes to the log, never the client.
const genericErrorMessage = "An error occurred. Please try again."

func readJSON(ctx *xhttp.RequestCtx, dst any) error {
	body := ctx.PostBody()
	return json.Unmarshal(body, dst)
}

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func writeMessage(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"message": msg})
}

func writeInternalError(ctx *xhttp.RequestCtx, err error) {
	logger.Error("request failed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"error", err,
	)
	writeError(ctx, xhttp.StatusInternalServerError, genericErrorMessage)
}

func pathString(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

func pathInt64(ctx *xhttp.RequestCtx, name string) (int64, error) {
	return strconv.ParseInt(pathString(ctx, name), 10, 64)
}
