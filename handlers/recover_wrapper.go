package handlers

import (
	"fmt"
	"net/http"
	"runtime"

	"freightflow/utils"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				utils.LogCtx(r.Context(), "http", "panic", fmt.Sprintf("%s %s: %v\n%s", r.Method, r.URL.Path, rec, stack))
				writeMessage(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		handler(w, r)
	}
}
