package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gmontenegrodev/web-app/internal/timeutil"
)

var errInvalidParam = errors.New("invalid parameter")

// pathID reads a positive integer chi URL parameter.
func pathID(r *http.Request, name string) (int, error) {
	return positiveInt(chi.URLParam(r, name))
}

// queryInt reads an optional positive integer query parameter; absent returns def.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	return positiveInt(raw)
}

// queryDate reads an optional YYYY-MM-DD date; absent returns "".
func queryDate(r *http.Request) (string, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("date"))
	if raw == "" {
		return "", nil
	}
	if _, err := timeutil.ParseDate(raw); err != nil {
		return "", errInvalidParam
	}
	return raw, nil
}

func positiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, errInvalidParam
	}
	return v, nil
}
