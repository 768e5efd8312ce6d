package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-MeetingService/internal/domain"
)

var (
	// ErrMissingParam обязательный параметр не передан
	ErrMissingParam = errors.New("handlers: missing parameter")

	// ErrInvalidParam параметр не удалось разобрать
	ErrInvalidParam = errors.New("handlers: invalid parameter")
)

// PathInt64 положительный идентификатор из пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, ErrMissingParam
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidParam
	}
	return id, nil
}

// QueryDate обязательная дата YYYY-MM-DD
func QueryDate(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, ErrMissingParam
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, ErrInvalidParam
	}
	return date, nil
}

// OptionalQueryDate необязательная дата YYYY-MM-DD
func OptionalQueryDate(r *http.Request, name string) (*time.Time, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	date, err := QueryDate(r, name)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// QueryInt необязательное целое число; отсутствие дает 0
func QueryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidParam
	}
	return v, nil
}

// QueryInt64List список идентификаторов через запятую: members=1,2,3
func QueryInt64List(r *http.Request, name string) ([]int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, ErrMissingParam
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			return nil, ErrInvalidParam
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, ErrMissingParam
	}
	return ids, nil
}
