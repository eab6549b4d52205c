package common

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/entities"

	"github.com/gorilla/mux"
)

const (
	HeaderActorType = "X-Actor-Type"
	HeaderActorID   = "X-Actor-ID"
	HeaderActorName = "X-Actor-Name"
)

var (
	ErrInvalidActor    = errors.New("invalid actor headers: type must be operator, driver or system, id is required for operator and driver")
	ErrInvalidPathID   = errors.New("path id must be a positive integer")
	ErrInvalidDuration = errors.New("duration must be a non-negative Go duration, e.g. 30m")
)

// Actor читает автора изменения из заголовков. Заголовки выставляет слой аутентификации.
func Actor(r *http.Request) (entities.Actor, error) {
	actor := entities.Actor{
		Type: entities.ActorType(strings.TrimSpace(r.Header.Get(HeaderActorType))),
		ID:   strings.TrimSpace(r.Header.Get(HeaderActorID)),
		Name: strings.TrimSpace(r.Header.Get(HeaderActorName)),
	}
	if actor.Type == entities.ActorSystem && actor.ID == "" {
		actor = entities.SystemActor()
	}
	if !actor.IsValid() {
		return entities.Actor{}, ErrInvalidActor
	}
	return actor, nil
}

func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathID
	}
	return id, nil
}

// Duration разбирает необязательную длительность из тела запроса.
func Duration(raw *string) (*time.Duration, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := time.ParseDuration(*raw)
	if err != nil || d < 0 {
		return nil, ErrInvalidDuration
	}
	return &d, nil
}
