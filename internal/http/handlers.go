package httpapi

import (
	"go.uber.org/zap"

	"github.com/CCAUCAM/analogue-mission-observer/internal/session"
)

// ObservationHandler serves the observation session API.
type ObservationHandler struct {
	sess   *session.Session
	logger *zap.Logger
}

func NewObservationHandler(sess *session.Session, logger *zap.Logger) *ObservationHandler {
	return &ObservationHandler{sess: sess, logger: logger}
}
