package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go-hospital-booking/internal/delivery/http/middleware"
	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/pkg/apperror"
	"go-hospital-booking/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var errInvalidBody = apperror.Validation("Invalid request body")

// writeError renders err as an envelope. Classified errors keep their
// message; anything else is logged and reported as a generic 500.
func writeError(w http.ResponseWriter, log *logrus.Logger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperror.KindInternal {
		log.WithError(err).Error("Request failed")
		response.InternalServerError(w, "Internal server error")
		return
	}

	if appErr.Kind == apperror.KindValidation && len(appErr.Fields) > 0 {
		response.ValidationError(w, appErr.Message, appErr.Fields)
		return
	}

	response.Error(w, apperror.HTTPStatus(appErr.Kind), appErr.Message, nil)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody.Wrap(err)
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid " + name)
	}
	return id, nil
}

// currentUser returns the identity set by the auth middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Access denied. No token provided.")
		return nil, false
	}
	return user, true
}
