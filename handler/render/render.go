package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"loans/core"
	"loans/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error engine error codes map through codes.Status, twirp errors keep their status,
// anything else is an internal error
func Error(w http.ResponseWriter, err error) {
	resp := errorResponse{
		Code: int(core.ErrUnknown),
		Msg:  "internal error",
	}
	status := http.StatusInternalServerError

	var code core.ErrorCode
	var twerr twirp.Error
	switch {
	case errors.As(err, &code):
		status = codes.Status(code)
		resp.Code, resp.Msg = code.Code(), code.Error()
	case codes.IsArithmetic(err):
		status = http.StatusBadRequest
		resp.Code, resp.Msg = codes.InvalidArguments, err.Error()
	case errors.As(err, &twerr):
		status = twirp.ServerHTTPStatusFromErrorCode(twerr.Code())
		resp.Code, resp.Msg = codes.Of(twerr), twerr.Msg()
	default:
		logrus.WithError(err).Errorln("internal error")
		if ResponseErrorMessageAsHint {
			resp.Hint = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, codes.With(twirp.InvalidArgumentError("request", err.Error()), codes.InvalidArguments))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
