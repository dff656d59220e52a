package controllers

import (
	"net/http"

	"github.com/techstoreperu/storefront-backend/api/responses"
	"github.com/techstoreperu/storefront-backend/api/validators"
	"github.com/techstoreperu/storefront-backend/internal/chat"
	pkgerrors "github.com/techstoreperu/storefront-backend/pkg/errors"
	"github.com/techstoreperu/storefront-backend/pkg/logger"
)

// ChatReply answers one shopper message through the assistant.
func ChatReply(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var payload chat.ReplyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Reply(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, reply)
	}
}

// ChatHistory serves the stored conversation for a user, oldest first. The
// user id is read from the query string and falls back to the identity
// header.
func ChatHistory(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		userID := r.URL.Query().Get("userId")
		if userID == "" {
			userID = requestUserID(r)
		}

		history, err := svc.History(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, history)
	}
}
