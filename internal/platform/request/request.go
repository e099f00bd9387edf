// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nicocal/internal/platform/apperr"
	"github.com/taibuivan/nicocal/internal/platform/ctxutil"
	"github.com/taibuivan/nicocal/internal/platform/validate"
)

// maxBodyBytes caps JSON bodies; diary content is free text but not unbounded.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

An empty body decodes to the zero value so that the schema reports every
missing field instead of a generic decoding error.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	body := http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	if err := json.NewDecoder(body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Query retrieves the first value of a query-string parameter.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
RequiredUserID returns the User ID of the session attached by the gate.

Returns:
  - string: User ID
  - error: apperr.Unauthorized if the request carries no session
*/
func RequiredUserID(request *http.Request) (string, error) {
	userID := ctxutil.GetUserID(request.Context())

	// The gate should have rejected this request already
	if userID == "" {
		return "", apperr.Unauthorized("Unauthorized")
	}

	return userID, nil
}
