// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diary

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nicocal/internal/platform/constants"
	requestutil "github.com/taibuivan/nicocal/internal/platform/request"
	"github.com/taibuivan/nicocal/internal/platform/respond"
	"github.com/taibuivan/nicocal/internal/platform/validate"
)

// Handler implements the diary HTTP endpoints.
//
// It must be mounted behind the session gate; each endpoint still re-checks
// for a session and answers 401 if the gate was bypassed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the diary routes.
//
// # Endpoints
//   - GET  /          : List entries (optional startDate/endDate).
//   - GET  /calendar  : Month grid (optional year/month).
//   - GET  /{date}    : Single entry.
//   - POST /          : Create an entry.
//   - PUT  /{date}    : Update an entry.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/calendar", handler.calendar)
	router.Get("/{date}", handler.get)
	router.Post("/", handler.create)
	router.Put("/{date}", handler.update)

	return router
}

/*
List returns the caller's entries.

GET /api/diaries?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD

Description: Bounds are optional, inclusive and compared as strings; they are
not checked against the date schema.

Response:
  - 200: []Entry
  - 401: No session
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.List(request.Context(), userID, ListFilter{
		StartDate: requestutil.Query(request, FieldStartDate),
		EndDate:   requestutil.Query(request, FieldEndDate),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
Get returns the caller's entry for one date.

GET /api/diaries/{date}

Response:
  - 200: Entry
  - 400: Malformed date
  - 401: No session
  - 404: No entry for that date
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	date := requestutil.Param(request, FieldDate)
	if err := validateDateParam(date); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Get(request.Context(), userID, date)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
Create records a new entry.

POST /api/diaries

Request:
  - Body: EntryInput (date, emotion, content)

Response:
  - 201: Entry
  - 400: Validation failure
  - 401: No session
  - 409: An entry already exists for that date
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input EntryInput

	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateEntry(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
Update rewrites an existing entry.

PUT /api/diaries/{date}

Description: The body is layered onto the path date before the diary schema
runs, so a body without "date" validates against the path value.

Request:
  - Body: EntryInput (emotion, content)

Response:
  - 200: Entry
  - 400: Validation failure
  - 401: No session
  - 404: No entry for that date
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	date := requestutil.Param(request, FieldDate)
	if err := validateDateParam(date); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := EntryInput{Date: date}
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateEntry(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.Update(request.Context(), userID, date, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entry)
}

/*
Calendar returns a month grid annotated with the caller's emotions.

GET /api/diaries/calendar?year=YYYY&month=M

Description: Missing year or month default to the current one. The label
language follows Accept-Language (English or Japanese).

Response:
  - 200: CalendarMonth
  - 400: Year or month out of range
  - 401: No session
*/
func (handler *Handler) calendar(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	today := handler.service.Today()
	validator := &validate.Validator{}
	year := queryInt(validator, request, FieldYear, today.Year())
	month := queryInt(validator, request, FieldMonth, int(today.Month()))

	validator.Range(FieldYear, year, 1, 9999).Range(FieldMonth, month, 1, 12)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tag := MatchLanguage(request.Header.Get(constants.HeaderAcceptLanguage))
	calendar, err := handler.service.Calendar(request.Context(), userID, year, time.Month(month), tag)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, calendar)
}

// queryInt parses an optional integer query parameter, recording a failure on validator.
func queryInt(validator *validate.Validator, request *http.Request, name string, fallback int) int {
	raw := requestutil.Query(request, name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	validator.Custom(name, err != nil, "Must be an integer")
	if err != nil {
		return fallback
	}
	return value
}
