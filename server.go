package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jibbex/rgpio/gpio"
)

/////////////////////
// Response helpers

func RespondInternalServiceError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(err.Error()))
}

func RespondNotFoundError(w http.ResponseWriter, body string) {
	w.WriteHeader(http.StatusNotFound)
	if body == "" {
		body = "Not found"
	}
	RespondText(w, body)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	RespondText(w, message)
}

func RespondText(w http.ResponseWriter, body string) {
	w.Write([]byte(body))
}

func RespondJSON(w http.ResponseWriter, body any) {
	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		RespondInternalServiceError(w, err)
	}
}

// RespondGPIOError maps a pin operation failure onto a status code: a
// missing control file means the pin isn't exported (404), kernel
// output we couldn't parse is the kernel's fault (502), anything else
// is a 500.
func RespondGPIOError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		RespondNotFoundError(w, err.Error())
	case gpio.IsParse(err):
		w.WriteHeader(http.StatusBadGateway)
		RespondText(w, err.Error())
	default:
		RespondInternalServiceError(w, err)
	}
}

// pinParam parses the {pin} route parameter, responding with a 400
// when it isn't a decimal integer.
func pinParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	pin, err := strconv.Atoi(chi.URLParam(r, "pin"))
	if err != nil {
		RespondBadRequest(w, "pin must be a decimal integer")
		return 0, false
	}
	return pin, true
}

type PinValue struct {
	Pin   int  `json:"pin"`
	Value bool `json:"value"`
}

type directionBody struct {
	Direction string `json:"direction"`
}

type valueBody struct {
	Value bool `json:"value"`
}

// NewRouter exposes the five pin operations over HTTP.
func NewRouter(pins gpio.Pins) chi.Router {
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(&log.Logger))

	r.Route("/api/pins/{pin}", func(r chi.Router) {
		r.Post("/export", func(w http.ResponseWriter, r *http.Request) {
			pin, ok := pinParam(w, r)
			if !ok {
				return
			}

			if err := pins.Export(pin); err != nil {
				RespondGPIOError(w, err)
				return
			}

			w.WriteHeader(http.StatusNoContent)
		})

		r.Post("/unexport", func(w http.ResponseWriter, r *http.Request) {
			pin, ok := pinParam(w, r)
			if !ok {
				return
			}

			if err := pins.Unexport(pin); err != nil {
				RespondGPIOError(w, err)
				return
			}

			w.WriteHeader(http.StatusNoContent)
		})

		r.Put("/direction", func(w http.ResponseWriter, r *http.Request) {
			pin, ok := pinParam(w, r)
			if !ok {
				return
			}

			var body directionBody
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				RespondBadRequest(w, "invalid JSON body")
				return
			}

			dir := gpio.Direction(body.Direction)
			if dir != gpio.In && dir != gpio.Out {
				RespondBadRequest(w, `direction must be "in" or "out"`)
				return
			}

			if err := pins.SetDirection(pin, dir); err != nil {
				RespondGPIOError(w, err)
				return
			}

			w.WriteHeader(http.StatusNoContent)
		})

		r.Put("/value", func(w http.ResponseWriter, r *http.Request) {
			pin, ok := pinParam(w, r)
			if !ok {
				return
			}

			var body valueBody
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				RespondBadRequest(w, "invalid JSON body")
				return
			}

			if err := pins.Write(pin, body.Value); err != nil {
				RespondGPIOError(w, err)
				return
			}

			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/value", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Cache-Control", "no-cache, no-store")
			pin, ok := pinParam(w, r)
			if !ok {
				return
			}

			value, err := pins.Read(pin)
			if err != nil {
				RespondGPIOError(w, err)
				return
			}

			RespondJSON(w, PinValue{Pin: pin, Value: value})
		})
	})

	return r
}

func StartServer(config *Config, pins gpio.Pins) error {
	address := config.ListenAddress()
	log.Info().Str("listen", address).Msg("launching server")
	return http.ListenAndServe(address, NewRouter(pins))
}
