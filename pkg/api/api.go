package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"wordfilter/pkg/censor"
	"wordfilter/pkg/models"
)

type API struct {
	ServiceName string

	r  *mux.Router
	kw *kafka.Writer

	// mu guards filter: matching takes the read lock, option updates the write lock.
	mu     sync.RWMutex
	filter *censor.Filter
}

func New(name string, filter *censor.Filter, kafkaWriter *kafka.Writer) (*API, error) {
	if filter == nil {
		return nil, errors.New("censor filter is required")
	}

	api := API{
		ServiceName: name,
		r:           mux.NewRouter(),
		kw:          kafkaWriter,
		filter:      filter,
	}
	api.endpoints()

	return &api, nil
}

func (api *API) Router() *mux.Router {
	return api.r
}

func (api *API) endpoints() {
	api.r.Use(api.requestIDMiddleware)
	api.r.Use(api.headerMiddleware)

	api.r.HandleFunc("/check", api.checkComment).Methods(http.MethodPost)
	api.r.HandleFunc("/replace", api.replaceComment).Methods(http.MethodPost)
	api.r.HandleFunc("/fix", api.fixComment).Methods(http.MethodPost)
	api.r.HandleFunc("/options", api.getOptions).Methods(http.MethodGet)
	api.r.HandleFunc("/options", api.setOptions).Methods(http.MethodPut)

	if api.kw != nil {
		api.r.Use(api.loggingMiddleware(api.kw))
	}
}

func (api *API) decodeComment(w http.ResponseWriter, r *http.Request, handler string) (models.Comment, bool) {
	var comment models.Comment
	err := json.NewDecoder(r.Body).Decode(&comment)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[%s][%s] failed to decode request body: %v", handler, shorten(GetRequestID(r.Context())), err)
		return comment, false
	}
	defer r.Body.Close()

	return comment, true
}

func (api *API) checkComment(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	comment, ok := api.decodeComment(w, r, "checkComment")
	if !ok {
		return
	}

	api.mu.RLock()
	bad := api.filter.IsBad(comment.Text)
	api.mu.RUnlock()

	status := http.StatusOK
	if bad {
		status = http.StatusUnprocessableEntity
		log.Infof("[checkComment][%s] comment %v rejected", sID, comment.ID)
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Verdict{Bad: bad})
}

func (api *API) replaceComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := api.decodeComment(w, r, "replaceComment")
	if !ok {
		return
	}

	api.mu.RLock()
	comment.Text = api.filter.Replace(comment.Text)
	api.mu.RUnlock()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(comment)
}

func (api *API) fixComment(w http.ResponseWriter, r *http.Request) {
	comment, ok := api.decodeComment(w, r, "fixComment")
	if !ok {
		return
	}

	api.mu.RLock()
	comment.Text = api.filter.Fix(comment.Text)
	api.mu.RUnlock()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(comment)
}

func (api *API) getOptions(w http.ResponseWriter, r *http.Request) {
	api.mu.RLock()
	opts := api.filter.Options()
	api.mu.RUnlock()

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toModel(opts))
}

func (api *API) setOptions(w http.ResponseWriter, r *http.Request) {
	sID := shorten(GetRequestID(r.Context()))

	var req models.Options
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Errorf("[setOptions][%s] failed to decode request body: %v", sID, err)
		return
	}
	defer r.Body.Close()

	var opts []censor.Option
	if req.Placeholder != nil {
		opts = append(opts, censor.WithPlaceholder(*req.Placeholder))
	}
	if req.Languages != nil {
		opts = append(opts, censor.WithLanguages(req.Languages...))
	}
	if req.Debug != nil {
		opts = append(opts, censor.WithDebug(*req.Debug))
	}

	api.mu.Lock()
	err = api.filter.SetOptions(opts...)
	current := api.filter.Options()
	api.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Warnf("[setOptions][%s] rejected options update: %v", sID, err)
		return
	}
	log.Infof("[setOptions][%s] options updated: languages=%v debug=%v", sID, current.Languages.Sorted(), current.Debug)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toModel(current))
}

func toModel(opts censor.Options) models.Options {
	return models.Options{
		Placeholder: &opts.Placeholder,
		Languages:   opts.Languages.Sorted(),
		Debug:       &opts.Debug,
	}
}

// shorten truncates a string to 6 characters if it is longer than 6, appends '...' at the end,
// otherwise it returns the string unchanged.
func shorten(s string) string {
	if len(s) > 6 {
		return s[:6] + "..."
	}
	return s
}
