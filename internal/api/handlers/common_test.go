package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
)

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Budi"}`))
	require.NoError(t, DecodeJSON(req, &dst))
	assert.Equal(t, "Budi", dst.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Budi","admin":true}`))
	assert.Error(t, DecodeJSON(req, &dst))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "kode sudah dipakai")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "kode sudah dipakai"}, body)
}

func TestPathID(t *testing.T) {
	var got int64
	var gotErr error

	r := mux.NewRouter()
	r.HandleFunc("/items/{id}", func(w http.ResponseWriter, req *http.Request) {
		got, gotErr = PathID(req, "id")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))
	require.NoError(t, gotErr)
	assert.Equal(t, int64(42), got)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/-1", nil))
	assert.ErrorIs(t, gotErr, ErrInvalidPathParam)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.ErrorIs(t, gotErr, ErrInvalidPathParam)
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, Page{Number: 1, Size: 10}, page)
	assert.Equal(t, uint64(0), page.Offset())

	page, err = ParsePage(httptest.NewRequest(http.MethodGet, "/?page=3&pageSize=20", nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(40), page.Offset())
	assert.Equal(t, uint64(20), page.Limit())

	_, err = ParsePage(httptest.NewRequest(http.MethodGet, "/?page=0", nil))
	assert.ErrorIs(t, err, ErrInvalidQueryParam)

	_, err = ParsePage(httptest.NewRequest(http.MethodGet, "/?pageSize=1000", nil))
	assert.ErrorIs(t, err, ErrInvalidQueryParam)
}

func TestQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?mechanicId=7&overdue=true&q=vw", nil)

	id, err := QueryInt64(req, "mechanicId")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(7), *id)

	missing, err := QueryInt64(req, "other")
	require.NoError(t, err)
	assert.Nil(t, missing)

	flag, err := QueryBool(req, "overdue")
	require.NoError(t, err)
	assert.True(t, flag)

	require.NotNil(t, QueryString(req, "q"))
	assert.Nil(t, QueryString(req, "none"))
}

func TestPromoRejectionMessage(t *testing.T) {
	assert.Equal(t, msgPromoExpired, PromoRejectionMessage(fmt.Errorf("wrapped: %w", pricing.ErrPromoExpired)))
	assert.Equal(t, msgPromoNotApplicable, PromoRejectionMessage(pricing.ErrPromoNotApplicable))
	assert.Equal(t, msgPromoRejected, PromoRejectionMessage(errors.New("other")))
}
