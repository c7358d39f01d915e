package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WorkshopService/internal/domain"
	"github.com/m04kA/SMC-WorkshopService/internal/pricing"
)

const (
	msgInternalError = "terjadi kesalahan internal, silakan coba lagi"
	maxBodyBytes     = 1 << 20

	msgPromoNotFound      = "kode promo tidak ditemukan"
	msgPromoExpired       = "kode promo sudah kedaluwarsa"
	msgPromoNotStarted    = "kode promo belum berlaku"
	msgPromoNotApplicable = "kode promo tidak berlaku untuk layanan yang dipilih"
	msgPromoRejected      = "kode promo tidak dapat digunakan"
)

var (
	// ErrInvalidPathParam возвращается, когда параметр пути не является положительным числом
	ErrInvalidPathParam = errors.New("handlers: invalid path parameter")

	// ErrInvalidQueryParam возвращается при некорректном query параметре
	ErrInvalidQueryParam = errors.New("handlers: invalid query parameter")
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Page параметры пагинации из query (?page=1&pageSize=10)
type Page struct {
	Number int
	Size   int
}

// Limit размер страницы для репозитория
func (p Page) Limit() uint64 {
	return uint64(p.Size)
}

// Offset смещение для репозитория
func (p Page) Offset() uint64 {
	return uint64((p.Number - 1) * p.Size)
}

// DecodeJSON декодирует тело запроса, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondUnprocessable(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondNoContent 204 без тела
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondFile отдает файл как вложение
func RespondFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// PathID извлекает положительный int64 параметр пути
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return id, nil
}

// QueryInt64 необязательный int64 query параметр
func QueryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return &v, nil
}

// QueryString необязательный строковый query параметр
func QueryString(r *http.Request, name string) *string {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryBool query параметр-флаг ("true", "1")
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q", ErrInvalidQueryParam, name, raw)
	}
	return v, nil
}

// ParsePage читает page/pageSize; по умолчанию первая страница из domain.DefaultPageSize записей
func ParsePage(r *http.Request) (Page, error) {
	page := Page{Number: 1, Size: domain.DefaultPageSize}

	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page, fmt.Errorf("%w: page=%q", ErrInvalidQueryParam, raw)
		}
		page.Number = n
	}

	if raw := r.URL.Query().Get("pageSize"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > domain.MaxPageSize {
			return page, fmt.Errorf("%w: pageSize=%q", ErrInvalidQueryParam, raw)
		}
		page.Size = n
	}

	return page, nil
}

// PromoRejectionMessage сообщение для клиента по причине отказа промокода
func PromoRejectionMessage(err error) string {
	switch {
	case errors.Is(err, pricing.ErrPromoNotFound):
		return msgPromoNotFound
	case errors.Is(err, pricing.ErrPromoExpired):
		return msgPromoExpired
	case errors.Is(err, pricing.ErrPromoNotStarted):
		return msgPromoNotStarted
	case errors.Is(err, pricing.ErrPromoNotApplicable):
		return msgPromoNotApplicable
	default:
		return msgPromoRejected
	}
}
