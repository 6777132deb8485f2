package booking

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/altynbek8/ServiceApp/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handler without a service: these tests cover
// request validation, which rejects before any service call.
func newTestRouter() *gin.Engine {
	r := gin.New()
	h := NewHandler(nil)

	api := r.Group("/api/v1")
	h.RegisterRoutes(api)

	authed := r.Group("/api/v1")
	authed.Use(func(c *gin.Context) {
		c.Set(handler.ContextUserID, uuid.New())
	})
	h.RegisterClientRoutes(authed)
	h.RegisterProviderRoutes(authed)
	return r
}

func TestGetDayScheduleValidation(t *testing.T) {
	r := newTestRouter()

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"malformed provider id", "/api/v1/providers/not-a-uuid/slots?date=2026-03-15", http.StatusBadRequest},
		{"missing date", "/api/v1/providers/" + uuid.NewString() + "/slots", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	r := newTestRouter()

	bodies := []string{
		``,
		`{}`,
		`{"specialist_id":"nope","date":"2026-03-15","time":"10:00"}`,
		`{"date":"2026-03-15","time":"10:00"}`,
		// Off-grid time fails binding before the service sees it.
		`{"specialist_id":"` + uuid.NewString() + `","date":"2026-03-15","time":"08:30"}`,
		`{"specialist_id":"` + uuid.NewString() + `","date":"15.03.2026","time":"10:00"}`,
	}
	for _, body := range bodies {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestListMineRejectsUnknownStatus(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/my?status=archived", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateStatusRejectsUnknownTarget(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/provider/bookings/xyz",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The binding itself refuses states outside the machine.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/v1/provider/bookings/"+uuid.NewString(),
		strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
