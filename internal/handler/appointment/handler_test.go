package appointment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediagenda/booking-api/internal/notification"
	"github.com/mediagenda/booking-api/internal/repository/memory"
	"github.com/mediagenda/booking-api/internal/service/booking"
	"github.com/mediagenda/booking-api/pkg/validator"
)

var registerRulesOnce sync.Once

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerRulesOnce.Do(func() {
		require.NoError(t, validator.RegisterBookingRules())
	})

	repo := memory.NewAppointmentRepository()
	svc := booking.NewService(repo, notification.NewLogNotifier(nil), nil)
	h := NewHandler(svc)

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api"))
	return engine
}

func doJSON(engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"patientName":     "Ana Costa",
		"patientEmail":    "ana@example.com",
		"patientPhone":    "(11) 98765-4321",
		"appointmentType": "general",
		"date":            "2025-06-10",
		"time":            "09:00",
	}
}

func TestBookingFlow(t *testing.T) {
	engine := newTestRouter(t)

	// Book the slot.
	w := doJSON(engine, http.MethodPost, "/api/appointments", validBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "confirmed", created["status"])
	assert.NotEmpty(t, created["id"])
	assert.NotEmpty(t, created["createdAt"])

	// Same slot again conflicts.
	w = doJSON(engine, http.MethodPost, "/api/appointments", validBody())
	require.Equal(t, http.StatusConflict, w.Code)
	var conflict map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.Equal(t, "Este horário já está ocupado. Por favor, escolha outro.", conflict["message"])

	// Cancel the first booking.
	w = doJSON(engine, http.MethodDelete, fmt.Sprintf("/api/appointments/%s", created["id"]), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cancelled map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, "cancelled", cancelled["status"])

	// The slot is free again.
	w = doJSON(engine, http.MethodPost, "/api/appointments", validBody())
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateInvalidEmail(t *testing.T) {
	engine := newTestRouter(t)

	body := validBody()
	body["patientEmail"] = "not-an-email"
	w := doJSON(engine, http.MethodPost, "/api/appointments", body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Email inválido", resp["message"])

	// Nothing was inserted.
	w = doJSON(engine, http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Empty(t, all)
}

func TestCreateValidationRules(t *testing.T) {
	engine := newTestRouter(t)

	cases := []struct {
		name    string
		mutate  func(map[string]interface{})
		message string
	}{
		{"short name", func(b map[string]interface{}) { b["patientName"] = "A" }, "Nome deve ter pelo menos 2 caracteres"},
		{"short phone", func(b map[string]interface{}) { b["patientPhone"] = "12345" }, "Telefone deve ter pelo menos 10 dígitos"},
		{"unknown type", func(b map[string]interface{}) { b["appointmentType"] = "surgery" }, "Selecione o tipo de consulta"},
		{"bad date", func(b map[string]interface{}) { b["date"] = "10/06/2025" }, "Selecione uma data"},
		{"off-grid time", func(b map[string]interface{}) { b["time"] = "12:00" }, "Selecione um horário"},
		{"missing time", func(b map[string]interface{}) { delete(b, "time") }, "Selecione um horário"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := validBody()
			tc.mutate(body)

			w := doJSON(engine, http.MethodPost, "/api/appointments", body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp["message"])
		})
	}
}

func TestListReturnsBareSortedArray(t *testing.T) {
	engine := newTestRouter(t)

	later := validBody()
	later["time"] = "14:30"
	require.Equal(t, http.StatusCreated, doJSON(engine, http.MethodPost, "/api/appointments", later).Code)

	earlier := validBody()
	earlier["time"] = "08:30"
	require.Equal(t, http.StatusCreated, doJSON(engine, http.MethodPost, "/api/appointments", earlier).Code)

	w := doJSON(engine, http.MethodGet, "/api/appointments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var all []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 2)
	assert.Equal(t, "08:30", all[0]["time"])
	assert.Equal(t, "14:30", all[1]["time"])
}

func TestGetAppointmentNotFound(t *testing.T) {
	engine := newTestRouter(t)

	for _, id := range []string{"b2f1c6de-0000-4000-8000-000000000000", "not-a-uuid"} {
		w := doJSON(engine, http.MethodGet, "/api/appointments/"+id, nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Appointment not found", resp["message"])
	}
}

func TestCancelNotFound(t *testing.T) {
	engine := newTestRouter(t)

	w := doJSON(engine, http.MethodDelete, "/api/appointments/b2f1c6de-0000-4000-8000-000000000000", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Appointment not found", resp["message"])
}

func TestDayAvailability(t *testing.T) {
	engine := newTestRouter(t)

	require.Equal(t, http.StatusCreated, doJSON(engine, http.MethodPost, "/api/appointments", validBody()).Code)

	w := doJSON(engine, http.MethodGet, "/api/appointments/availability?date=2025-06-10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var day struct {
		Date           string   `json:"date"`
		BookedTimes    []string `json:"bookedTimes"`
		AvailableTimes []string `json:"availableTimes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	assert.Equal(t, "2025-06-10", day.Date)
	assert.Equal(t, []string{"09:00"}, day.BookedTimes)
	assert.NotContains(t, day.AvailableTimes, "09:00")
	assert.Contains(t, day.AvailableTimes, "08:00")

	w = doJSON(engine, http.MethodGet, "/api/appointments/availability?date=junho", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
